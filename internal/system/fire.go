package system

import (
	"time"

	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/world"
)

// FireSystem turns held or latched fire intent into projectiles. Phase 9
// (Fire) is the last mutating stage, so fresh shots fly starting next tick.
//
// The cooldown gates both continuous fire and the one-shot latch
// identically. Every player shot schedules one mirrored shot per live clone
// at reduced damage, staggered a little more per slot; the shots read the
// clone's position when their delay runs out, not when scheduled.
type FireSystem struct {
	d *Deps
}

func NewFireSystem(d *Deps) *FireSystem {
	return &FireSystem{d: d}
}

func (s *FireSystem) Phase() coresys.Phase { return coresys.PhaseFire }

func (s *FireSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	st.FireCooldown -= dt
	if st.FireCooldown < 0 {
		st.FireCooldown = 0
	}

	wantFire := st.Input.FireHeld || st.Input.FireOnce
	st.Input.FireOnce = false // the latch clears whether or not a shot fires

	if wantFire && st.FireCooldown <= 0 {
		w := s.d.ResolveWeapon(st.Player.WeaponID)
		st.Player.WeaponID = w.ID
		s.d.SpawnProjectile(st.Player.Pos, w.ID, 1.0)
		st.FireCooldown = w.FireInterval

		stagger := s.d.Cfg.Clones.FireStagger
		scale := s.d.Cfg.Clones.DamageScale
		for _, id := range st.CloneIDs() {
			c := st.Clone(id)
			if c == nil || st.Removed(id) {
				continue
			}
			st.PendingShots = append(st.PendingShots, world.PendingShot{
				Delay:       stagger * time.Duration(c.Slot+1),
				CloneID:     id,
				WeaponID:    w.ID,
				DamageScale: scale,
			})
		}
	}

	// Fire due mirrored shots. A shot whose clone vanished is dropped.
	kept := st.PendingShots[:0]
	for i := range st.PendingShots {
		shot := st.PendingShots[i]
		shot.Delay -= dt
		if shot.Delay > 0 {
			kept = append(kept, shot)
			continue
		}
		if c := st.Clone(shot.CloneID); c != nil && !st.Removed(shot.CloneID) {
			s.d.SpawnProjectile(c.Pos, shot.WeaponID, shot.DamageScale)
		}
	}
	st.PendingShots = kept
}
