package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/geom"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
)

// UpgradeSystem drifts upgrades toward the player, resolves pickups, and
// runs the timed spawn roll. Phase 7 (Upgrades).
//
// An upgrade inside the pickup radius applies its effect and is consumed;
// one that crosses the player's line unconsumed vanishes silently. Pickup
// wins when both would apply on the same tick.
type UpgradeSystem struct {
	d *Deps
}

func NewUpgradeSystem(d *Deps) *UpgradeSystem {
	return &UpgradeSystem{d: d}
}

func (s *UpgradeSystem) Phase() coresys.Phase { return coresys.PhaseUpgrades }

func (s *UpgradeSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	cfg := s.d.Cfg
	step := dt.Seconds() * cfg.Engine.SpeedMultiplier

	for _, id := range st.UpgradeIDs() {
		u := st.Upgrade(id)
		if u == nil || st.Removed(id) {
			continue
		}

		u.Pos.Z += u.Speed * step

		if geom.Dist(u.Pos, st.Player.Pos) <= cfg.Upgrades.PickupRadius {
			s.collect(u)
			continue
		}
		if u.Pos.Z >= cfg.Lane.ReachZ {
			s.d.Despawn(event.KindUpgrade, id)
		}
	}

	st.UpgradeElapsed += dt
	if st.UpgradeElapsed >= cfg.Upgrades.Interval {
		st.UpgradeElapsed = 0
		if s.d.RNG.Float64() < cfg.Upgrades.Chance {
			s.d.SpawnUpgrade(s.rollUpgrade())
		}
	}
}

// collect applies an upgrade's effect and consumes it. The pickup event
// fires even when the effect lands empty (clone pickup at the cap).
func (s *UpgradeSystem) collect(u *world.Upgrade) {
	st := s.d.State
	p := &st.Player

	switch data.UpgradeKind(u.Kind) {
	case data.UpgradeHeal:
		p.Health += u.HealAmount
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
	case data.UpgradeClone:
		if st.CloneCount() < s.d.Cfg.Clones.Max {
			s.addClone()
		}
	case data.UpgradeWeapon:
		p.WeaponID = s.d.ResolveWeapon(u.WeaponID).ID
	default:
		s.d.Log.Warn("upgrade with unknown kind consumed", zap.String("kind", u.Kind))
	}

	event.Emit(s.d.Bus, event.UpgradeCollected{
		ID:       u.ID,
		Kind:     u.Kind,
		WeaponID: u.WeaponID,
	})
	s.d.Despawn(event.KindUpgrade, u.ID)
}

// addClone grants a follower in the next slot. Slots alternate sides with
// growing spacing: 0 sits right of the player, 1 left, 2 further right, and
// so on; all trail slightly behind the line.
func (s *UpgradeSystem) addClone() {
	st := s.d.State
	slot := st.CloneCount()

	k := float64(slot/2 + 1)
	x := s.d.Cfg.Clones.Spacing * k
	if slot%2 == 1 {
		x = -x
	}
	offset := geom.Vec2{X: x, Z: 0.6}

	c := &world.Clone{
		Slot:   slot,
		Offset: offset,
		Pos:    st.Player.Pos.Add(offset),
	}
	id := st.AddClone(c)
	event.Emit(s.d.Bus, event.EntitySpawned{Kind: event.KindClone, ID: id, Position: c.Pos})
}

// rollUpgrade draws an upgrade template by table weight.
func (s *UpgradeSystem) rollUpgrade() *data.UpgradeInfo {
	all := s.d.Upgrades.All()
	roll := s.d.RNG.Intn(s.d.Upgrades.TotalWeight())
	for _, info := range all {
		roll -= info.Weight
		if roll < 0 {
			return info
		}
	}
	return all[len(all)-1]
}
