package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
)

// AdvanceSystem moves enemies down the lane and resolves the ones that reach
// the player's line. Phase 4 (Advance) runs after collision, so a killed
// enemy never lands its contact damage in the same tick.
//
// Reaching the line deals the enemy's contact damage (player health clamps
// at zero), removes the enemy without kill credit, and ends the session when
// health is exhausted. GameOver is terminal and emitted exactly once.
type AdvanceSystem struct {
	d *Deps
}

func NewAdvanceSystem(d *Deps) *AdvanceSystem {
	return &AdvanceSystem{d: d}
}

func (s *AdvanceSystem) Phase() coresys.Phase { return coresys.PhaseAdvance }

func (s *AdvanceSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	cfg := s.d.Cfg
	step := dt.Seconds() * cfg.Engine.SpeedMultiplier * cfg.Combat.AdvanceScale
	reachZ := cfg.Lane.ReachZ

	for _, id := range st.EnemyIDs() {
		e := st.Enemy(id)
		if e == nil || st.Removed(id) {
			continue
		}

		e.Pos.Z += e.Speed * step
		if e.Pos.Z < reachZ {
			continue
		}

		// The session may have ended earlier in this pass; enemies behind
		// the one that ended it still advance but land nothing.
		if st.Session.Over() {
			continue
		}

		p := &st.Player
		p.Health -= e.ContactDamage
		if p.Health < 0 {
			p.Health = 0
		}
		event.Emit(s.d.Bus, event.PlayerDamaged{
			Damage: e.ContactDamage,
			Health: p.Health,
			Source: id,
		})
		s.d.Despawn(event.KindEnemy, id)

		if p.Health <= 0 {
			sess := &st.Session
			sess.Status = world.StatusGameOver
			event.Emit(s.d.Bus, event.GameOver{
				SessionID: sess.ID,
				Kills:     sess.Kills,
				Wave:      sess.Wave,
				Elapsed:   sess.Elapsed,
			})
			s.d.Log.Info("session over",
				zap.String("session", sess.ID.String()),
				zap.Int("kills", sess.Kills),
				zap.Int("wave", sess.Wave),
				zap.Duration("elapsed", sess.Elapsed),
			)
		}
	}
}
