package system

import (
	"time"

	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/geom"
)

// MovementSystem integrates the player's held lateral intents. Phase 0
// (Input) runs first so the player is in place before the collision and
// pickup stages read its position.
type MovementSystem struct {
	d *Deps
}

func NewMovementSystem(d *Deps) *MovementSystem {
	return &MovementSystem{d: d}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *MovementSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}
	p := &st.Player
	if !p.MovementEnabled {
		return
	}

	// Left and right are independent booleans; both held cancels out.
	dir := 0.0
	if st.Input.Left {
		dir -= 1
	}
	if st.Input.Right {
		dir += 1
	}
	if dir == 0 {
		return
	}

	x := p.Pos.X + dir*s.d.Cfg.Player.Speed*dt.Seconds()
	p.Pos.X = geom.Clamp(x, -p.Boundary, p.Boundary)
}
