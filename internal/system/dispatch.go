package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
)

// DispatchSystem rotates the event bus and delivers the previous tick's
// events to subscribers. Phase 1 (Events) runs even after the session ends
// so observers still receive the final tick's events.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
