package system

import (
	"time"

	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/world"
)

// CleanupSystem destroys everything queued for removal during the tick and
// compacts the spawn-order lists. Phase 10 (Cleanup) is always last, and it
// runs even on the tick the session ends so that tick's removals land.
type CleanupSystem struct {
	state *world.State
}

func NewCleanupSystem(state *world.State) *CleanupSystem {
	return &CleanupSystem{state: state}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.state.FlushRemovals()
}
