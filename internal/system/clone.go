package system

import (
	"time"

	coresys "github.com/lanefall/engine/internal/core/system"
)

// CloneSystem pins every follower to the player. Phase 8 (Followers) runs
// after movement and pickups and before fire, so mirrored shots leave from
// this tick's positions. Clones have no physics of their own.
type CloneSystem struct {
	d *Deps
}

func NewCloneSystem(d *Deps) *CloneSystem {
	return &CloneSystem{d: d}
}

func (s *CloneSystem) Phase() coresys.Phase { return coresys.PhaseFollowers }

func (s *CloneSystem) Update(_ time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	for _, id := range st.CloneIDs() {
		c := st.Clone(id)
		if c == nil || st.Removed(id) {
			continue
		}
		c.Pos = st.Player.Pos.Add(c.Offset)
	}
}
