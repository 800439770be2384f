package system

import (
	"time"

	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/world"
)

// SpawnSystem stamps out enemies. Phase 6 (Spawn) sits after the director,
// so entries scheduled this tick start their stagger clock immediately, and
// after collision, so fresh enemies sit out the tick they were born in.
//
// Two sources feed it: the regular spawn timer at the current wave's
// interval (a single enemy, or sometimes a staggered burst), and the pending
// queue the director fills on wave changes and boss entrances.
type SpawnSystem struct {
	d *Deps
}

func NewSpawnSystem(d *Deps) *SpawnSystem {
	return &SpawnSystem{d: d}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	cfg := s.d.Cfg
	st.SpawnElapsed += dt
	if st.SpawnElapsed >= st.Session.Scaling.SpawnInterval {
		st.SpawnElapsed = 0
		if s.d.RNG.Float64() < cfg.Spawn.BurstChance {
			n := cfg.Spawn.BurstMin + s.d.RNG.Intn(cfg.Spawn.BurstMax-cfg.Spawn.BurstMin+1)
			for i := 0; i < n; i++ {
				st.PendingSpawns = append(st.PendingSpawns, world.PendingSpawn{
					Delay: cfg.Spawn.BurstWindow * time.Duration(i) / time.Duration(n),
				})
			}
		} else {
			s.d.SpawnEnemy("", false)
		}
	}

	// Drain due entries. Stats resolve now, not at enqueue time, so a wave
	// change mid-window scales the stragglers too.
	kept := st.PendingSpawns[:0]
	for i := range st.PendingSpawns {
		entry := st.PendingSpawns[i]
		entry.Delay -= dt
		if entry.Delay <= 0 {
			s.d.SpawnEnemy(entry.Archetype, entry.Boss)
			continue
		}
		kept = append(kept, entry)
	}
	st.PendingSpawns = kept
}
