package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
)

// DirectorSystem drives wave progression. Phase 5 (Director).
//
// When the wave timer runs out and the ceiling isn't reached yet, the wave
// advances, difficulty scalars are recomputed (balance scripts first, stock
// formulas as fallback) and the next batch is scheduled: one delayed boss on
// designated waves, otherwise a burst of ordinary enemies staggered across
// the batch window. At the final wave the timer stops mattering; spawning
// simply continues at the last scaling.
type DirectorSystem struct {
	d *Deps
}

func NewDirectorSystem(d *Deps) *DirectorSystem {
	return &DirectorSystem{d: d}
}

func (s *DirectorSystem) Phase() coresys.Phase { return coresys.PhaseDirector }

func (s *DirectorSystem) Update(_ time.Duration) {
	st := s.d.State
	sess := &st.Session
	if sess.Over() {
		return
	}

	cfg := s.d.Cfg
	if sess.WaveElapsed < cfg.Waves.Duration || sess.Wave >= cfg.Waves.Max {
		return
	}

	sess.Wave++
	sess.WaveElapsed = 0

	scaling := s.d.Lua.CalcWaveScaling(WaveContextFor(cfg, sess.Wave))
	sess.Scaling = world.Difficulty{
		HealthMult:    scaling.HealthMult,
		SpeedMult:     scaling.SpeedMult,
		SpawnInterval: scaling.SpawnInterval,
		BatchSize:     scaling.BatchSize,
	}

	event.Emit(s.d.Bus, event.WaveChanged{
		Wave:          sess.Wave,
		HealthMult:    scaling.HealthMult,
		SpeedMult:     scaling.SpeedMult,
		SpawnInterval: scaling.SpawnInterval,
	})
	s.d.Log.Debug("wave advanced",
		zap.Int("wave", sess.Wave),
		zap.Float64("health_mult", scaling.HealthMult),
		zap.Float64("speed_mult", scaling.SpeedMult),
		zap.Duration("spawn_interval", scaling.SpawnInterval),
	)

	if isBossWave(cfg.Waves.BossWaves, sess.Wave) {
		st.PendingSpawns = append(st.PendingSpawns, world.PendingSpawn{
			Delay:     cfg.Waves.BossDelay,
			Archetype: cfg.Waves.BossArchetype,
			Boss:      true,
		})
		event.Emit(s.d.Bus, event.BossIncoming{Wave: sess.Wave, Delay: cfg.Waves.BossDelay})
		return
	}

	// Ordinary wave: stagger the batch across the window so it never pops
	// in on a single frame.
	n := scaling.BatchSize
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		st.PendingSpawns = append(st.PendingSpawns, world.PendingSpawn{
			Delay: cfg.Waves.BatchWindow * time.Duration(i) / time.Duration(n),
		})
	}
}

func isBossWave(bossWaves []int, wave int) bool {
	for _, w := range bossWaves {
		if w == wave {
			return true
		}
	}
	return false
}
