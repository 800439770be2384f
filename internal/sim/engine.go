// Package sim assembles the simulation and exposes the embedding API: the
// shell calls Tick with wall-clock deltas and feeds intents between ticks;
// everything else happens inside. Single-goroutine access only.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lanefall/engine/internal/config"
	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/scripting"
	"github.com/lanefall/engine/internal/system"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
)

// Tick deltas outside (0, maxTickDelta] are clamped rather than rejected:
// a stalled frame must not blow up the integration.
const (
	minTickDelta = time.Millisecond
	maxTickDelta = 100 * time.Millisecond
)

// Engine owns one simulation: the world state, the stage pipeline, the event
// bus and the session RNG. Construction validates configuration against the
// content tables and fails fast; after that the tick never errors.
type Engine struct {
	cfg     *config.Config
	state   *world.State
	bus     *event.Bus
	runner  *coresys.Runner
	deps    *system.Deps
	weapons *data.WeaponTable
	lua     *scripting.Engine
	log     *zap.Logger
}

// New wires a ready-to-tick engine. The Lua engine may be nil (built-in
// balance formulas only); everything else is required.
func New(
	cfg *config.Config,
	weapons *data.WeaponTable,
	enemies *data.EnemyTable,
	upgrades *data.UpgradeTable,
	lua *scripting.Engine,
	log *zap.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkTables(cfg, weapons, enemies, upgrades); err != nil {
		return nil, err
	}

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := world.NewState()
	bus := event.NewBus()
	deps := &system.Deps{
		State:    state,
		Bus:      bus,
		Cfg:      cfg,
		Weapons:  weapons,
		Enemies:  enemies,
		Upgrades: upgrades,
		Lua:      lua,
		RNG:      rand.New(rand.NewSource(seed)),
		Log:      log,
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewMovementSystem(deps))
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(system.NewProjectileSystem(deps))
	runner.Register(system.NewCollisionSystem(deps))
	runner.Register(system.NewAdvanceSystem(deps))
	runner.Register(system.NewDirectorSystem(deps))
	runner.Register(system.NewSpawnSystem(deps))
	runner.Register(system.NewUpgradeSystem(deps))
	runner.Register(system.NewCloneSystem(deps))
	runner.Register(system.NewFireSystem(deps))
	runner.Register(system.NewCleanupSystem(state))

	e := &Engine{
		cfg:     cfg,
		state:   state,
		bus:     bus,
		runner:  runner,
		deps:    deps,
		weapons: weapons,
		lua:     lua,
		log:     log,
	}
	e.start()
	return e, nil
}

// checkTables verifies every id the configuration and tables reference
// against each other, so a bad id fails construction instead of a tick.
func checkTables(cfg *config.Config, weapons *data.WeaponTable, enemies *data.EnemyTable, upgrades *data.UpgradeTable) error {
	if weapons.Get(cfg.Player.StartWeapon) == nil {
		return fmt.Errorf("player: start_weapon %q not in the weapon table", cfg.Player.StartWeapon)
	}
	if len(cfg.Waves.BossWaves) > 0 && enemies.Get(cfg.Waves.BossArchetype) == nil {
		return fmt.Errorf("waves: boss_archetype %q not in the enemy table", cfg.Waves.BossArchetype)
	}
	for _, u := range upgrades.All() {
		if u.Kind == data.UpgradeWeapon && weapons.Get(u.WeaponID) == nil {
			return fmt.Errorf("upgrade %s: weapon_id %q not in the weapon table", u.ID, u.WeaponID)
		}
	}
	return nil
}

// start begins a fresh session: full health, the starting weapon, wave 1
// scaling, everything else empty.
func (e *Engine) start() {
	scaling := e.lua.CalcWaveScaling(system.WaveContextFor(e.cfg, 1))
	e.state.Start(
		world.Player{
			Health:          e.cfg.Player.MaxHealth,
			MaxHealth:       e.cfg.Player.MaxHealth,
			WeaponID:        e.cfg.Player.StartWeapon,
			MovementEnabled: true,
			Boundary:        e.cfg.Lane.Boundary(),
		},
		world.Difficulty{
			HealthMult:    scaling.HealthMult,
			SpeedMult:     scaling.SpeedMult,
			SpawnInterval: scaling.SpawnInterval,
			BatchSize:     scaling.BatchSize,
		},
	)
	e.log.Info("session started",
		zap.String("session", e.state.Session.ID.String()),
		zap.String("weapon", e.cfg.Player.StartWeapon),
		zap.Duration("spawn_interval", scaling.SpawnInterval),
	)
}

// Tick advances the simulation by dtSeconds and returns everything that
// happened, in emit order. Deltas at or below zero (or not a number) clamp
// to one millisecond, oversized ones to a tenth of a second.
//
// After GameOver only the event dispatch stage runs, so subscribers still
// receive the final tick's events while the world stays frozen.
func (e *Engine) Tick(dtSeconds float64) []any {
	dt := time.Duration(dtSeconds * float64(time.Second))
	if math.IsNaN(dtSeconds) || dt <= 0 {
		dt = minTickDelta
	} else if dt > maxTickDelta {
		dt = maxTickDelta
	}

	if e.state.Session.Over() {
		e.runner.TickPhase(coresys.PhaseEvents, dt)
		return e.bus.DrainJournal()
	}

	e.state.Session.Elapsed += dt
	e.state.Session.WaveElapsed += dt
	e.runner.Tick(dt)
	return e.bus.DrainJournal()
}

// SetMovementIntent updates the held lateral movement state.
func (e *Engine) SetMovementIntent(left, right bool) {
	if e.state.Session.Over() {
		return
	}
	e.state.Input.Left = left
	e.state.Input.Right = right
}

// SetFireIntent updates the held-fire state for continuous fire.
func (e *Engine) SetFireIntent(held bool) {
	if e.state.Session.Over() {
		return
	}
	e.state.Input.FireHeld = held
}

// FireOnce latches a single shot for the next tick, rate-limited identically
// to continuous fire.
func (e *Engine) FireOnce() {
	if e.state.Session.Over() {
		return
	}
	e.state.Input.FireOnce = true
}

// SelectWeapon switches the player's current weapon. An unknown id falls
// back to the table default and emits WeaponFallback rather than failing.
func (e *Engine) SelectWeapon(id string) {
	if e.state.Session.Over() {
		return
	}
	e.state.Player.WeaponID = e.deps.ResolveWeapon(id).ID
}

// Snapshot returns a read-only copy of the world for rendering. Safe to hold
// across ticks; it never aliases live state.
func (e *Engine) Snapshot() *world.Snapshot {
	return e.state.Snapshot()
}

// Reset discards the session and starts a fresh one: wave 1, full health,
// empty collections, a new session id. Subscriptions survive; undelivered
// events from the dead session do not.
func (e *Engine) Reset() {
	e.bus.Reset()
	e.start()
}

// Bus exposes the event bus for subscribers. Register handlers before the
// first Tick; they run on the tick goroutine.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}
