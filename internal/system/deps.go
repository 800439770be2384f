// Package system implements the tick pipeline. One system per stage, run in
// phase order by the core runner; every stage mutates world state through
// the shared Deps bag and announces what happened on the event bus.
package system

import (
	"math/rand"

	"github.com/lanefall/engine/internal/config"
	"github.com/lanefall/engine/internal/core/ecs"
	"github.com/lanefall/engine/internal/core/event"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/geom"
	"github.com/lanefall/engine/internal/scripting"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
)

// Deps bundles everything the pipeline stages share: world state, the event
// bus, configuration, content tables, the balance scripts and the session
// RNG. One instance is built by the engine and handed to every system.
// All draws go through RNG so a fixed seed replays identically.
type Deps struct {
	State    *world.State
	Bus      *event.Bus
	Cfg      *config.Config
	Weapons  *data.WeaponTable
	Enemies  *data.EnemyTable
	Upgrades *data.UpgradeTable
	Lua      *scripting.Engine
	RNG      *rand.Rand
	Log      *zap.Logger
}

// WaveContextFor assembles the scripting input for one wave's scaling
// computation. The director uses it on every transition and the engine for
// the initial wave-1 snapshot, so both always agree.
func WaveContextFor(cfg *config.Config, wave int) scripting.WaveContext {
	return scripting.WaveContext{
		Wave:         wave,
		BaseInterval: cfg.Spawn.BaseInterval,
		Step:         cfg.Spawn.Step,
		Floor:        cfg.Spawn.Floor,
	}
}

// --- spawning ---

// randLateral draws a uniform lateral position across the lane interior,
// the same strip the player can reach.
func (d *Deps) randLateral() float64 {
	b := d.Cfg.Lane.Boundary()
	return (d.RNG.Float64()*2 - 1) * b
}

// rollArchetype draws an enemy archetype by spawn weight among those
// unlocked at the given wave. The table guarantees at least one wave-1
// archetype with positive weight, so the draw cannot come up empty.
func (d *Deps) rollArchetype(wave int) *data.EnemyInfo {
	total := 0
	for _, info := range d.Enemies.All() {
		if info.Weight > 0 && info.MinWave <= wave {
			total += info.Weight
		}
	}
	if total <= 0 {
		for _, info := range d.Enemies.All() {
			if info.Weight > 0 {
				return info
			}
		}
		return d.Enemies.All()[0]
	}
	roll := d.RNG.Intn(total)
	for _, info := range d.Enemies.All() {
		if info.Weight <= 0 || info.MinWave > wave {
			continue
		}
		roll -= info.Weight
		if roll < 0 {
			return info
		}
	}
	return d.Enemies.All()[0]
}

// SpawnEnemy stamps out one enemy at the far end of the lane. Stats are
// snapshotted here with the current wave scaling applied; boss spawns
// additionally get the boss multipliers on top. An empty archetype means
// "roll one by weight".
func (d *Deps) SpawnEnemy(archetype string, boss bool) ecs.EntityID {
	sess := &d.State.Session

	var info *data.EnemyInfo
	if archetype == "" {
		info = d.rollArchetype(sess.Wave)
	} else {
		info = d.Enemies.Get(archetype)
		if info == nil {
			d.Log.Warn("unknown enemy archetype, rolling by weight",
				zap.String("archetype", archetype),
			)
			info = d.rollArchetype(sess.Wave)
		}
	}

	health := info.Health * sess.Scaling.HealthMult
	speed := info.Speed * sess.Scaling.SpeedMult
	contact := info.ContactDamage
	radius := info.HitRadius
	if boss {
		bs := d.Lua.CalcBossStats(sess.Wave)
		health *= bs.HealthMult
		contact *= bs.ContactMult
		radius *= bs.RadiusMult
	}

	e := &world.Enemy{
		Archetype:     info.ID,
		Pos:           geom.Vec2{X: d.randLateral(), Z: d.Cfg.Lane.SpawnZ},
		Speed:         speed,
		Health:        health,
		MaxHealth:     health,
		ContactDamage: contact,
		HitRadius:     radius,
		Boss:          boss,
	}
	id := d.State.AddEnemy(e)
	event.Emit(d.Bus, event.EntitySpawned{Kind: event.KindEnemy, ID: id, Position: e.Pos})
	return id
}

// SpawnUpgrade drops one upgrade at the far end of the lane.
func (d *Deps) SpawnUpgrade(info *data.UpgradeInfo) ecs.EntityID {
	u := &world.Upgrade{
		Pos:        geom.Vec2{X: d.randLateral(), Z: d.Cfg.Lane.SpawnZ},
		Kind:       string(info.Kind),
		WeaponID:   info.WeaponID,
		HealAmount: info.HealAmount,
		Speed:      d.Cfg.Upgrades.Speed,
	}
	id := d.State.AddUpgrade(u)
	event.Emit(d.Bus, event.EntitySpawned{Kind: event.KindUpgrade, ID: id, Position: u.Pos})
	return id
}

// SpawnProjectile is the single entry point for every shot: the player fires
// it with scale 1, mirrored clone shots with the configured reduced scale.
// An unknown weapon id falls back to the table default and emits
// WeaponFallback rather than failing the tick.
func (d *Deps) SpawnProjectile(origin geom.Vec2, weaponID string, damageScale float64) ecs.EntityID {
	w := d.ResolveWeapon(weaponID)
	p := &world.Projectile{
		Pos:       origin,
		Vel:       geom.Vec2{X: 0, Z: -w.ProjectileSpeed},
		Damage:    w.Damage * damageScale,
		Lifetime:  w.Lifetime,
		WeaponID:  w.ID,
		Pierce:    w.Pierce,
		Area:      w.Area,
		HitRadius: w.HitRadius,
	}
	id := d.State.AddProjectile(p)
	event.Emit(d.Bus, event.EntitySpawned{Kind: event.KindProjectile, ID: id, Position: p.Pos})
	return id
}

// ResolveWeapon maps a weapon id to its template, substituting the table
// default (with a warning event) when the id is unknown.
func (d *Deps) ResolveWeapon(weaponID string) *data.WeaponInfo {
	if w := d.Weapons.Get(weaponID); w != nil {
		return w
	}
	def := d.Weapons.Default()
	d.Log.Warn("unknown weapon id, falling back to default",
		zap.String("requested", weaponID),
		zap.String("fallback", def.ID),
	)
	event.Emit(d.Bus, event.WeaponFallback{Requested: weaponID, Fallback: def.ID})
	return def
}

// --- removal ---

// Despawn queues an entity for end-of-tick destruction and announces the
// removal. Idempotence comes from the destroy queue; callers still guard
// with State.Removed to avoid double events.
func (d *Deps) Despawn(kind event.EntityKind, id ecs.EntityID) {
	d.State.Remove(id)
	event.Emit(d.Bus, event.EntityRemoved{Kind: kind, ID: id})
}

// KillEnemy removes an enemy that died to weapon damage, crediting the kill.
// Reach-the-line removals go through Despawn directly and credit nothing.
func (d *Deps) KillEnemy(e *world.Enemy) {
	sess := &d.State.Session
	sess.Kills++
	event.Emit(d.Bus, event.EnemyKilled{
		ID:    e.ID,
		Wave:  sess.Wave,
		Boss:  e.Boss,
		Kills: sess.Kills,
	})
	d.Despawn(event.KindEnemy, e.ID)
}
