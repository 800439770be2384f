package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lanefall/engine/internal/config"
	"github.com/lanefall/engine/internal/core/event"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/geom"
	"github.com/lanefall/engine/internal/scripting"
	"github.com/lanefall/engine/internal/world"
)

// newTestDeps builds a Deps bag over a fresh started session: default
// config, a small fixed content set, no Lua (the nil engine falls back to
// the stock formulas) and a seeded RNG so draws replay identically.
func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	weapons, err := data.NewWeaponTable([]*data.WeaponInfo{
		{ID: "blaster", Name: "Blaster", Damage: 1, FireInterval: 300 * time.Millisecond,
			ProjectileSpeed: 40, Lifetime: 2 * time.Second, HitRadius: 1, Default: true},
		{ID: "laser", Name: "Twin Laser", Damage: 2, FireInterval: 650 * time.Millisecond,
			ProjectileSpeed: 55, Lifetime: 1600 * time.Millisecond, HitRadius: 1, Pierce: true},
		{ID: "rocket", Name: "Rocket Pod", Damage: 4, FireInterval: 1100 * time.Millisecond,
			ProjectileSpeed: 28, Lifetime: 2600 * time.Millisecond, HitRadius: 2, Area: true},
	})
	require.NoError(t, err)

	enemies, err := data.NewEnemyTable([]*data.EnemyInfo{
		{ID: "grunt", Name: "Grunt", Health: 3, Speed: 1, ContactDamage: 5, HitRadius: 1, Weight: 6, MinWave: 1},
		{ID: "runner", Name: "Runner", Health: 2, Speed: 1.8, ContactDamage: 4, HitRadius: 0.8, Weight: 3, MinWave: 2},
		{ID: "brute", Name: "Brute", Health: 8, Speed: 0.6, ContactDamage: 12, HitRadius: 1.3, Weight: 0, MinWave: 3},
	})
	require.NoError(t, err)

	upgrades, err := data.NewUpgradeTable([]*data.UpgradeInfo{
		{ID: "patch_kit", Kind: data.UpgradeHeal, HealAmount: 10, Weight: 4},
		{ID: "echo_clone", Kind: data.UpgradeClone, Weight: 3},
		{ID: "laser_module", Kind: data.UpgradeWeapon, WeaponID: "laser", Weight: 2},
	})
	require.NoError(t, err)

	cfg := config.Default()
	d := &Deps{
		State:    world.NewState(),
		Bus:      event.NewBus(),
		Cfg:      cfg,
		Weapons:  weapons,
		Enemies:  enemies,
		Upgrades: upgrades,
		Lua:      nil,
		RNG:      rand.New(rand.NewSource(1)),
		Log:      zap.NewNop(),
	}

	scaling := scripting.FallbackWaveScaling(WaveContextFor(cfg, 1))
	d.State.Start(world.Player{
		Health:          cfg.Player.MaxHealth,
		MaxHealth:       cfg.Player.MaxHealth,
		WeaponID:        cfg.Player.StartWeapon,
		MovementEnabled: true,
		Boundary:        cfg.Lane.Boundary(),
	}, world.Difficulty{
		HealthMult:    scaling.HealthMult,
		SpeedMult:     scaling.SpeedMult,
		SpawnInterval: scaling.SpawnInterval,
		BatchSize:     scaling.BatchSize,
	})
	return d
}

// eventsOf filters one event type out of a journal, in emit order.
func eventsOf[T any](journal []any) []T {
	var out []T
	for _, ev := range journal {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}

func TestSpawnEnemyAppliesWaveScaling(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	d.State.Session.Scaling.HealthMult = 2.0
	d.State.Session.Scaling.SpeedMult = 1.5

	id := d.SpawnEnemy("grunt", false)
	e := d.State.Enemy(id)
	require.NotNil(t, e)
	require.Equal(t, "grunt", e.Archetype)
	require.InDelta(t, 6.0, e.Health, 1e-9)
	require.InDelta(t, 6.0, e.MaxHealth, 1e-9)
	require.InDelta(t, 1.5, e.Speed, 1e-9)
	require.Equal(t, 5.0, e.ContactDamage)
	require.False(t, e.Boss)

	// Spawns land at the far end, inside the reachable strip.
	require.Equal(t, d.Cfg.Lane.SpawnZ, e.Pos.Z)
	require.LessOrEqual(t, e.Pos.X, d.Cfg.Lane.Boundary())
	require.GreaterOrEqual(t, e.Pos.X, -d.Cfg.Lane.Boundary())

	spawned := eventsOf[event.EntitySpawned](d.Bus.DrainJournal())
	require.Len(t, spawned, 1)
	require.Equal(t, event.KindEnemy, spawned[0].Kind)
	require.Equal(t, id, spawned[0].ID)
}

func TestSpawnEnemyBossMultipliers(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	d.State.Session.Scaling.HealthMult = 1.5

	id := d.SpawnEnemy("brute", true)
	e := d.State.Enemy(id)
	require.NotNil(t, e)
	require.True(t, e.Boss)
	// Base 8, wave mult 1.5, boss health mult 3.
	require.InDelta(t, 36.0, e.Health, 1e-9)
	// Base 12 doubled; base radius 1.3 grown by 1.6.
	require.InDelta(t, 24.0, e.ContactDamage, 1e-9)
	require.InDelta(t, 2.08, e.HitRadius, 1e-9)
}

func TestSpawnEnemyRollRespectsWaveGate(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)

	// Wave 1: runner is locked until wave 2 and brute has no weight, so the
	// roll can only ever come up grunt.
	for i := 0; i < 20; i++ {
		require.Equal(t, "grunt", d.rollArchetype(1).ID)
	}

	// Wave 3: both weighted archetypes show up, the zero-weight one never.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[d.rollArchetype(3).ID] = true
	}
	require.True(t, seen["grunt"])
	require.True(t, seen["runner"])
	require.False(t, seen["brute"])
}

func TestSpawnEnemyUnknownArchetypeRolls(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	id := d.SpawnEnemy("phantom", false)
	e := d.State.Enemy(id)
	require.NotNil(t, e)
	require.Equal(t, "grunt", e.Archetype)
}

func TestSpawnProjectileSnapshotsWeapon(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	origin := d.State.Player.Pos

	id := d.SpawnProjectile(origin, "rocket", 0.5)
	p := d.State.Projectile(id)
	require.NotNil(t, p)
	require.Equal(t, "rocket", p.WeaponID)
	require.InDelta(t, 2.0, p.Damage, 1e-9) // 4 halved by the clone scale
	require.Equal(t, geom.Vec2{X: 0, Z: -28}, p.Vel)
	require.Equal(t, 2600*time.Millisecond, p.Lifetime)
	require.True(t, p.Area)
	require.False(t, p.Pierce)
	require.Equal(t, 2.0, p.HitRadius)
}

func TestResolveWeaponFallsBackToDefault(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)

	require.Equal(t, "laser", d.ResolveWeapon("laser").ID)

	w := d.ResolveWeapon("railgun")
	require.Equal(t, "blaster", w.ID)

	fb := eventsOf[event.WeaponFallback](d.Bus.DrainJournal())
	require.Len(t, fb, 1)
	require.Equal(t, "railgun", fb[0].Requested)
	require.Equal(t, "blaster", fb[0].Fallback)
}

func TestKillEnemyCreditsAndRemoves(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	st := d.State
	id := st.AddEnemy(&world.Enemy{Archetype: "grunt", Health: 0})

	d.KillEnemy(st.Enemy(id))

	require.Equal(t, 1, st.Session.Kills)
	require.True(t, st.Removed(id))

	journal := d.Bus.DrainJournal()
	kills := eventsOf[event.EnemyKilled](journal)
	require.Len(t, kills, 1)
	require.Equal(t, id, kills[0].ID)
	require.Equal(t, 1, kills[0].Wave)
	require.Equal(t, 1, kills[0].Kills)
	removed := eventsOf[event.EntityRemoved](journal)
	require.Len(t, removed, 1)
	require.Equal(t, event.KindEnemy, removed[0].Kind)
}
