package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lanefall/engine/internal/core/event"
	"github.com/lanefall/engine/internal/geom"
	"github.com/lanefall/engine/internal/world"
)

func addShot(d *Deps, pos geom.Vec2, damage, radius float64, pierce, area bool) *world.Projectile {
	p := &world.Projectile{
		Pos:       pos,
		Damage:    damage,
		Lifetime:  time.Minute,
		HitRadius: radius,
		Pierce:    pierce,
		Area:      area,
	}
	d.State.AddProjectile(p)
	return p
}

func addTarget(d *Deps, pos geom.Vec2, health, radius float64) *world.Enemy {
	e := &world.Enemy{
		Archetype: "grunt",
		Pos:       pos,
		Health:    health,
		MaxHealth: health,
		HitRadius: radius,
	}
	d.State.AddEnemy(e)
	return e
}

func TestCollisionDirectHitKills(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{Z: -10}, 1, 1, false, false)
	e := addTarget(d, geom.Vec2{Z: -10.5}, 1, 1)

	sys.Update(0)

	require.LessOrEqual(t, e.Health, 0.0)
	require.Equal(t, 1, d.State.Session.Kills)
	require.True(t, d.State.Removed(e.ID))
	require.True(t, d.State.Removed(p.ID))

	journal := d.Bus.DrainJournal()
	require.Len(t, eventsOf[event.EnemyKilled](journal), 1)
	removed := eventsOf[event.EntityRemoved](journal)
	require.Len(t, removed, 2)
	require.Equal(t, event.KindEnemy, removed[0].Kind)
	require.Equal(t, event.KindProjectile, removed[1].Kind)
}

func TestCollisionTouchingRadiiIsNotAHit(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{}, 1, 1, false, false)
	e := addTarget(d, geom.Vec2{X: 2}, 3, 1)

	sys.Update(0)

	// Distance exactly equal to the combined radii stays a miss.
	require.Equal(t, 3.0, e.Health)
	require.False(t, d.State.Removed(p.ID))
}

func TestCollisionPlainShotStopsAtFirstEnemy(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{Z: -10}, 1, 1, false, false)
	first := addTarget(d, geom.Vec2{Z: -10.2}, 5, 1)
	second := addTarget(d, geom.Vec2{Z: -10.4}, 5, 1)

	sys.Update(0)

	require.Equal(t, 4.0, first.Health)
	require.Equal(t, 5.0, second.Health)
	require.True(t, d.State.Removed(p.ID))
}

func TestCollisionPierceHitsEachEnemyOnce(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{Z: -10}, 2, 1, true, false)
	tough := addTarget(d, geom.Vec2{Z: -10.2}, 5, 1)
	frail := addTarget(d, geom.Vec2{Z: -10.4}, 2, 1)

	sys.Update(0)

	// One pass damages both, the piercing shot flies on.
	require.Equal(t, 3.0, tough.Health)
	require.LessOrEqual(t, frail.Health, 0.0)
	require.True(t, d.State.Removed(frail.ID))
	require.False(t, d.State.Removed(p.ID))
	require.Equal(t, 1, d.State.Session.Kills)
}

func TestCollisionAreaDetonation(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{Z: -10}, 4, 2, false, true)
	// One enemy on the detonation point, one halfway out, one exactly on the
	// blast radius, one beyond it.
	center := addTarget(d, geom.Vec2{Z: -10}, 10, 1)
	mid := addTarget(d, geom.Vec2{X: 3, Z: -10}, 3, 1)
	edge := addTarget(d, geom.Vec2{X: 6, Z: -10}, 10, 1)
	far := addTarget(d, geom.Vec2{Z: -3}, 3, 1)

	sys.Update(0)

	// Full damage at the detonation point, 85% halfway out with the default
	// 0.3 edge falloff, 70% on the radius itself, nothing past it.
	require.InDelta(t, 6.0, center.Health, 1e-9)
	require.InDelta(t, -0.4, mid.Health, 1e-9)
	require.InDelta(t, 7.2, edge.Health, 1e-9)
	require.Equal(t, 3.0, far.Health)

	// Knockback pushes radially away and fades to nothing at the radius; the
	// epicenter enemy has no direction to be pushed in.
	require.Equal(t, geom.Vec2{Z: -10}, center.Pos)
	require.InDelta(t, 4.5, mid.Pos.X, 1e-9)
	require.InDelta(t, -10.0, mid.Pos.Z, 1e-9)
	require.InDelta(t, 6.0, edge.Pos.X, 1e-9)

	require.True(t, d.State.Removed(mid.ID))
	require.True(t, d.State.Removed(p.ID))
	require.Equal(t, 1, d.State.Session.Kills)

	journal := d.Bus.DrainJournal()
	blasts := eventsOf[event.AreaDamage](journal)
	require.Len(t, blasts, 1)
	require.Equal(t, geom.Vec2{Z: -10}, blasts[0].Center)
	require.Equal(t, d.Cfg.Combat.ExplosionRadius, blasts[0].Radius)

	// The blast announcement precedes the kills it causes.
	require.IsType(t, event.AreaDamage{}, journal[0])
}

func TestCollisionKnockbackClampsToLane(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	addShot(d, geom.Vec2{X: 9, Z: -10}, 4, 2, false, true)
	addTarget(d, geom.Vec2{X: 9, Z: -10}, 20, 1)
	wall := addTarget(d, geom.Vec2{X: 11.8, Z: -10}, 20, 1)

	sys.Update(0)

	// The push would carry it to x=13.4; the lane wall stops it.
	require.Equal(t, d.Cfg.Lane.HalfWidth, wall.Pos.X)
}

func TestCollisionSkipsCondemned(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	p := addShot(d, geom.Vec2{Z: -10}, 1, 1, false, false)
	e := addTarget(d, geom.Vec2{Z: -10.5}, 3, 1)
	d.State.Remove(e.ID)

	sys.Update(0)
	require.Equal(t, 3.0, e.Health)
	require.False(t, d.State.Removed(p.ID))

	// And the other way round: an expired projectile cannot hit.
	d2 := newTestDeps(t)
	sys2 := NewCollisionSystem(d2)
	p2 := addShot(d2, geom.Vec2{Z: -10}, 1, 1, false, false)
	e2 := addTarget(d2, geom.Vec2{Z: -10.5}, 3, 1)
	d2.State.Remove(p2.ID)

	sys2.Update(0)
	require.Equal(t, 3.0, e2.Health)
}

func TestCollisionInertAfterGameOver(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewCollisionSystem(d)

	addShot(d, geom.Vec2{Z: -10}, 1, 1, false, false)
	e := addTarget(d, geom.Vec2{Z: -10.5}, 3, 1)
	d.State.Session.Status = world.StatusGameOver

	sys.Update(0)
	require.Equal(t, 3.0, e.Health)
	require.Empty(t, d.Bus.DrainJournal())
}
