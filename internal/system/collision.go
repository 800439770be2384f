package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
	"github.com/lanefall/engine/internal/geom"
)

// CollisionSystem resolves projectile–enemy hits. Phase 3 (Collision).
// Every surviving projectile is tested against every live enemy, both in
// spawn order; the pairing is O(P·E), fine at lane scale. A hit lands when
// the distance drops under the two hit radii combined.
//
// Area projectiles detonate on their first hit and are spent; piercing ones
// keep flying and may damage several enemies in one tick, at most once each;
// plain shots stop at the first enemy.
type CollisionSystem struct {
	d *Deps
}

func NewCollisionSystem(d *Deps) *CollisionSystem {
	return &CollisionSystem{d: d}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	for _, pid := range st.ProjectileIDs() {
		p := st.Projectile(pid)
		if p == nil || st.Removed(pid) {
			continue
		}

		for _, eid := range st.EnemyIDs() {
			e := st.Enemy(eid)
			if e == nil || st.Removed(eid) {
				continue
			}
			if geom.Dist(p.Pos, e.Pos) >= p.HitRadius+e.HitRadius {
				continue
			}

			if p.Area {
				s.resolveArea(p.Pos, p.Damage)
				s.d.Despawn(event.KindProjectile, pid)
				break
			}

			e.Health -= p.Damage
			if e.Health <= 0 {
				s.d.KillEnemy(e)
			}
			if !p.Pierce {
				s.d.Despawn(event.KindProjectile, pid)
				break
			}
		}
	}
}

// resolveArea applies blast damage and knockback around a detonation point.
// Damage falls off linearly from 100% at the center to the configured
// fraction at the radius edge and nothing beyond it; knockback pushes
// enemies radially away, fading the same way, with the lateral component
// clamped back inside the lane walls.
func (s *CollisionSystem) resolveArea(center geom.Vec2, base float64) {
	st := s.d.State
	cfg := s.d.Cfg
	radius := cfg.Combat.ExplosionRadius

	event.Emit(s.d.Bus, event.AreaDamage{Center: center, Radius: radius})

	for _, eid := range st.EnemyIDs() {
		e := st.Enemy(eid)
		if e == nil || st.Removed(eid) {
			continue
		}
		dist := geom.Dist(center, e.Pos)
		if dist > radius {
			continue
		}

		frac := dist / radius
		e.Health -= base * (1 - cfg.Combat.AreaFalloff*frac)

		push := cfg.Combat.Knockback * (1 - frac)
		dir := e.Pos.Sub(center).Normalize()
		e.Pos = e.Pos.Add(dir.Scale(push))
		e.Pos.X = geom.Clamp(e.Pos.X, -cfg.Lane.HalfWidth, cfg.Lane.HalfWidth)

		if e.Health <= 0 {
			s.d.KillEnemy(e)
		}
	}
}
