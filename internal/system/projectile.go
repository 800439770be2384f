package system

import (
	"time"

	"github.com/lanefall/engine/internal/core/event"
	coresys "github.com/lanefall/engine/internal/core/system"
)

// ProjectileSystem advances projectiles and expires them. Phase 2
// (Projectiles) runs before the collision pass, so a projectile expiring
// here never lands a hit in the same tick.
type ProjectileSystem struct {
	d *Deps
}

func NewProjectileSystem(d *Deps) *ProjectileSystem {
	return &ProjectileSystem{d: d}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseProjectiles }

func (s *ProjectileSystem) Update(dt time.Duration) {
	st := s.d.State
	if st.Session.Over() {
		return
	}

	step := dt.Seconds() * s.d.Cfg.Engine.SpeedMultiplier
	farZ := s.d.Cfg.Lane.FarZ

	for _, id := range st.ProjectileIDs() {
		p := st.Projectile(id)
		if p == nil || st.Removed(id) {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(step))
		p.Lifetime -= dt
		if p.Lifetime <= 0 || p.Pos.Z < farZ {
			s.d.Despawn(event.KindProjectile, id)
		}
	}
}
