package world

import (
	"time"

	"github.com/google/uuid"

	"github.com/lanefall/engine/internal/core/ecs"
	"github.com/lanefall/engine/internal/geom"
)

// Snapshot is the read-only mirror handed to the presentation layer after a
// tick. Everything is copied by value; mutating a snapshot never touches
// live state.
type Snapshot struct {
	Session     SessionView
	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Upgrades    []UpgradeView
	Clones      []CloneView
}

type SessionView struct {
	ID      uuid.UUID
	Status  Status
	Wave    int
	Kills   int
	Elapsed time.Duration
	Scaling Difficulty
}

type PlayerView struct {
	Pos       geom.Vec2
	Health    float64
	MaxHealth float64
	WeaponID  string
	Boundary  float64
}

type EnemyView struct {
	ID        ecs.EntityID
	Archetype string
	Pos       geom.Vec2
	Health    float64
	MaxHealth float64
	HitRadius float64
	Boss      bool
}

type ProjectileView struct {
	ID        ecs.EntityID
	Pos       geom.Vec2
	Vel       geom.Vec2
	WeaponID  string
	HitRadius float64
}

type UpgradeView struct {
	ID   ecs.EntityID
	Pos  geom.Vec2
	Kind string
}

type CloneView struct {
	ID   ecs.EntityID
	Slot int
	Pos  geom.Vec2
}

// Snapshot builds the render view in spawn order. Entities condemned but not
// yet flushed are skipped so a mid-tick snapshot never shows the dead.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		Session: SessionView{
			ID:      s.Session.ID,
			Status:  s.Session.Status,
			Wave:    s.Session.Wave,
			Kills:   s.Session.Kills,
			Elapsed: s.Session.Elapsed,
			Scaling: s.Session.Scaling,
		},
		Player: PlayerView{
			Pos:       s.Player.Pos,
			Health:    s.Player.Health,
			MaxHealth: s.Player.MaxHealth,
			WeaponID:  s.Player.WeaponID,
			Boundary:  s.Player.Boundary,
		},
		Enemies:     make([]EnemyView, 0, s.enemies.Len()),
		Projectiles: make([]ProjectileView, 0, s.projectiles.Len()),
		Upgrades:    make([]UpgradeView, 0, s.upgrades.Len()),
		Clones:      make([]CloneView, 0, s.clones.Len()),
	}
	for _, id := range s.enemyOrder {
		e := s.Enemy(id)
		if e == nil || s.Removed(id) {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:        e.ID,
			Archetype: e.Archetype,
			Pos:       e.Pos,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			HitRadius: e.HitRadius,
			Boss:      e.Boss,
		})
	}
	for _, id := range s.projectileOrder {
		p := s.Projectile(id)
		if p == nil || s.Removed(id) {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:        p.ID,
			Pos:       p.Pos,
			Vel:       p.Vel,
			WeaponID:  p.WeaponID,
			HitRadius: p.HitRadius,
		})
	}
	for _, id := range s.upgradeOrder {
		u := s.Upgrade(id)
		if u == nil || s.Removed(id) {
			continue
		}
		snap.Upgrades = append(snap.Upgrades, UpgradeView{
			ID:   u.ID,
			Pos:  u.Pos,
			Kind: u.Kind,
		})
	}
	for _, id := range s.cloneOrder {
		c := s.Clone(id)
		if c == nil || s.Removed(id) {
			continue
		}
		snap.Clones = append(snap.Clones, CloneView{
			ID:   c.ID,
			Slot: c.Slot,
			Pos:  c.Pos,
		})
	}
	return snap
}
