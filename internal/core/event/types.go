package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/lanefall/engine/internal/core/ecs"
	"github.com/lanefall/engine/internal/geom"
)

// EntityKind tags spawn/removal events so observers can route them without
// inspecting entity state.
type EntityKind string

const (
	KindEnemy      EntityKind = "enemy"
	KindProjectile EntityKind = "projectile"
	KindUpgrade    EntityKind = "upgrade"
	KindClone      EntityKind = "clone"
)

// EntitySpawned is emitted for every entity entering the world.
type EntitySpawned struct {
	Kind     EntityKind
	ID       ecs.EntityID
	Position geom.Vec2
}

// EntityRemoved is emitted for every entity leaving the world, whatever the
// reason (kill, expiry, pickup, reach).
type EntityRemoved struct {
	Kind EntityKind
	ID   ecs.EntityID
}

// EnemyKilled is emitted when an enemy dies to weapon damage. Reach-the-line
// removals do not produce it and carry no kill credit.
type EnemyKilled struct {
	ID    ecs.EntityID
	Wave  int
	Boss  bool
	Kills int // session total after this kill
}

// PlayerDamaged is emitted when an enemy reaches the player's line and lands
// its contact damage. Health is the post-damage value, already clamped at 0.
type PlayerDamaged struct {
	Damage float64
	Health float64
	Source ecs.EntityID
}

// UpgradeCollected is emitted when the player picks an upgrade up. WeaponID
// is set only for weapon-switch upgrades.
type UpgradeCollected struct {
	ID       ecs.EntityID
	Kind     string
	WeaponID string
}

// WaveChanged is emitted on every wave transition with the freshly computed
// difficulty scalars.
type WaveChanged struct {
	Wave          int
	HealthMult    float64
	SpeedMult     float64
	SpawnInterval time.Duration
}

// BossIncoming is emitted when a boss wave begins, Delay before the boss
// actually spawns. Presentation layers use it for the warning banner.
type BossIncoming struct {
	Wave  int
	Delay time.Duration
}

// AreaDamage is emitted once per area-damage resolution so the presentation
// layer can run its blast/screen-shake effect. The core never renders.
type AreaDamage struct {
	Center geom.Vec2
	Radius float64
}

// GameOver is emitted exactly once, when player health reaches zero. The
// session is terminal afterwards; only Reset starts a new one.
type GameOver struct {
	SessionID uuid.UUID
	Kills     int
	Wave      int
	Elapsed   time.Duration
}

// WeaponFallback is emitted when an unknown weapon id is selected or fired
// and the default weapon is substituted.
type WeaponFallback struct {
	Requested string
	Fallback  string
}
