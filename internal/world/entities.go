package world

import (
	"time"

	"github.com/lanefall/engine/internal/core/ecs"
	"github.com/lanefall/engine/internal/geom"
)

// Enemy holds runtime data for one enemy in the lane. Health, speed, contact
// damage and hit radius are snapshotted at spawn time with wave scaling (and
// boss multipliers) already applied; later wave changes never touch live
// enemies.
type Enemy struct {
	ID            ecs.EntityID
	Archetype     string
	Pos           geom.Vec2
	Speed         float64 // nominal forward speed; advance_scale applies per tick
	Health        float64
	MaxHealth     float64
	ContactDamage float64
	HitRadius     float64
	Boss          bool
}

// Projectile holds runtime data for one projectile in flight. Pierce, area
// and the hit radius are copied from the weapon template at spawn, so a
// weapon-table reload never changes shots already in the air.
type Projectile struct {
	ID        ecs.EntityID
	Pos       geom.Vec2
	Vel       geom.Vec2
	Damage    float64
	Lifetime  time.Duration // remaining flight time, strictly decreasing
	WeaponID  string
	Pierce    bool
	Area      bool
	HitRadius float64
}

// Upgrade holds runtime data for one upgrade drifting toward the player.
// Kind matches the upgrade table's kind values; WeaponID and HealAmount are
// filled per kind.
type Upgrade struct {
	ID         ecs.EntityID
	Pos        geom.Vec2
	Kind       string
	WeaponID   string
	HealAmount float64
	Speed      float64 // forward units per second; outruns enemy advance
}

// Clone is a follower that mirrors the player's fire from a fixed offset.
// Its position is derived from the player every tick; it has no physics, no
// health and no independent lifetime.
type Clone struct {
	ID     ecs.EntityID
	Slot   int // creation index, fixes the follow offset
	Offset geom.Vec2
	Pos    geom.Vec2
}

// PendingSpawn is an enemy spawn scheduled a short delay into the future.
// Wave batches, spawn bursts and boss entrances all stagger through these so
// a batch never pops in on a single frame. Stats are resolved when the delay
// runs out, not when the entry is queued.
type PendingSpawn struct {
	Delay     time.Duration
	Archetype string
	Boss      bool
}

// PendingShot is a mirrored clone shot scheduled slightly after the player's
// own. The clone's position is read when the shot actually fires.
type PendingShot struct {
	Delay       time.Duration
	CloneID     ecs.EntityID
	WeaponID    string
	DamageScale float64
}
