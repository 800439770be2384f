package world

import "github.com/lanefall/engine/internal/geom"

// Player holds the player character's runtime state. Created once per
// session and mutated by input and enemy-reach resolution; it is never
// destroyed, the session ends instead.
type Player struct {
	Pos             geom.Vec2
	Health          float64
	MaxHealth       float64
	WeaponID        string
	MovementEnabled bool
	Boundary        float64 // lateral clamp: |X| <= Boundary
}

// Input is the held-intent state the presentation layer feeds in between
// ticks. Left and right are independent booleans; both held cancels out.
// FireOnce is a one-shot latch the fire stage consumes every tick.
type Input struct {
	Left     bool
	Right    bool
	FireHeld bool
	FireOnce bool
}
