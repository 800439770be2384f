package system

import "time"

// Phase defines execution ordering within a single tick. The simulation
// depends on this exact sequence: the player moves before collision uses its
// position, projectiles resolve before enemies reach the line, and spawns
// land after the collision pass so new entities sit out the tick they were
// born in.
type Phase int

const (
	PhaseInput       Phase = iota // 0: player movement from held intents
	PhaseEvents                   // 1: dispatch last tick's events to subscribers
	PhaseProjectiles              // 2: projectile advance + expiry
	PhaseCollision                // 3: projectile–enemy hits, pierce, area blasts
	PhaseAdvance                  // 4: enemy advance + reach-the-line resolution
	PhaseDirector                 // 5: wave progression, boss/batch scheduling
	PhaseSpawn                    // 6: staggered spawn queue + regular spawn timer
	PhaseUpgrades                 // 7: upgrade advance, pickup, timed spawn
	PhaseFollowers                // 8: clone reposition relative to player
	PhaseFire                     // 9: player + mirrored clone fire
	PhaseCleanup                  // 10: destroy queued entities, compact lists
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
