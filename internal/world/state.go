package world

import (
	"time"

	"github.com/google/uuid"

	"github.com/lanefall/engine/internal/core/ecs"
)

// State tracks everything alive in the lane plus the player, session and
// held input. Accessed only from the tick goroutine, no locks. The
// presentation layer reads Snapshot copies and submits intents; it never
// touches State directly.
//
// Each entity kind pairs a component store (id lookup) with a spawn-order id
// list. Systems iterate the lists so tick traversal is deterministic;
// removal goes through the destroy queue and the lists are compacted in
// place by the cleanup stage, preserving order.
type State struct {
	world       *ecs.World
	enemies     *ecs.PtrComponentStore[Enemy]
	projectiles *ecs.PtrComponentStore[Projectile]
	upgrades    *ecs.PtrComponentStore[Upgrade]
	clones      *ecs.PtrComponentStore[Clone]

	enemyOrder      []ecs.EntityID
	projectileOrder []ecs.EntityID
	upgradeOrder    []ecs.EntityID
	cloneOrder      []ecs.EntityID

	Player  Player
	Session Session
	Input   Input

	// Timers and schedules are state fields, never globals, so Start wipes
	// them wholesale. All in simulated time.
	SpawnElapsed   time.Duration
	UpgradeElapsed time.Duration
	FireCooldown   time.Duration
	PendingSpawns  []PendingSpawn
	PendingShots   []PendingShot
}

func NewState() *State {
	s := &State{}
	s.initWorld()
	return s
}

func (s *State) initWorld() {
	s.world = ecs.NewWorld()
	s.enemies = ecs.NewPtrComponentStore[Enemy]()
	s.projectiles = ecs.NewPtrComponentStore[Projectile]()
	s.upgrades = ecs.NewPtrComponentStore[Upgrade]()
	s.clones = ecs.NewPtrComponentStore[Clone]()
	reg := s.world.Registry()
	reg.Register(s.enemies)
	reg.Register(s.projectiles)
	reg.Register(s.upgrades)
	reg.Register(s.clones)
	s.enemyOrder = s.enemyOrder[:0]
	s.projectileOrder = s.projectileOrder[:0]
	s.upgradeOrder = s.upgradeOrder[:0]
	s.cloneOrder = s.cloneOrder[:0]
}

// Start begins a fresh session in place: empty collections, the given player
// state, wave 1 with the given scaling, zeroed timers, a new session id.
// Entity ids from the previous session go stale with the replaced world.
func (s *State) Start(player Player, scaling Difficulty) {
	s.initWorld()
	s.Player = player
	s.Session = Session{
		ID:      uuid.New(),
		Status:  StatusRunning,
		Wave:    1,
		Scaling: scaling,
	}
	s.Input = Input{}
	s.SpawnElapsed = 0
	s.UpgradeElapsed = 0
	s.FireCooldown = 0
	s.PendingSpawns = s.PendingSpawns[:0]
	s.PendingShots = s.PendingShots[:0]
}

// --- enemies ---

// AddEnemy registers a spawned enemy and returns its id.
func (s *State) AddEnemy(e *Enemy) ecs.EntityID {
	id := s.world.Create()
	e.ID = id
	s.enemies.Add(id, e)
	s.enemyOrder = append(s.enemyOrder, id)
	return id
}

// Enemy returns a live enemy by id, or nil.
func (s *State) Enemy(id ecs.EntityID) *Enemy {
	e, _ := s.enemies.Get(id)
	return e
}

// EnemyIDs returns enemy ids in spawn order. The slice is owned by State;
// iterate, don't keep.
func (s *State) EnemyIDs() []ecs.EntityID {
	return s.enemyOrder
}

func (s *State) EnemyCount() int {
	return s.enemies.Len()
}

// --- projectiles ---

// AddProjectile registers a spawned projectile and returns its id.
func (s *State) AddProjectile(p *Projectile) ecs.EntityID {
	id := s.world.Create()
	p.ID = id
	s.projectiles.Add(id, p)
	s.projectileOrder = append(s.projectileOrder, id)
	return id
}

// Projectile returns a live projectile by id, or nil.
func (s *State) Projectile(id ecs.EntityID) *Projectile {
	p, _ := s.projectiles.Get(id)
	return p
}

// ProjectileIDs returns projectile ids in spawn order.
func (s *State) ProjectileIDs() []ecs.EntityID {
	return s.projectileOrder
}

func (s *State) ProjectileCount() int {
	return s.projectiles.Len()
}

// --- upgrades ---

// AddUpgrade registers a spawned upgrade and returns its id.
func (s *State) AddUpgrade(u *Upgrade) ecs.EntityID {
	id := s.world.Create()
	u.ID = id
	s.upgrades.Add(id, u)
	s.upgradeOrder = append(s.upgradeOrder, id)
	return id
}

// Upgrade returns a live upgrade by id, or nil.
func (s *State) Upgrade(id ecs.EntityID) *Upgrade {
	u, _ := s.upgrades.Get(id)
	return u
}

// UpgradeIDs returns upgrade ids in spawn order.
func (s *State) UpgradeIDs() []ecs.EntityID {
	return s.upgradeOrder
}

func (s *State) UpgradeCount() int {
	return s.upgrades.Len()
}

// --- clones ---

// AddClone registers a granted clone and returns its id. The caller checks
// the cap; State does not know the configuration.
func (s *State) AddClone(c *Clone) ecs.EntityID {
	id := s.world.Create()
	c.ID = id
	s.clones.Add(id, c)
	s.cloneOrder = append(s.cloneOrder, id)
	return id
}

// Clone returns a live clone by id, or nil.
func (s *State) Clone(id ecs.EntityID) *Clone {
	c, _ := s.clones.Get(id)
	return c
}

// CloneIDs returns clone ids in grant order.
func (s *State) CloneIDs() []ecs.EntityID {
	return s.cloneOrder
}

func (s *State) CloneCount() int {
	return s.clones.Len()
}

// --- lifecycle ---

// Remove queues any entity for end-of-tick destruction. Safe to call while
// iterating and idempotent within a tick.
func (s *State) Remove(id ecs.EntityID) {
	s.world.MarkForDestruction(id)
}

// Removed reports whether the entity was condemned earlier this tick. Later
// stages use it to skip entities that are already gone in all but storage.
func (s *State) Removed(id ecs.EntityID) bool {
	return s.world.Destroyed(id)
}

// FlushRemovals destroys queued entities and compacts the order lists in
// place. Called once per tick by the cleanup stage.
func (s *State) FlushRemovals() {
	s.world.FlushDestroyQueue()
	s.enemyOrder = compactIDs(s.enemyOrder, s.world)
	s.projectileOrder = compactIDs(s.projectileOrder, s.world)
	s.upgradeOrder = compactIDs(s.upgradeOrder, s.world)
	s.cloneOrder = compactIDs(s.cloneOrder, s.world)
}

func compactIDs(ids []ecs.EntityID, w *ecs.World) []ecs.EntityID {
	kept := ids[:0]
	for _, id := range ids {
		if w.Alive(id) {
			kept = append(kept, id)
		}
	}
	return kept
}
