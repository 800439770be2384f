package ecs

// World is the top-level entity container. It owns the pool, the component
// registry, and a deferred destruction queue flushed by the cleanup stage at
// the end of each tick. Systems never remove entities mid-iteration; they
// mark them here and keep iterating, which is what makes removal during a
// collision or advance pass safe.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	pending      map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		pending:      make(map[EntityID]struct{}, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) Create() EntityID {
	return w.pool.Create()
}

// Alive reports whether id refers to a live entity. Entities queued for
// destruction remain alive until the flush; use Destroyed to exclude them.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice in one tick (direct hit plus area blast) is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, ok := w.pending[id]; ok {
		return
	}
	w.pending[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Destroyed reports whether an entity was condemned earlier in the current
// tick. Later pipeline stages skip condemned entities so an expired
// projectile cannot hit, and a dead enemy cannot be hit again.
func (w *World) Destroyed(id EntityID) bool {
	_, ok := w.pending[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called once per tick by the cleanup stage.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		delete(w.pending, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
