package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityIDPacking(t *testing.T) {
	t.Parallel()

	id := NewEntityID(42, 7)
	require.Equal(t, uint32(42), id.Index())
	require.Equal(t, uint32(7), id.Generation())

	require.True(t, Nil.IsNil())
	require.False(t, id.IsNil())
}

func TestPoolGenerationsInvalidateStaleIDs(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Alive(a))
	// Generations start at 1, so a live id is never the nil id.
	require.False(t, a.IsNil())

	p.Destroy(a)
	require.False(t, p.Alive(a))

	// The slot is recycled under a new generation; the old id stays dead.
	b := p.Create()
	require.Equal(t, a.Index(), b.Index())
	require.NotEqual(t, a.Generation(), b.Generation())
	require.True(t, p.Alive(b))
	require.False(t, p.Alive(a))

	// Destroying through the stale id must not kill the new entity.
	p.Destroy(a)
	require.True(t, p.Alive(b))
}

func TestPoolLen(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	a := p.Create()
	b := p.Create()
	require.Equal(t, 2, p.Len())

	p.Destroy(a)
	require.Equal(t, 1, p.Len())
	p.Destroy(b)
	require.Equal(t, 0, p.Len())
}

type health struct {
	hp int
}

func TestComponentStore(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	s := NewPtrComponentStore[health]()

	id := p.Create()
	s.Add(id, &health{hp: 10})

	got, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, 10, got.hp)
	require.True(t, s.Has(id))
	require.Equal(t, 1, s.Len())

	s.Remove(id)
	_, ok = s.Get(id)
	require.False(t, ok)
	require.Zero(t, s.Len())
}

func TestWorldDestroyQueue(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	s := NewPtrComponentStore[health]()
	w.Registry().Register(s)

	id := w.Create()
	s.Add(id, &health{hp: 3})

	// Condemned entities stay alive (and in their stores) until the flush.
	w.MarkForDestruction(id)
	w.MarkForDestruction(id) // double-mark is a no-op
	require.True(t, w.Alive(id))
	require.True(t, w.Destroyed(id))
	require.True(t, s.Has(id))

	w.FlushDestroyQueue()
	require.False(t, w.Alive(id))
	require.False(t, w.Destroyed(id))
	require.False(t, s.Has(id))

	// A second flush must not touch the recycled slot.
	next := w.Create()
	w.FlushDestroyQueue()
	require.True(t, w.Alive(next))
}
