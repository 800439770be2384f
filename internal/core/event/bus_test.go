package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{ n int }

func TestBusDispatchesOneTickLate(t *testing.T) {
	t.Parallel()

	b := NewBus()
	var got []int
	Subscribe(b, func(ev ping) { got = append(got, ev.n) })

	Emit(b, ping{n: 1})
	require.Empty(t, got)

	// Tick N+1: the swap brings last tick's events to the front.
	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []int{1}, got)

	// Events are not redelivered.
	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []int{1}, got)
}

func TestBusPreservesEmitOrderAcrossTypes(t *testing.T) {
	t.Parallel()

	b := NewBus()
	var got []int
	Subscribe(b, func(ev ping) { got = append(got, ev.n) })
	Subscribe(b, func(ev pong) { got = append(got, ev.n) })

	Emit(b, ping{n: 1})
	Emit(b, pong{n: 2})
	Emit(b, ping{n: 3})

	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestBusHandlersMayEmit(t *testing.T) {
	t.Parallel()

	b := NewBus()
	var pongs int
	Subscribe(b, func(ev ping) { Emit(b, pong{n: ev.n}) })
	Subscribe(b, func(ev pong) { pongs++ })

	Emit(b, ping{n: 1})
	b.SwapBuffers()
	b.DispatchAll() // ping dispatched, pong emitted into the back buffer

	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, 1, pongs)
}

func TestJournalDrainsInEmitOrder(t *testing.T) {
	t.Parallel()

	b := NewBus()
	Emit(b, ping{n: 1})
	Emit(b, pong{n: 2})

	j := b.DrainJournal()
	require.Len(t, j, 2)
	require.Equal(t, ping{n: 1}, j[0])
	require.Equal(t, pong{n: 2}, j[1])

	// The drain hands off ownership; nothing is left behind.
	require.Empty(t, b.DrainJournal())

	// Journaling is independent of dispatch.
	Emit(b, ping{n: 3})
	b.SwapBuffers()
	b.DispatchAll()
	require.Len(t, b.DrainJournal(), 1)
}

func TestBusResetKeepsSubscriptions(t *testing.T) {
	t.Parallel()

	b := NewBus()
	var got int
	Subscribe(b, func(ev ping) { got++ })

	Emit(b, ping{n: 1})
	b.Reset()

	// The buffered event died with the reset.
	b.SwapBuffers()
	b.DispatchAll()
	require.Zero(t, got)
	require.Empty(t, b.DrainJournal())

	// New events still reach the old handler.
	Emit(b, ping{n: 2})
	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, 1, got)
}
