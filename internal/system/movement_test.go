package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lanefall/engine/internal/world"
)

func TestMovementIntegratesHeldIntent(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewMovementSystem(d)

	d.State.Input.Left = true
	sys.Update(time.Second)
	require.InDelta(t, -9.0, d.State.Player.Pos.X, 1e-9)

	d.State.Input = world.Input{Right: true}
	sys.Update(500 * time.Millisecond)
	require.InDelta(t, -4.5, d.State.Player.Pos.X, 1e-9)
}

func TestMovementBothHeldCancels(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewMovementSystem(d)

	d.State.Input.Left = true
	d.State.Input.Right = true
	sys.Update(time.Second)
	require.Zero(t, d.State.Player.Pos.X)
}

func TestMovementClampsAtBoundary(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewMovementSystem(d)

	// Boundary is half_width minus margin; holding right forever parks the
	// player exactly on it.
	b := d.Cfg.Lane.Boundary()
	d.State.Input.Right = true
	for i := 0; i < 10; i++ {
		sys.Update(time.Second)
	}
	require.Equal(t, b, d.State.Player.Pos.X)

	d.State.Input = world.Input{Left: true}
	for i := 0; i < 10; i++ {
		sys.Update(time.Second)
	}
	require.Equal(t, -b, d.State.Player.Pos.X)
}

func TestMovementRespectsDisableAndGameOver(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sys := NewMovementSystem(d)
	d.State.Input.Right = true

	d.State.Player.MovementEnabled = false
	sys.Update(time.Second)
	require.Zero(t, d.State.Player.Pos.X)

	d.State.Player.MovementEnabled = true
	d.State.Session.Status = world.StatusGameOver
	sys.Update(time.Second)
	require.Zero(t, d.State.Player.Pos.X)
}
