package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type probe struct {
	phase Phase
	tag   string
	log   *[]string
}

func (p *probe) Phase() Phase { return p.phase }

func (p *probe) Update(_ time.Duration) { *p.log = append(*p.log, p.tag) }

func TestRunnerExecutesInPhaseOrder(t *testing.T) {
	t.Parallel()

	var log []string
	r := NewRunner()
	// Registered out of order on purpose.
	r.Register(&probe{phase: PhaseCleanup, tag: "cleanup", log: &log})
	r.Register(&probe{phase: PhaseInput, tag: "input", log: &log})
	r.Register(&probe{phase: PhaseCollision, tag: "collision", log: &log})

	r.Tick(time.Millisecond)
	require.Equal(t, []string{"input", "collision", "cleanup"}, log)
}

func TestRunnerKeepsRegistrationOrderWithinPhase(t *testing.T) {
	t.Parallel()

	var log []string
	r := NewRunner()
	r.Register(&probe{phase: PhaseSpawn, tag: "a", log: &log})
	r.Register(&probe{phase: PhaseSpawn, tag: "b", log: &log})
	r.Tick(time.Millisecond)

	// Stable sort: same-phase systems run in the order they registered.
	require.Equal(t, []string{"a", "b"}, log)
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	t.Parallel()

	var log []string
	r := NewRunner()
	r.Register(&probe{phase: PhaseInput, tag: "input", log: &log})
	r.Register(&probe{phase: PhaseEvents, tag: "events", log: &log})
	r.Register(&probe{phase: PhaseFire, tag: "fire", log: &log})

	r.TickPhase(PhaseEvents, time.Millisecond)
	require.Equal(t, []string{"events"}, log)
}
