package world

import (
	"time"

	"github.com/google/uuid"
)

// Status is the session state machine: Running until the player's health
// hits zero, then GameOver, which is terminal until Reset.
type Status int

const (
	StatusRunning Status = iota
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Difficulty is the wave-derived scalar snapshot the director recomputes on
// every wave transition. Spawned enemies bake these in; live ones keep the
// values they spawned with.
type Difficulty struct {
	HealthMult    float64
	SpeedMult     float64
	SpawnInterval time.Duration
	BatchSize     int
}

// Session tracks one run: wave progression, kill accounting and the
// terminal state. A fresh UUID identifies every run in logs and events.
type Session struct {
	ID          uuid.UUID
	Status      Status
	Wave        int
	WaveElapsed time.Duration // since the last wave transition
	Kills       int
	Elapsed     time.Duration // total simulated time this run
	Scaling     Difficulty
}

// Over reports whether the session reached its terminal state.
func (s *Session) Over() bool {
	return s.Status == StatusGameOver
}
