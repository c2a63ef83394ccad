package game

import (
	"fmt"

	"racer/internal/sim"
)

// Session owns the race for the desktop front end and keeps the latest
// snapshot for drawing.
type Session struct {
	Race *sim.Race
	last sim.Snapshot
}

func NewSession(cfg sim.Config) (*Session, error) {
	r, err := sim.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("new race: %w", err)
	}
	return &Session{Race: r, last: r.Snapshot(0)}, nil
}

// CanRestart reports whether ENTER should start a new race: before the first
// race and after the flag.
func (s *Session) CanRestart() bool {
	switch s.Race.State() {
	case sim.StateNotStarted, sim.StateFinished:
		return true
	}
	return false
}

// Restart begins a fresh countdown at now.
func (s *Session) Restart(now float64) {
	s.Race.Reset(now)
	s.last = s.Race.Snapshot(now)
}

// Frame advances the race by one rendered frame. Stalls longer than
// MaxFrameDelta are clamped.
func (s *Session) Frame(now, dt float64, in sim.Input) sim.Snapshot {
	s.last = s.Race.Advance(now, clampF(dt, 0, MaxFrameDelta), in)
	return s.last
}

// Last is the snapshot from the most recent Restart or Frame.
func (s *Session) Last() sim.Snapshot { return s.last }
