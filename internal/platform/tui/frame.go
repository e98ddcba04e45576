// Package tui hosts the runner in a terminal with Bubble Tea, locally or
// over SSH. It owns the canvas, frame pacing, input mapping and the menu,
// scoreboard and board screens around the game.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to fire the engine's pending frame.
// Scheduler identifies the scheduler that issued the tick, so a tick still in
// flight when its game is discarded cannot step the next game.
type FrameMsg struct {
	Scheduler uint64
	Time      time.Time
}

var schedulerIDs atomic.Uint64

// FrameScheduler paces engine frames with tea.Tick.
// The engine stores its next frame with RequestFrame; the model turns that
// into a tick command with Cmd and fires it when the FrameMsg arrives.
// At most one tick is in flight at a time.
type FrameScheduler struct {
	id       uint64
	interval time.Duration
	pending  func()
	inFlight bool
}

// NewFrameScheduler creates a scheduler ticking tickRate times per second.
func NewFrameScheduler(tickRate int) *FrameScheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameScheduler{
		id:       schedulerIDs.Add(1),
		interval: time.Second / time.Duration(tickRate),
	}
}

// RequestFrame implements runner.Scheduler.
func (s *FrameScheduler) RequestFrame(fn func()) {
	s.pending = fn
}

// Cmd returns a tick command if a frame is pending and no tick is in flight.
func (s *FrameScheduler) Cmd() tea.Cmd {
	if s.pending == nil || s.inFlight {
		return nil
	}
	s.inFlight = true
	id := s.id
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Scheduler: id, Time: t}
	})
}

// Fire runs the pending frame, if any.
func (s *FrameScheduler) Fire() {
	s.inFlight = false
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}

// Owns reports whether msg was issued by this scheduler.
func (s *FrameScheduler) Owns(msg FrameMsg) bool {
	return msg.Scheduler == s.id
}

// Pending reports whether a frame is waiting for its tick.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Interval returns the time between frames.
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}
