package runner

// ManualScheduler is a Scheduler that only fires when stepped.
// It is used for headless runs and tests.
type ManualScheduler struct {
	pending  func()
	requests int
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame stores fn as the pending frame, replacing any earlier one.
func (m *ManualScheduler) RequestFrame(fn func()) {
	m.pending = fn
	m.requests++
}

// Pending reports whether a frame is waiting.
func (m *ManualScheduler) Pending() bool {
	return m.pending != nil
}

// Requests returns how many frames were requested so far.
func (m *ManualScheduler) Requests() int {
	return m.requests
}

// Step fires the pending frame. It returns false if there was none.
func (m *ManualScheduler) Step() bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	fn()
	return true
}

// Run steps until no frame is pending or limit frames have fired.
// It returns the number of frames fired.
func (m *ManualScheduler) Run(limit int) int {
	n := 0
	for n < limit && m.Step() {
		n++
	}
	return n
}
