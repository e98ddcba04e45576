package tui

import "github.com/vovakirdan/board-runner/internal/runner"

// TextSlot is a text field the engine writes to, with optional visibility.
// It implements both runner.Display and runner.Overlay.
type TextSlot struct {
	text    string
	visible bool
}

// NewTextSlot creates a visible empty slot.
func NewTextSlot() *TextSlot {
	return &TextSlot{visible: true}
}

// SetText implements runner.Display.
func (s *TextSlot) SetText(text string) {
	s.text = text
}

// SetVisible implements runner.Overlay.
func (s *TextSlot) SetVisible(visible bool) {
	s.visible = visible
}

// Text returns the last written text.
func (s *TextSlot) Text() string {
	return s.text
}

// Visible reports whether the slot is shown.
func (s *TextSlot) Visible() bool {
	return s.visible
}

var _ runner.Overlay = (*TextSlot)(nil)
