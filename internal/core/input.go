package core

// Action represents a semantic host action, abstracted from physical input.
// Every physical source (keyboard, mouse, touch over SSH) maps onto these, so
// the engine only ever sees a single jump request.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, W, Up, mouse press - the only gameplay input
	ActionConfirm           // Enter - restart after game over
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart game after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionScreenshot        // Ctrl+S - dump the canvas to a file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
