package core

// Action represents a discrete input command, abstracted from physical keys
// and mouse buttons. The platform translates raw events into actions and the
// game reacts according to its current phase.
type Action int

const (
	ActionNone        Action = iota
	ActionConfirm            // Enter, Space - start, commit selection, restart
	ActionCancel             // Esc, B - back to the title menu
	ActionUp                 // W, Up arrow - highlight up / climb
	ActionDown               // S, Down arrow - highlight down / dive
	ActionToggleAudio        // M - background track on/off
	ActionRunsBoard          // Tab - session runs board
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionToggleAudio:
		return "ToggleAudio"
	case ActionRunsBoard:
		return "RunsBoard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
