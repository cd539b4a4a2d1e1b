package input

// Mode is what the pointer or keyboard is currently driving.
type Mode int

const (
	ModeIdle         Mode = iota // Nothing in flight
	ModeConnecting               // Dragging a connection from a port
	ModeBoxSelecting             // Dragging a selection rectangle
	ModeMovingNodes              // Dragging the selected nodes
	ModePanning                  // Dragging the canvas
	ModeFinder                   // Typing into the node finder
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeConnecting:
		return "CONNECT"
	case ModeBoxSelecting:
		return "SELECT"
	case ModeMovingNodes:
		return "MOVE"
	case ModePanning:
		return "PAN"
	case ModeFinder:
		return "FIND"
	default:
		return "UNKNOWN"
	}
}
