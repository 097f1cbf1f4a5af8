package engine

// State is the engine's finite state.
type State uint8

const (
	// Idle accepts registration, size updates and explicit commands.
	Idle State = iota
	// Dragging is entered on DragStart and left on DragEnd.
	Dragging
	// TogglingCollapse runs a collapse or expand animation to completion.
	TogglingCollapse
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case TogglingCollapse:
		return "togglingCollapse"
	default:
		return "idle"
	}
}

// accepts reports whether s handles ev. Registration is accepted everywhere.
func (s State) accepts(ev Event) bool {
	switch ev.(type) {
	case RegisterPanel, RegisterDynamicPanel, UnregisterPanel, RegisterHandle, UnregisterHandle:
		return true
	case Drag, DragEnd:
		return s == Dragging
	default:
		return s == Idle
	}
}
