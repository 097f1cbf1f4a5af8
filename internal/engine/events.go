package engine

import "github.com/Gaurav-Gosain/panes/internal/layout"

// Event is a message sent to the engine. The set of events is closed.
type Event interface {
	eventName() string
}

// RegisterPanel adds (or replaces) a panel before the group is laid out, or
// at any time when its size should come from the next layout pass.
type RegisterPanel struct{ Panel layout.Panel }

// RegisterDynamicPanel adds a panel to a laid-out group and carves its
// initial size out of its neighbours.
type RegisterDynamicPanel struct{ Panel layout.Panel }

// UnregisterPanel removes a panel and donates its space to its neighbours.
type UnregisterPanel struct{ PanelID string }

// RegisterHandle adds a handle. Dynamic handles carve their size out of the
// layout the way dynamic panels do.
type RegisterHandle struct {
	Handle  layout.Handle
	Dynamic bool
}

// UnregisterHandle removes a handle and donates its space to its neighbours.
type UnregisterHandle struct{ HandleID string }

// DragStart begins a drag session on a handle.
type DragStart struct{ HandleID string }

// Drag moves a handle by Delta pixels along the active axis.
type Drag struct {
	HandleID string
	Delta    float64
	// Fast applies the fast multiplier (shift held).
	Fast bool
}

// DragEnd finishes the drag session and commits the layout.
type DragEnd struct{ HandleID string }

// SetSize reports the container size.
type SetSize struct{ Size layout.Rect }

// SetMeasuredChildSizes reports the measured size of each item, keyed by id.
type SetMeasuredChildSizes struct{ Sizes map[string]layout.Rect }

// SetOrientation switches the active axis.
type SetOrientation struct{ Orientation layout.Orientation }

// Collapse collapses a panel, animated if the panel has an easing. For a
// controlled panel only an Authorized command changes the layout; otherwise
// the owner is notified.
type Collapse struct {
	PanelID    string
	Authorized bool
}

// Expand is the inverse of Collapse.
type Expand struct {
	PanelID    string
	Authorized bool
}

// SetPixelSize resizes a panel by replaying unit moves on its handle.
type SetPixelSize struct {
	PanelID string
	Size    layout.Unit
}

// ToggleHandleCollapse toggles the nearest collapsible panel next to a
// handle, the panel before it first.
type ToggleHandleCollapse struct{ HandleID string }

// RestoreSnapshot replaces items, orientation and group id with a snapshot.
type RestoreSnapshot struct{ Snapshot Snapshot }

func (RegisterPanel) eventName() string         { return "registerPanel" }
func (RegisterDynamicPanel) eventName() string  { return "registerDynamicPanel" }
func (UnregisterPanel) eventName() string       { return "unregisterPanel" }
func (RegisterHandle) eventName() string        { return "registerHandle" }
func (UnregisterHandle) eventName() string      { return "unregisterHandle" }
func (DragStart) eventName() string             { return "dragStart" }
func (Drag) eventName() string                  { return "drag" }
func (DragEnd) eventName() string               { return "dragEnd" }
func (SetSize) eventName() string               { return "setSize" }
func (SetMeasuredChildSizes) eventName() string { return "setMeasuredChildSizes" }
func (SetOrientation) eventName() string        { return "setOrientation" }
func (Collapse) eventName() string              { return "collapse" }
func (Expand) eventName() string                { return "expand" }
func (SetPixelSize) eventName() string          { return "setPixelSize" }
func (ToggleHandleCollapse) eventName() string  { return "toggleHandleCollapse" }
func (RestoreSnapshot) eventName() string       { return "restoreSnapshot" }

// EventName returns the wire name of an event, for logs and scripts.
func EventName(ev Event) string { return ev.eventName() }
