package app

import (
	"slices"

	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"go.uber.org/zap"
)

// send forwards ev and logs failures. Failures also reach the status line
// through the transition error hook.
func (m *Model) send(ev engine.Event) {
	if err := m.Engine.Send(ev); err != nil {
		m.Logger.Debug("event rejected", zap.Error(err))
	}
}

// Nudge moves the focused handle by delta cells as one short drag.
func (m *Model) Nudge(delta float64, fast bool) {
	if m.FocusedHandle == "" || m.MouseDragging {
		return
	}
	m.send(engine.DragStart{HandleID: m.FocusedHandle})
	if m.Engine.State() != engine.Dragging {
		return
	}
	m.send(engine.Drag{HandleID: m.FocusedHandle, Delta: delta, Fast: fast})
	m.send(engine.DragEnd{HandleID: m.FocusedHandle})
}

// CycleHandle moves keyboard focus to the next (step 1) or previous
// (step -1) handle, wrapping around.
func (m *Model) CycleHandle(step int) {
	handles := layout.HandleIDs(m.Engine.Context().Items)
	if len(handles) == 0 {
		m.FocusedHandle = ""
		return
	}
	i := slices.Index(handles, m.FocusedHandle)
	if i < 0 {
		m.FocusedHandle = handles[0]
		return
	}
	m.FocusedHandle = handles[((i+step)%len(handles)+len(handles))%len(handles)]
}

// ToggleCollapse collapses or expands the panel next to the handle.
func (m *Model) ToggleCollapse(handleID string) {
	if handleID == "" {
		return
	}
	m.send(engine.ToggleHandleCollapse{HandleID: handleID})
}

// Rotate switches between side by side and stacked panels.
func (m *Model) Rotate() {
	next := layout.Vertical
	if m.Engine.Context().Orientation == layout.Vertical {
		next = layout.Horizontal
	}
	m.send(engine.SetOrientation{Orientation: next})
}

// PressHandle starts a pointer drag at pos along the axis. A second press
// on the same handle within the double click interval toggles its panel
// instead.
func (m *Model) PressHandle(handleID string, pos int) {
	now := m.clock()
	m.FocusedHandle = handleID
	if handleID == m.LastClickHandle && now.Sub(m.LastClickAt) <= config.DoubleClickInterval {
		m.LastClickHandle = ""
		m.ToggleCollapse(handleID)
		return
	}
	m.LastClickHandle, m.LastClickAt = handleID, now

	m.send(engine.DragStart{HandleID: handleID})
	if m.Engine.State() == engine.Dragging {
		m.MouseDragging = true
		m.DragAnchor = pos
	}
}

// MoveTo continues a pointer drag.
func (m *Model) MoveTo(pos int, fast bool) {
	if !m.MouseDragging {
		return
	}
	delta := pos - m.DragAnchor
	if delta == 0 {
		return
	}
	m.DragAnchor = pos
	m.send(engine.Drag{HandleID: m.Engine.ActiveHandle(), Delta: float64(delta), Fast: fast})
}

// Release ends a pointer drag.
func (m *Model) Release() {
	if !m.MouseDragging {
		return
	}
	m.MouseDragging = false
	m.send(engine.DragEnd{HandleID: m.Engine.ActiveHandle()})
}

// AxisPos picks the pointer coordinate along the group's axis.
func (m *Model) AxisPos(x, y int) int {
	if m.Engine.Context().Orientation == layout.Vertical {
		return y
	}
	return x
}
