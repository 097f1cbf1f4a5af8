package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/app"
)

func handleMouseClick(msg tea.MouseClickMsg, m *app.Model) (*app.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || m.ShowHelp {
		return m, nil
	}
	id, ok := m.Geometry.HandleAt(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	m.PressHandle(id, m.AxisPos(mouse.X, mouse.Y))
	return m, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if !m.MouseDragging {
		return m, nil
	}
	mouse := msg.Mouse()
	m.MoveTo(m.AxisPos(mouse.X, mouse.Y), mouse.Mod&tea.ModShift != 0)
	return m, nil
}

func handleMouseRelease(m *app.Model) (*app.Model, tea.Cmd) {
	m.Release()
	return m, nil
}

// handleMouseWheel nudges the handle under the pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Model) (*app.Model, tea.Cmd) {
	mouse := msg.Mouse()
	id, ok := m.Geometry.HandleAt(mouse.X, mouse.Y)
	if !ok || m.MouseDragging {
		return m, nil
	}
	m.FocusedHandle = id
	switch mouse.Button {
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		m.Nudge(-1, mouse.Mod&tea.ModShift != 0)
	case tea.MouseWheelDown, tea.MouseWheelRight:
		m.Nudge(1, mouse.Mod&tea.ModShift != 0)
	}
	return m, nil
}
