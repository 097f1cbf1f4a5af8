// Package input turns Bubble Tea key and mouse messages into panel group
// commands.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/app"
)

// HandleInput is the main input coordinator that routes messages to the
// keyboard and mouse handlers.
func HandleInput(msg tea.Msg, m *app.Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(m)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, m)
	case tea.FocusMsg, tea.BlurMsg:
		// A drag whose release happened outside the window would otherwise
		// never end.
		return handleMouseRelease(m)
	}
	return m, nil
}
