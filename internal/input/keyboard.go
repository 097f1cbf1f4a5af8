package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/app"
	"github.com/Gaurav-Gosain/panes/internal/config"
)

// HandleKeyPress dispatches a key through the keybinding registry.
func HandleKeyPress(msg tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	key := msg.String()

	if m.ShowHelp {
		switch key {
		case "esc", "q":
			m.ShowHelp = false
			return m, nil
		}
	}

	switch m.Keys.Action(key) {
	case config.ActionGrow:
		m.Nudge(1, false)
	case config.ActionShrink:
		m.Nudge(-1, false)
	case config.ActionGrowFast:
		m.Nudge(1, true)
	case config.ActionShrinkFast:
		m.Nudge(-1, true)
	case config.ActionNextHandle:
		m.CycleHandle(1)
	case config.ActionPrevHandle:
		m.CycleHandle(-1)
	case config.ActionToggleCollapse:
		m.ToggleCollapse(m.FocusedHandle)
	case config.ActionHelp:
		m.ShowHelp = !m.ShowHelp
	case config.ActionSave:
		if err := m.Save(); err != nil {
			m.SetStatus("save failed: "+err.Error(), true)
		} else {
			m.SetStatus("layout saved", false)
		}
	case config.ActionRotate:
		m.Rotate()
	case config.ActionQuit:
		m.Quit()
		return m, tea.Quit
	}
	return m, nil
}
