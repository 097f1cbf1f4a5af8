package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/render"
	"github.com/Gaurav-Gosain/panes/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// View renders the group and the status line.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.SetContent(m.Content())
	return view
}

// Content is the rendered screen without terminal modes.
func (m *Model) Content() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	body := m.helpView()
	if !m.ShowHelp {
		body = render.Render(m.Geometry, render.Options{
			Focused:   m.FocusedHandle,
			Active:    m.Engine.ActiveHandle(),
			ShowSizes: m.ShowSizes,
		})
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}

func (m *Model) statusLine() string {
	c := m.Engine.Context()
	left := fmt.Sprintf(" %s  %s  %s", c.GroupID, c.Orientation, m.Engine.State())
	if m.FocusedHandle != "" {
		left += "  handle " + m.FocusedHandle
	}

	right := "? help "
	rightStyle := lipgloss.NewStyle().Foreground(theme.StatusFg()).Background(theme.StatusBg())
	if msg, isErr := m.Status(); msg != "" {
		right = msg + " "
		rightStyle = rightStyle.Foreground(theme.NotificationSuccess())
		if isErr {
			rightStyle = rightStyle.Foreground(theme.NotificationError())
		}
	}

	right = ansi.Truncate(right, m.Width, "…")
	left = ansi.Truncate(left, max(m.Width-ansi.StringWidth(right), 0), "…")
	gap := max(m.Width-ansi.StringWidth(left)-ansi.StringWidth(right), 0)

	base := lipgloss.NewStyle().Foreground(theme.StatusFg()).Background(theme.StatusBg())
	return base.Render(left+strings.Repeat(" ", gap)) + rightStyle.Render(right)
}

func (m *Model) helpView() string {
	title := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)
	key := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge())
	desc := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var b strings.Builder
	for _, section := range config.GetKeybindings(m.Keys) {
		if section.Condition == "collapsible" && !m.focusedCanCollapse() {
			continue
		}
		b.WriteString(title.Render(section.Title) + "\n")
		for _, kb := range section.Bindings {
			b.WriteString("  " + key.Render(fmt.Sprintf("%-18s", kb.Key)) + " " + desc.Render(kb.Description) + "\n")
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(m.Width).
		Height(max(m.Height-1, 0)).
		MaxHeight(max(m.Height-1, 0)).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

// focusedCanCollapse reports whether a panel next to the focused handle is
// collapsible.
func (m *Model) focusedCanCollapse() bool {
	items := m.Engine.Context().Items
	_, i, err := layout.FindHandle(items, m.FocusedHandle)
	if err != nil {
		return false
	}
	for _, j := range []int{i - 1, i + 1} {
		if p, ok := layout.PanelAt(items, j); ok && p.Collapsible {
			return true
		}
	}
	return false
}
