package render

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Options controls highlighting and labels.
type Options struct {
	// Focused is the handle selected from the keyboard.
	Focused string
	// Active is the handle being dragged.
	Active    string
	ShowSizes bool
}

// Render draws every span of g. The result is exactly g.Width by g.Height
// cells, not counting escape sequences.
func Render(g Geometry, opts Options) string {
	if g.Width <= 0 || g.Height <= 0 {
		return ""
	}
	vertical := g.Orientation == layout.Vertical

	var blocks []string
	for _, s := range g.Spans {
		if s.Size <= 0 {
			continue
		}
		w, h := s.Size, g.Height
		if vertical {
			w, h = g.Width, s.Size
		}
		if s.Handle {
			blocks = append(blocks, handleBlock(s, w, h, vertical, opts))
		} else {
			blocks = append(blocks, panelBlock(s, w, h, opts))
		}
	}
	if len(blocks) == 0 {
		return lipgloss.NewStyle().Width(g.Width).Height(g.Height).Render("")
	}
	if vertical {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func handleBlock(s Span, w, h int, vertical bool, opts Options) string {
	active := s.ID == opts.Active
	color := theme.HandleIdle()
	switch {
	case active:
		color = theme.HandleActive()
	case s.ID == opts.Focused:
		color = theme.HandleFocused()
	}

	glyph := config.GetHandleChar(vertical, active)
	row := strings.Repeat(glyph, w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Background(theme.PanelBg()).
		Render(strings.Join(rows, "\n"))
}

func panelBlock(s Span, w, h int, opts Options) string {
	base := lipgloss.NewStyle().Background(theme.PanelBg())
	label := base.Foreground(theme.PanelLabel()).Bold(true)
	if s.Collapsed {
		label = base.Foreground(theme.CollapsedFg())
	}

	name := s.ID
	if s.Collapsed {
		name = config.GetCollapsedMarker() + name
	}
	lines := []string{label.Render(ansi.Truncate(name, w, "…"))}
	if opts.ShowSizes && !s.Collapsed {
		size := fmt.Sprintf("%gpx", math.Round(s.Pixels*10)/10)
		lines = append(lines, base.Foreground(theme.PanelSize()).Render(ansi.Truncate(size, w, "…")))
	}
	if len(lines) > h {
		lines = lines[:h]
	}

	return base.
		Foreground(theme.PanelFg()).
		Width(w).
		Height(h).
		MaxWidth(w).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

// Plain renders g without colors, for logs and golden output.
func Plain(g Geometry, opts Options) string {
	return ansi.Strip(Render(g, opts))
}
