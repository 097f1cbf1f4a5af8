// Package theme provides the colors used to draw panel groups.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
	"go.uber.org/zap"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the fallback palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			zap.L().Warn("error loading custom themes", zap.Error(err))
		}
	}

	if !tint.SetTintID(themeName) {
		zap.L().Warn("unknown theme, using default", zap.String("theme", themeName))
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the theme color chosen by fn, or fallback when theming is off.
func pick(fn func(t *tint.Tint) *tint.Color, fallback string) color.Color {
	if t := Current(); t != nil {
		if c := fn(t); c != nil {
			return c
		}
	}
	return lipgloss.Color(fallback)
}

// PanelFg is the text color inside panels.
func PanelFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Fg }, "#e5e5e5")
}

// PanelBg is the fill color of panels.
func PanelBg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Bg }, "#1c1c1c")
}

// PanelLabel colors the panel id in its label.
func PanelLabel() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlue }, "#5c5cff")
}

// PanelSize colors the size readout next to the label.
func PanelSize() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlack }, "#7f7f7f")
}

// CollapsedFg colors the marker drawn in a collapsed panel.
func CollapsedFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Yellow }, "#cdcd00")
}

// HandleIdle colors a handle nobody is touching.
func HandleIdle() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlack }, "#585858")
}

// HandleFocused colors the handle selected from the keyboard.
func HandleFocused() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightCyan }, "#afffff")
}

// HandleActive colors the handle being dragged.
func HandleActive() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightGreen }, "#aaffaa")
}

// StatusBg returns the background of the status line.
func StatusBg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Black }, "#262626")
}

// StatusFg returns the foreground of the status line.
func StatusFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.White }, "#bcbcbc")
}

// NotificationError returns the color for error messages.
func NotificationError() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Red }, "#ff5f5f")
}

// NotificationSuccess returns the color for success messages.
func NotificationSuccess() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Green }, "#5fff87")
}

// HelpKeyBadge returns the color for key badges in the help view.
func HelpKeyBadge() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightYellow }, "#ffd75f")
}

// HelpTitle returns the color for section titles in the help view.
func HelpTitle() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightPurple }, "#d787ff")
}

// HelpGray returns the dimmed color of help descriptions.
func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
