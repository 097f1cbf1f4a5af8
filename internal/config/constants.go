// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
)

// =============================================================================
// Layout Defaults
// =============================================================================

const (
	// DefaultHandleSize is the thickness of a handle in cells
	DefaultHandleSize = 1

	// DefaultCollapseThreshold is how far a drag must push past a panel's min
	// before the panel collapses
	DefaultCollapseThreshold = layout.DefaultCollapseThreshold

	// DefaultFastMultiplier scales a drag delta while the fast modifier is held
	DefaultFastMultiplier = layout.DefaultFastMultiplier

	// DefaultOrientation is used when the config leaves orientation empty
	DefaultOrientation = "horizontal"
)

// =============================================================================
// Animation Durations
// =============================================================================

const (
	// DefaultAnimationDuration is the standard duration for collapse/expand animations
	DefaultAnimationDuration = 300 * time.Millisecond

	// FastAnimationDuration is used by panels that ask for a snappier toggle
	FastAnimationDuration = 200 * time.Millisecond

	// DefaultEasing is the easing curve used when a panel sets a duration only
	DefaultEasing = "ease-out"

	// MaxAnimationDuration caps collapse_duration; longer values are clamped with a warning
	MaxAnimationDuration = 5 * time.Second
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// SaveDebounce is how long snapshot writes are delayed so a drag saves once
	SaveDebounce = 500 * time.Millisecond

	// StatusMessageDuration is how long transient status messages stay visible
	StatusMessageDuration = 1500 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the frame rate animations are driven at
	NormalFPS = engine.FrameRate
	// IdleFPS is the tick rate while nothing animates
	IdleFPS = 10
	// DoubleClickInterval is the longest gap between two clicks on a handle
	// that still toggles the neighbouring panel
	DoubleClickInterval = 400 * time.Millisecond
)

// =============================================================================
// Render Characters
// =============================================================================

const (
	// HandleCharVertical draws a handle between side by side panels
	HandleCharVertical = "│"

	// HandleCharHorizontal draws a handle between stacked panels
	HandleCharHorizontal = "─"

	// HandleCharActive draws the handle being dragged or focused
	HandleCharActive = "┃"

	// CollapsedMarker prefixes the label of a collapsed panel
	CollapsedMarker = "▸"

	// HandleCharVerticalASCII is the ASCII fallback for HandleCharVertical
	HandleCharVerticalASCII = "|"

	// HandleCharHorizontalASCII is the ASCII fallback for HandleCharHorizontal
	HandleCharHorizontalASCII = "-"

	// HandleCharActiveASCII is the ASCII fallback for HandleCharActive
	HandleCharActiveASCII = "#"

	// CollapsedMarkerASCII is the ASCII fallback for CollapsedMarker
	CollapsedMarkerASCII = ">"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// AnimationsEnabled controls whether collapse/expand animations run
// Set via --no-animations flag or appearance.animations_enabled config
var AnimationsEnabled = true

// ShowSizes controls whether panel labels include their pixel size
// Set via --show-sizes flag or appearance.show_sizes config
var ShowSizes = true

// Orientation is the axis the interactive group lays out on
// Set via --orientation flag or layout.orientation config
var Orientation = DefaultOrientation

// GetHandleChar returns the glyph used to draw a handle.
func GetHandleChar(vertical, active bool) string {
	switch {
	case active && UseASCIIOnly:
		return HandleCharActiveASCII
	case active:
		return HandleCharActive
	case vertical && UseASCIIOnly:
		return HandleCharHorizontalASCII
	case vertical:
		return HandleCharHorizontal
	case UseASCIIOnly:
		return HandleCharVerticalASCII
	}
	return HandleCharVertical
}

// GetCollapsedMarker returns the marker shown on collapsed panels.
func GetCollapsedMarker() string {
	if UseASCIIOnly {
		return CollapsedMarkerASCII
	}
	return CollapsedMarker
}
