package config

import (
	"log"

	"github.com/Gaurav-Gosain/panes/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of box drawing glyphs
	ASCIIOnly bool

	// NoAnimations disables collapse/expand animations
	NoAnimations bool

	// HideSizes hides pixel sizes in panel labels
	HideSizes bool

	// Orientation overrides layout.orientation
	Orientation string

	// LogLevel overrides logging.level
	LogLevel string

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
// Settings that live in the config struct itself are written back to it.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// Animations - disabled by flag or config
	if overrides.NoAnimations {
		AnimationsEnabled = false
	} else if userConfig != nil && userConfig.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *userConfig.Appearance.AnimationsEnabled
	}

	// Sizes - hidden by flag or config
	if overrides.HideSizes {
		ShowSizes = false
	} else if userConfig != nil && userConfig.Appearance.ShowSizes != nil {
		ShowSizes = *userConfig.Appearance.ShowSizes
	}

	// Orientation - CLI flag takes precedence, otherwise use user config
	if overrides.Orientation != "" {
		Orientation = overrides.Orientation
		if userConfig != nil {
			userConfig.Layout.Orientation = overrides.Orientation
		}
	} else if userConfig != nil && userConfig.Layout.Orientation != "" {
		Orientation = userConfig.Layout.Orientation
	}

	if overrides.LogLevel != "" && userConfig != nil {
		userConfig.Logging.Level = overrides.LogLevel
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}
