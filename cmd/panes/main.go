// Package main implements panes, a terminal front end for a resizable panel
// group: panels separated by draggable handles, with collapsible panels,
// animated collapse and a layout that survives restarts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/panes/internal/theme"
	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	logLevel     string
	configFile   string
	asciiOnly    bool
	themeName    string
	listThemes   bool
	noAnimations bool
	hideSizes    bool
	orientation  string
	noPersist    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "panes",
		Short: "Resizable panel groups in the terminal",
		Long: `panes - resizable panel groups in the terminal

Lays out the panels described in the config file side by side (or stacked)
with a draggable handle between each pair. Panels respect their min and max
sizes, collapsible panels collapse when dragged past their minimum, and the
layout is saved between runs.`,
		Example: `  # Run with the configured panels
  panes

  # Stack the panels vertically
  panes --orientation vertical

  # Run with a specific theme
  panes --theme dracula

  # Play a tape script and print the final layout
  panes tape run testdata/drag.tape

  # Render the configured group once at the terminal size
  panes render

  # List saved layouts
  panes snapshot list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config or info)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file to use instead of the default location")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of box drawing glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Collapse and expand panels instantly")
	rootCmd.PersistentFlags().BoolVar(&hideSizes, "hide-sizes", false, "Hide pixel sizes in panel labels")
	rootCmd.PersistentFlags().StringVar(&orientation, "orientation", "", "Layout orientation: horizontal, vertical (default: from config or horizontal)")
	rootCmd.Flags().BoolVar(&noPersist, "no-persist", false, "Neither restore nor save the layout")

	rootCmd.AddCommand(newConfigCmd(), newKeybindsCmd(), newTapeCmd(), newRenderCmd(), newSnapshotCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
