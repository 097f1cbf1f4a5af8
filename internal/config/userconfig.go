package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "panes/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Layout      LayoutConfig      `toml:"layout"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Persistence PersistenceConfig `toml:"persistence"`
	Logging     LoggingConfig     `toml:"logging"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// LayoutConfig describes the panel group the interactive app starts with
type LayoutConfig struct {
	Orientation       string        `toml:"orientation"`        // horizontal or vertical (default: horizontal)
	HandleSize        int           `toml:"handle_size"`        // Handle thickness in cells (default: 1)
	CollapseThreshold float64       `toml:"collapse_threshold"` // Overshoot in cells before a drag collapses a panel (default: 50)
	FastMultiplier    float64       `toml:"fast_multiplier"`    // Delta multiplier while the fast modifier is held (default: 15)
	Panels            []PanelConfig `toml:"panels"`
}

// PanelConfig is one [[layout.panels]] entry. Sizes are unit strings such as
// "20px" or "30%"; max additionally accepts "1fr".
type PanelConfig struct {
	ID                 string `toml:"id"`
	Min                string `toml:"min,omitempty"`
	Max                string `toml:"max,omitempty"`
	Default            string `toml:"default,omitempty"`
	Collapsible        bool   `toml:"collapsible,omitempty"`
	Collapsed          bool   `toml:"collapsed,omitempty"`
	CollapsedSize      string `toml:"collapsed_size,omitempty"`
	CollapseControlled bool   `toml:"collapse_controlled,omitempty"`
	CollapseEasing     string `toml:"collapse_easing,omitempty"`
	CollapseDuration   string `toml:"collapse_duration,omitempty"` // Go duration, e.g. 300ms
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme             string `toml:"theme"`              // Color theme name (e.g., dracula, nord, my-custom-theme)
	AnimationsEnabled *bool  `toml:"animations_enabled"` // Animate collapse/expand (default: true)
	ShowSizes         *bool  `toml:"show_sizes"`         // Show pixel sizes in panel labels (default: true)
}

// PersistenceConfig controls snapshot storage
type PersistenceConfig struct {
	Enabled  *bool  `toml:"enabled"`  // Save and restore the layout between runs (default: true)
	Database string `toml:"database"` // SQLite file (default: $XDG_DATA_HOME/panes/state.db)
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error (default: info)
	Format string `toml:"format"` // console or json (default: console)
	File   string `toml:"file"`   // Log file (default: $XDG_STATE_HOME/panes/panes.log)
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Resize     map[string][]string `toml:"resize"`
	Navigation map[string][]string `toml:"navigation"`
	System     map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	enabled := true
	showSizes := true
	persist := true
	return &UserConfig{
		Layout: LayoutConfig{
			Orientation:       DefaultOrientation,
			HandleSize:        DefaultHandleSize,
			CollapseThreshold: DefaultCollapseThreshold,
			FastMultiplier:    DefaultFastMultiplier,
			Panels: []PanelConfig{
				{
					ID:               "sidebar",
					Min:              "16px",
					Max:              "40%",
					Default:          "25%",
					Collapsible:      true,
					CollapsedSize:    "3px",
					CollapseEasing:   DefaultEasing,
					CollapseDuration: DefaultAnimationDuration.String(),
				},
				{
					ID:  "main",
					Min: "20px",
				},
				{
					ID:               "inspector",
					Min:              "12px",
					Max:              "1fr",
					Collapsible:      true,
					CollapseEasing:   "ease-in-out",
					CollapseDuration: FastAnimationDuration.String(),
				},
			},
		},
		Appearance: AppearanceConfig{
			AnimationsEnabled: &enabled,
			ShowSizes:         &showSizes,
		},
		Persistence: PersistenceConfig{
			Enabled: &persist,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Keybindings: KeybindingsConfig{
			Resize:     getDefaultResizeKeybinds(),
			Navigation: getDefaultNavigationKeybinds(),
			System:     getDefaultSystemKeybinds(),
		},
	}
}

func getDefaultResizeKeybinds() map[string][]string {
	return map[string][]string{
		"grow":        {"right", "l"},
		"shrink":      {"left", "h"},
		"grow_fast":   {"shift+right", "L"},
		"shrink_fast": {"shift+left", "H"},
	}
}

func getDefaultNavigationKeybinds() map[string][]string {
	return map[string][]string{
		"next_handle":     {"tab"},
		"prev_handle":     {"shift+tab"},
		"toggle_collapse": {"enter", "space"},
	}
}

func getDefaultSystemKeybinds() map[string][]string {
	return map[string][]string{
		"quit":   {"q", "ctrl+c"},
		"help":   {"?"},
		"save":   {"ctrl+s"},
		"rotate": {"o"},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	// Try to find existing config file
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Config doesn't exist, create default
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return createDefaultConfig(path)
	}

	cfg, warnings, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	for _, warn := range warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
	}
	return cfg, nil
}

// LoadFile reads, completes and validates the config at path. Validation
// errors are printed to stderr and fail the load; warnings are returned.
func LoadFile(path string) (*UserConfig, []ValidationError, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, nil, fmt.Errorf("failed to parse config file at %d:%d: %w", row, col, err)
		}
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in missing sections with defaults
	defaultCfg := DefaultConfig()
	fillMissingLayout(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingPersistence(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, validation.Warnings, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}

	return &cfg, validation.Warnings, nil
}

// createDefaultConfig writes the default config to configPath
func createDefaultConfig(configPath string) (*UserConfig, error) {
	cfg := DefaultConfig()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	// Build config file with header comments and marshaled data
	var sb strings.Builder
	sb.WriteString("# panes Configuration File\n")
	sb.WriteString("# This file describes the panel group, its appearance and keybindings\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings documentation, run: panes keybinds\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# LAYOUT SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# orientation: horizontal (side by side) or vertical (stacked)\n")
	sb.WriteString("#\n")
	sb.WriteString("# collapse_threshold: how many cells a drag must push past a panel's min\n")
	sb.WriteString("#   before a collapsible panel collapses\n")
	sb.WriteString("#   Default: 50\n")
	sb.WriteString("#\n")
	sb.WriteString("# [[layout.panels]]: panels in order, a handle is placed between neighbours\n")
	sb.WriteString("#   min, default, collapsed_size: \"12px\" or \"25%\"\n")
	sb.WriteString("#   max: \"12px\", \"25%\" or \"1fr\" (no limit)\n")
	sb.WriteString("#   collapse_controlled: only collapse when the app confirms it\n")
	sb.WriteString("#   collapse_easing: linear, ease-in, ease-out, ease-in-out, bounce\n")
	sb.WriteString("#   collapse_duration: e.g. 300ms\n")
	sb.WriteString("#\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   CLI flag --theme overrides this. Custom themes: ~/.config/panes/themes/*.json\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// WriteDefaultConfig writes a fresh default config to path, refusing to
// replace an existing file unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	_, err := createDefaultConfig(path)
	return err
}

// fillMissingLayout fills in any missing layout settings with defaults
func fillMissingLayout(cfg, defaultCfg *UserConfig) {
	if cfg.Layout.Orientation == "" {
		cfg.Layout.Orientation = defaultCfg.Layout.Orientation
	}
	if cfg.Layout.HandleSize == 0 {
		cfg.Layout.HandleSize = defaultCfg.Layout.HandleSize
	}
	if cfg.Layout.CollapseThreshold == 0 {
		cfg.Layout.CollapseThreshold = defaultCfg.Layout.CollapseThreshold
	}
	if cfg.Layout.FastMultiplier == 0 {
		cfg.Layout.FastMultiplier = defaultCfg.Layout.FastMultiplier
	}
	if len(cfg.Layout.Panels) == 0 {
		cfg.Layout.Panels = defaultCfg.Layout.Panels
	}
	for i := range cfg.Layout.Panels {
		p := &cfg.Layout.Panels[i]
		// A duration without an easing still animates
		if p.CollapseDuration != "" && p.CollapseEasing == "" {
			p.CollapseEasing = DefaultEasing
		}
		if p.CollapseEasing != "" && p.CollapseDuration == "" {
			p.CollapseDuration = DefaultAnimationDuration.String()
		}
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.AnimationsEnabled == nil {
		cfg.Appearance.AnimationsEnabled = defaultCfg.Appearance.AnimationsEnabled
	}
	if cfg.Appearance.ShowSizes == nil {
		cfg.Appearance.ShowSizes = defaultCfg.Appearance.ShowSizes
	}
}

func fillMissingPersistence(cfg, defaultCfg *UserConfig) {
	if cfg.Persistence.Enabled == nil {
		cfg.Persistence.Enabled = defaultCfg.Persistence.Enabled
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultCfg.Logging.Format
	}
}

// fillMissingKeybinds fills in any missing keybinding sections with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Resize == nil {
		cfg.Keybindings.Resize = make(map[string][]string)
	}
	if cfg.Keybindings.Navigation == nil {
		cfg.Keybindings.Navigation = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Resize, defaultCfg.Keybindings.Resize)
	fillMapDefaults(cfg.Keybindings.Navigation, defaultCfg.Keybindings.Navigation)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// DatabasePath returns the SQLite file snapshots are stored in.
func (c PersistenceConfig) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	return xdg.DataFile("panes/state.db")
}

// IsEnabled reports whether snapshots are saved and restored.
func (c PersistenceConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LogPath returns the file the CLI logs to.
func (c LoggingConfig) LogPath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	return xdg.StateFile("panes/panes.log")
}

// Items builds the group described by the layout section: panels in config
// order with a handle between each neighbouring pair. Handle ids are the two
// panel ids joined by a colon.
func (c LayoutConfig) Items() ([]layout.Item, error) {
	handleSize := c.HandleSize
	if handleSize <= 0 {
		handleSize = DefaultHandleSize
	}
	items := make([]layout.Item, 0, 2*len(c.Panels))
	for i, pc := range c.Panels {
		p, err := pc.Panel()
		if err != nil {
			return nil, err
		}
		if i > 0 {
			id := c.Panels[i-1].ID + ":" + pc.ID
			items = append(items, layout.NewHandle(id, float64(handleSize)))
		}
		items = append(items, p)
	}
	return items, nil
}

// Panel converts the entry into a layout panel.
func (pc PanelConfig) Panel() (layout.Panel, error) {
	p := layout.NewPanel(pc.ID)
	var err error
	if pc.Min != "" {
		if p.Min, err = layout.ParseUnit(pc.Min); err != nil {
			return p, fmt.Errorf("panel %q min: %w", pc.ID, err)
		}
	}
	if pc.Max != "" {
		if p.Max, err = layout.ParseMax(pc.Max); err != nil {
			return p, fmt.Errorf("panel %q max: %w", pc.ID, err)
		}
	}
	if pc.Default != "" {
		if p.Default, err = layout.ParseUnit(pc.Default); err != nil {
			return p, fmt.Errorf("panel %q default: %w", pc.ID, err)
		}
	}
	if pc.CollapsedSize != "" {
		if p.CollapsedSize, err = layout.ParseUnit(pc.CollapsedSize); err != nil {
			return p, fmt.Errorf("panel %q collapsed_size: %w", pc.ID, err)
		}
	}
	p.Collapsible = pc.Collapsible
	p.Collapsed = pc.Collapsible && pc.Collapsed
	p.CollapseIsControlled = pc.CollapseControlled
	if pc.CollapseEasing != "" {
		d := DefaultAnimationDuration
		if pc.CollapseDuration != "" {
			if d, err = time.ParseDuration(pc.CollapseDuration); err != nil {
				return p, fmt.Errorf("panel %q collapse_duration: %w", pc.ID, err)
			}
		}
		p.CollapseAnimation = layout.Animation{
			Easing:   pc.CollapseEasing,
			Duration: min(d, MaxAnimationDuration),
		}
	}
	return p, nil
}
