package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"go.uber.org/zap/zapcore"
)

// ValidationError describes one problem found in the config
type ValidationError struct {
	Field   string // Config section, e.g. "layout.panels"
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Field, e.Key, e.Message)
}

// ValidationResult collects errors, which stop startup, and warnings,
// which are reported and otherwise ignored
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether any error was found
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) addError(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks cfg after defaults have been filled in
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}
	validateLayout(cfg, r)
	validateLogging(cfg, r)
	validateKeybindings(cfg, r)
	return r
}

func validateLayout(cfg *UserConfig, r *ValidationResult) {
	l := cfg.Layout
	if _, err := layout.ParseOrientation(l.Orientation); err != nil {
		r.addError("layout", "orientation", "%v", err)
	}
	if l.HandleSize < 0 {
		r.addError("layout", "handle_size", "must not be negative, got %d", l.HandleSize)
	}
	if l.CollapseThreshold < 0 {
		r.addError("layout", "collapse_threshold", "must not be negative, got %g", l.CollapseThreshold)
	}
	if l.FastMultiplier < 1 {
		r.addWarning("layout", "fast_multiplier", "%g makes fast drags slower than normal ones", l.FastMultiplier)
	}

	seen := make(map[string]bool, len(l.Panels))
	for i, pc := range l.Panels {
		key := fmt.Sprintf("panels[%d]", i)
		if pc.ID == "" {
			r.addError("layout.panels", key, "id is required")
			continue
		}
		key = pc.ID
		if seen[pc.ID] {
			r.addError("layout.panels", key, "duplicate panel id")
		}
		seen[pc.ID] = true

		checkUnit(r, key, "min", pc.Min, layout.ParseUnit)
		checkUnit(r, key, "max", pc.Max, layout.ParseMax)
		checkUnit(r, key, "default", pc.Default, layout.ParseUnit)
		checkUnit(r, key, "collapsed_size", pc.CollapsedSize, layout.ParseUnit)

		if pc.CollapseEasing != "" {
			if _, err := engine.ParseEasing(pc.CollapseEasing); err != nil {
				r.addError("layout.panels", key, "collapse_easing: %v", err)
			}
		}
		if pc.CollapseDuration != "" {
			d, err := time.ParseDuration(pc.CollapseDuration)
			switch {
			case err != nil:
				r.addError("layout.panels", key, "collapse_duration: %v", err)
			case d < 0:
				r.addError("layout.panels", key, "collapse_duration must not be negative")
			case d > MaxAnimationDuration:
				r.addWarning("layout.panels", key, "collapse_duration %s is clamped to %s", d, MaxAnimationDuration)
			}
		}
		if !pc.Collapsible && (pc.Collapsed || pc.CollapseControlled || pc.CollapsedSize != "") {
			r.addWarning("layout.panels", key, "collapse settings are ignored because collapsible is false")
		}
	}
}

func checkUnit(r *ValidationResult, panel, key, value string, parse func(string) (layout.Unit, error)) {
	if value == "" {
		return
	}
	if _, err := parse(value); err != nil {
		r.addError("layout.panels", panel, "%s: %v", key, err)
	}
}

func validateLogging(cfg *UserConfig, r *ValidationResult) {
	if _, err := zapcore.ParseLevel(cfg.Logging.Level); err != nil {
		r.addError("logging", "level", "%v", err)
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		r.addError("logging", "format", "must be console or json, got %q", cfg.Logging.Format)
	}
}

// validateKeybindings warns about keys bound to more than one action
func validateKeybindings(cfg *UserConfig, r *ValidationResult) {
	owners := make(map[string][]string)
	for _, section := range []map[string][]string{
		cfg.Keybindings.Resize,
		cfg.Keybindings.Navigation,
		cfg.Keybindings.System,
	} {
		for action, keys := range section {
			for _, key := range keys {
				k := normalizeKey(key)
				owners[k] = append(owners[k], action)
			}
		}
	}
	keys := make([]string, 0, len(owners))
	for k := range owners {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if actions := owners[k]; len(actions) > 1 {
			sort.Strings(actions)
			r.addWarning("keybindings", k, "bound to %s", strings.Join(actions, ", "))
		}
	}
}
