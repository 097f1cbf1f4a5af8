package config

import (
	"sort"
	"strings"
)

// Actions a key can be bound to
const (
	ActionGrow           = "grow"
	ActionShrink         = "shrink"
	ActionGrowFast       = "grow_fast"
	ActionShrinkFast     = "shrink_fast"
	ActionNextHandle     = "next_handle"
	ActionPrevHandle     = "prev_handle"
	ActionToggleCollapse = "toggle_collapse"
	ActionQuit           = "quit"
	ActionHelp           = "help"
	ActionSave           = "save"
	ActionRotate         = "rotate"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "collapsible" when the focused handle has a collapsible neighbour
	Bindings  []Keybinding
}

// KeybindRegistry maps pressed keys to actions
type KeybindRegistry struct {
	actions map[string]string
	keys    map[string][]string
}

// NewKeybindRegistry builds a registry from the keybindings config. When a
// key is bound to several actions the alphabetically first action wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actions: make(map[string]string),
		keys:    make(map[string][]string),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, section := range []map[string][]string{
		cfg.Keybindings.Resize,
		cfg.Keybindings.Navigation,
		cfg.Keybindings.System,
	} {
		for action, keys := range section {
			r.keys[action] = append(r.keys[action], keys...)
			for _, key := range keys {
				k := normalizeKey(key)
				if prev, ok := r.actions[k]; ok && prev < action {
					continue
				}
				r.actions[k] = action
			}
		}
	}
	return r
}

// Action returns the action bound to key, or "" if none.
func (r *KeybindRegistry) Action(key string) string {
	if r == nil {
		return ""
	}
	if a, ok := r.actions[normalizeKey(key)]; ok {
		return a
	}
	// Uppercase letters arrive as "L" but may be configured as "shift+l"
	if len(key) == 1 && key != strings.ToLower(key) {
		return r.actions["shift+"+strings.ToLower(key)]
	}
	return ""
}

// GetKeys returns the keys bound to action in config order.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.keys[action]
}

// GetKeysForDisplay returns the keys bound to action formatted for help
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.keys[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is nil, the default bindings are shown
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	sections := []KeybindingSection{}

	resize := KeybindingSection{Title: "RESIZE"}
	addBinding(&resize, registry, ActionGrow, "Move focused handle forward")
	addBinding(&resize, registry, ActionShrink, "Move focused handle back")
	addBinding(&resize, registry, ActionGrowFast, "Move forward, fast")
	addBinding(&resize, registry, ActionShrinkFast, "Move back, fast")
	if len(resize.Bindings) > 0 {
		sections = append(sections, resize)
	}

	nav := KeybindingSection{Title: "HANDLES"}
	addBinding(&nav, registry, ActionNextHandle, "Focus next handle")
	addBinding(&nav, registry, ActionPrevHandle, "Focus previous handle")
	if len(nav.Bindings) > 0 {
		sections = append(sections, nav)
	}

	collapse := KeybindingSection{Title: "COLLAPSE", Condition: "collapsible"}
	addBinding(&collapse, registry, ActionToggleCollapse, "Collapse or expand the panel next to the handle")
	if len(collapse.Bindings) > 0 {
		sections = append(sections, collapse)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, ActionRotate, "Switch orientation")
	addBinding(&system, registry, ActionSave, "Save layout now")
	addBinding(&system, registry, ActionHelp, "Toggle help")
	addBinding(&system, registry, ActionQuit, "Quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	sections = append(sections, KeybindingSection{
		Title: "MOUSE",
		Bindings: []Keybinding{
			{"Drag handle", "Resize neighbouring panels"},
			{"Shift+Drag", "Resize fast"},
			{"Double-click handle", "Collapse or expand"},
		},
	})
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// BoundActions returns every action with at least one key, sorted.
func (r *KeybindRegistry) BoundActions() []string {
	out := make([]string, 0, len(r.keys))
	for a, keys := range r.keys {
		if len(keys) > 0 {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) == 1 {
		return key
	}
	return strings.ToLower(key)
}

func displayKey(key string) string {
	if len(key) == 1 {
		return key
	}
	parts := strings.Split(key, "+")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}
