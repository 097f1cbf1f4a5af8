package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeybindRegistryActions(t *testing.T) {
	r := NewKeybindRegistry(DefaultConfig())

	tests := []struct {
		key  string
		want string
	}{
		{"right", ActionGrow},
		{"l", ActionGrow},
		{"L", ActionGrowFast},
		{"shift+right", ActionGrowFast},
		{"Shift+Right", ActionGrowFast},
		{"tab", ActionNextHandle},
		{"space", ActionToggleCollapse},
		{"ctrl+c", ActionQuit},
		{"z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Action(tt.key))
		})
	}

	var nilRegistry *KeybindRegistry
	assert.Empty(t, nilRegistry.Action("q"))
}

func TestKeybindRegistryShiftFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.Resize[ActionGrowFast] = []string{"shift+k"}
	r := NewKeybindRegistry(cfg)
	assert.Equal(t, ActionGrowFast, r.Action("K"))
}

func TestKeybindRegistryConflictsAreDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.System[ActionQuit] = []string{"l"}
	for range 20 {
		assert.Equal(t, ActionGrow, NewKeybindRegistry(cfg).Action("l"))
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := GetKeybindings(nil)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"RESIZE", "HANDLES", "COLLAPSE", "SYSTEM", "MOUSE"}, titles)

	assert.Equal(t, Keybinding{"Shift+Right, L", "Move forward, fast"}, sections[0].Bindings[2])
	assert.Equal(t, "collapsible", sections[2].Condition)

	cfg := DefaultConfig()
	delete(cfg.Keybindings.Navigation, ActionToggleCollapse)
	for _, s := range GetKeybindings(NewKeybindRegistry(cfg)) {
		assert.NotEqual(t, "COLLAPSE", s.Title)
	}
}

func TestBoundActions(t *testing.T) {
	r := NewKeybindRegistry(nil)
	assert.Contains(t, r.BoundActions(), ActionRotate)
	assert.Len(t, r.BoundActions(), 11)
}
