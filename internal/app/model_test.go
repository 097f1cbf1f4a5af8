package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/state"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func twoPanelConfig(b config.PanelConfig) *config.UserConfig {
	cfg := config.DefaultConfig()
	b.ID = "b"
	cfg.Layout.Panels = []config.PanelConfig{{ID: "a"}, b}
	return cfg
}

func newModel(t *testing.T, cfg *config.UserConfig, store state.Interface) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(0, 0)}
	m, err := New(Options{Config: cfg, Store: store, Clock: clock.Now})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 41, Height: 11})
	return m, clock
}

func TestNewRejectsBadLayout(t *testing.T) {
	cfg := twoPanelConfig(config.PanelConfig{Min: "ten"})
	_, err := New(Options{Config: cfg})
	assert.ErrorIs(t, err, layout.ErrInvalidUnit)

	cfg = config.DefaultConfig()
	cfg.Layout.Orientation = "diagonal"
	_, err = New(Options{Config: cfg})
	assert.Error(t, err)
}

func TestResizeWaitsForIdle(t *testing.T) {
	m, _ := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	assert.Equal(t, []float64{20, 1, 20}, m.Engine.PixelSizes())

	require.NoError(t, m.Engine.Send(engine.DragStart{HandleID: "a:b"}))
	m.Update(tea.WindowSizeMsg{Width: 61, Height: 11})
	assert.Equal(t, []float64{20, 1, 20}, m.Engine.PixelSizes(), "ignored while dragging")

	require.NoError(t, m.Engine.Send(engine.DragEnd{HandleID: "a:b"}))
	m.Update(TickerMsg{})
	assert.Equal(t, []float64{30, 1, 30}, m.Engine.PixelSizes())
	assert.Equal(t, 61, m.Geometry.Width)
	assert.Equal(t, 10, m.Geometry.Height)
}

func TestControlledPanelRequestsAreGranted(t *testing.T) {
	cfg := twoPanelConfig(config.PanelConfig{Min: "10px", Collapsible: true, CollapseControlled: true})
	m, _ := newModel(t, cfg, nil)

	require.NoError(t, m.Engine.Send(engine.DragStart{HandleID: "a:b"}))
	for range 65 {
		require.NoError(t, m.Engine.Send(engine.Drag{HandleID: "a:b", Delta: 1}))
	}
	assert.Equal(t, []layout.Notice{{PanelID: "b", Collapsed: true}}, m.PendingRequests())

	m.Update(TickerMsg{})
	assert.Equal(t, engine.Dragging, m.Engine.State(), "authorized commands wait for idle")
	assert.Len(t, m.PendingRequests(), 1)

	require.NoError(t, m.Engine.Send(engine.DragEnd{HandleID: "a:b"}))
	m.Update(TickerMsg{})
	assert.Empty(t, m.PendingRequests())
	m.Update(TickerMsg{})
	assert.Equal(t, engine.Idle, m.Engine.State())
	assert.Equal(t, []float64{40, 1, 0}, m.Engine.PixelSizes())
}

func TestUncontrolledRequestsIgnored(t *testing.T) {
	m, _ := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	m.onCollapseChange("b", true)
	assert.Empty(t, m.PendingRequests())
}

func TestLayoutIsRestored(t *testing.T) {
	store := state.NewMock()
	cfg := twoPanelConfig(config.PanelConfig{Min: "10px"})
	m, _ := newModel(t, cfg, store)
	m.FocusedHandle = "a:b"
	m.Nudge(5, false)
	m.Update(TickerMsg{})
	assert.Equal(t, []float64{25, 1, 15}, m.Engine.PixelSizes())
	assert.Positive(t, store.Saves())

	restored, _ := newModel(t, cfg, store)
	assert.Equal(t, []float64{25, 1, 15}, restored.Engine.PixelSizes())

	// A layout saved for other panels is not applied.
	other := config.DefaultConfig()
	fresh, _ := newModel(t, other, store)
	assert.Equal(t, []string{"sidebar", "main", "inspector"}, layout.PanelIDs(fresh.Engine.Context().Items))
}

func TestSaveWithoutStore(t *testing.T) {
	m, _ := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	assert.Error(t, m.Save())
}

func TestStatusExpires(t *testing.T) {
	m, clock := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	m.SetStatus("hello", false)
	msg, _ := m.Status()
	assert.Equal(t, "hello", msg)
	assert.Contains(t, ansi.Strip(m.Content()), "hello")

	clock.now = clock.now.Add(2 * time.Second)
	msg, _ = m.Status()
	assert.Empty(t, msg)
}

func TestTransitionErrorsReachStatus(t *testing.T) {
	m, _ := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	m.ToggleCollapse("a:b")
	msg, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, msg, layout.ErrNoCollapsiblePanel.Error())
}

func TestContent(t *testing.T) {
	m, _ := newModel(t, twoPanelConfig(config.PanelConfig{}), nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	lines := ansi.Strip(m.Content())
	assert.Contains(t, lines, "│")
	assert.Contains(t, lines, "main  horizontal  idle  handle a:b")
	assert.Equal(t, 80, ansi.StringWidth(lastLine(lines)))

	m.ShowHelp = true
	assert.Contains(t, ansi.Strip(m.Content()), "Move forward")
	assert.NotContains(t, ansi.Strip(m.Content()), "COLLAPSE", "no collapsible panel next to the handle")

	v := m.View()
	assert.True(t, v.AltScreen)
}

func lastLine(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return s[i+1:]
		}
	}
	return s
}
