package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	notices []layout.Notice
	errs    []error
	layouts int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnCollapseChange: func(id string, collapsed bool) {
			r.notices = append(r.notices, layout.Notice{PanelID: id, Collapsed: collapsed})
		},
		OnLayout:          func(layout.Context) { r.layouts++ },
		OnTransitionError: func(_ Event, err error) { r.errs = append(r.errs, err) },
	}
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler(time.Unix(0, 0))
	rec := &recorder{}
	base := []Option{WithScheduler(sched), WithGroupID("test"), WithHooks(rec.hooks())}
	return New(append(base, opts...)...), sched, rec
}

func send(t *testing.T, e *Engine, events ...Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, e.Send(ev), EventName(ev))
	}
}

// twoPanels registers a, h (10px) and b in a 500px wide group.
func twoPanels(t *testing.T, e *Engine, b layout.Panel) {
	t.Helper()
	send(t, e,
		RegisterPanel{Panel: layout.NewPanel("a")},
		RegisterHandle{Handle: layout.NewHandle("h", 10)},
		RegisterPanel{Panel: b},
		SetSize{Size: layout.Rect{Width: 500, Height: 200}},
	)
}

func collapsibleB(controlled bool) layout.Panel {
	b := layout.NewPanel("b")
	b.Min = layout.Px(100)
	b.Collapsible = true
	b.CollapseIsControlled = controlled
	return b
}

// steps sends delta unit moves inside an already started drag.
func steps(t *testing.T, e *Engine, handle string, delta int) {
	t.Helper()
	step := 1.0
	if delta < 0 {
		step, delta = -1, -delta
	}
	for range delta {
		send(t, e, Drag{HandleID: handle, Delta: step})
	}
}

func dragBy(t *testing.T, e *Engine, handle string, delta int) {
	t.Helper()
	send(t, e, DragStart{HandleID: handle})
	steps(t, e, handle, delta)
	send(t, e, DragEnd{HandleID: handle})
}

func panelOf(t *testing.T, e *Engine, id string) layout.Panel {
	t.Helper()
	p, _, err := layout.FindPanel(e.Context().Items, id)
	require.NoError(t, err)
	return p
}

func TestDragBetweenTwoPanels(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	assert.Equal(t, "245px 10px 245px", e.PixelTemplate())

	dragBy(t, e, "h", 10)
	assert.Equal(t, "255px 10px 235px", e.PixelTemplate())
	assert.Equal(t, Idle, e.State())
	assert.Zero(t, e.Context().DragOvershoot)
}

func TestDragStopsAtMin(t *testing.T) {
	e, _, _ := newEngine(t)
	b := layout.NewPanel("b")
	b.Min = layout.Px(100)
	twoPanels(t, e, b)

	dragBy(t, e, "h", 200)
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate())
}

func TestCollapseBufferOnDrag(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, collapsibleB(false))

	dragBy(t, e, "h", 160)
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate())

	dragBy(t, e, "h", 100)
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
	assert.True(t, panelOf(t, e, "b").Collapsed)

	send(t, e, DragStart{HandleID: "h"})
	steps(t, e, "h", -30)
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
	assert.True(t, panelOf(t, e, "b").Collapsed, "inside the buffer")
	assert.Equal(t, -30.0, e.Context().DragOvershoot)

	steps(t, e, "h", -20)
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate())
	send(t, e, DragEnd{HandleID: "h"})
	assert.False(t, panelOf(t, e, "b").Collapsed)
}

func TestDynamicPairRemoval(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))

	c := layout.NewPanel("c")
	c.Default = layout.Px(100)
	send(t, e,
		RegisterHandle{Handle: layout.NewHandle("h2", 10), Dynamic: true},
		RegisterDynamicPanel{Panel: c},
	)
	assert.Equal(t, "245px 10px 135px 10px 100px", e.PixelTemplate())

	send(t, e,
		UnregisterPanel{PanelID: "c"},
		UnregisterHandle{HandleID: "h2"},
	)
	assert.Equal(t, "245px 10px 245px", e.PixelTemplate())
}

func TestControlledCollapseWaitsForOwner(t *testing.T) {
	e, sched, rec := newEngine(t)
	twoPanels(t, e, collapsibleB(true))
	dragBy(t, e, "h", 145)

	send(t, e, DragStart{HandleID: "h"})
	steps(t, e, "h", 60)
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate())
	send(t, e, DragEnd{HandleID: "h"})

	assert.Equal(t, []layout.Notice{{PanelID: "b", Collapsed: true}}, rec.notices)
	assert.False(t, panelOf(t, e, "b").Collapsed)

	// An unauthorized command only asks again.
	send(t, e, Collapse{PanelID: "b"})
	assert.Equal(t, Idle, e.State())
	assert.Len(t, rec.notices, 2)

	send(t, e, Collapse{PanelID: "b", Authorized: true})
	assert.Equal(t, TogglingCollapse, e.State())
	assert.Equal(t, 1, sched.Drain(0))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())

	b := panelOf(t, e, "b")
	assert.True(t, b.Collapsed)
	assert.Equal(t, layout.Px(100), b.SizeBeforeCollapse)
}

func TestAnimatedCollapseAndExpand(t *testing.T) {
	e, sched, _ := newEngine(t)
	b := collapsibleB(false)
	b.CollapseAnimation = layout.Animation{Easing: "linear", Duration: 500 * time.Millisecond}
	twoPanels(t, e, b)

	send(t, e, Collapse{PanelID: "b"})
	require.Equal(t, TogglingCollapse, e.State())

	for range 18 {
		require.True(t, sched.Step())
	}
	assert.InDelta(t, 100, e.PixelSizes()[2], 1e-9, "clamped at min")
	assert.False(t, panelOf(t, e, "b").Collapsed)

	require.True(t, sched.Step())
	assert.True(t, panelOf(t, e, "b").Collapsed, "collapses once min is reached")
	assert.Equal(t, TogglingCollapse, e.State())

	// Other commands are not accepted while animating.
	require.NoError(t, e.Send(DragStart{HandleID: "h"}))
	assert.Equal(t, TogglingCollapse, e.State())

	assert.Equal(t, 11, sched.Drain(0))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
	assert.Equal(t, layout.Px(245), panelOf(t, e, "b").SizeBeforeCollapse)

	send(t, e, Expand{PanelID: "b"})
	require.True(t, sched.Step())
	assert.InDelta(t, 100, e.PixelSizes()[2], 1e-9, "expands to at least min")
	assert.Equal(t, 29, sched.Drain(0))
	assert.Equal(t, "245px 10px 245px", e.PixelTemplate())
	assert.False(t, panelOf(t, e, "b").Collapsed)
}

func TestAnimationsDisabled(t *testing.T) {
	e, sched, _ := newEngine(t, WithAnimationsDisabled())
	b := collapsibleB(false)
	b.CollapseAnimation = layout.Animation{Easing: "ease-in-out", Duration: time.Second}
	twoPanels(t, e, b)

	send(t, e, Collapse{PanelID: "b"})
	assert.Equal(t, 1, sched.Drain(0))
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
}

func TestRegistrationDuringAnimation(t *testing.T) {
	e, sched, _ := newEngine(t)
	b := collapsibleB(false)
	b.CollapseAnimation = layout.Animation{Easing: "ease-out", Duration: 100 * time.Millisecond}
	twoPanels(t, e, b)

	send(t, e, Collapse{PanelID: "b"})
	sched.Step()
	send(t, e, UnregisterPanel{PanelID: "b"})
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 1, sched.Drain(0), "the stale frame runs and does nothing")
	assert.Zero(t, sched.Pending())
	assert.Equal(t, []string{"a", "h"}, idsOf(e))
}

func TestToggleHandleCollapse(t *testing.T) {
	e, sched, _ := newEngine(t)
	twoPanels(t, e, collapsibleB(false))

	send(t, e, ToggleHandleCollapse{HandleID: "h"})
	sched.Drain(0)
	assert.True(t, panelOf(t, e, "b").Collapsed)

	send(t, e, ToggleHandleCollapse{HandleID: "h"})
	sched.Drain(0)
	assert.False(t, panelOf(t, e, "b").Collapsed)
	assert.Equal(t, "245px 10px 245px", e.PixelTemplate())
}

func TestSetPixelSize(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))

	send(t, e, SetPixelSize{PanelID: "a", Size: layout.Px(300)})
	assert.Equal(t, "300px 10px 190px", e.PixelTemplate())

	send(t, e, SetPixelSize{PanelID: "b", Size: layout.Pct(0.5)})
	assert.Equal(t, "240px 10px 250px", e.PixelTemplate())
}

func TestSetPixelSizeHonoursCollapseBuffer(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, collapsibleB(false))

	send(t, e, SetPixelSize{PanelID: "b", Size: layout.Px(60)})
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate(), "40px past min stays in the buffer")

	send(t, e, SetPixelSize{PanelID: "b", Size: layout.Px(0)})
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
}

func TestSetPixelSizeExpandsCollapsedPanel(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, collapsibleB(false))
	dragBy(t, e, "h", 160)
	dragBy(t, e, "h", 100)
	require.True(t, panelOf(t, e, "b").Collapsed)

	send(t, e, SetPixelSize{PanelID: "b", Size: layout.Px(30)})
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate(), "30px stays in the buffer")
	assert.True(t, panelOf(t, e, "b").Collapsed)

	send(t, e, SetPixelSize{PanelID: "b", Size: layout.Px(200)})
	assert.Equal(t, "290px 10px 200px", e.PixelTemplate())
	assert.False(t, panelOf(t, e, "b").Collapsed)
	assert.Equal(t, Idle, e.State())
}

func TestRegistrationKeepsDragOvershoot(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, collapsibleB(false))

	send(t, e, DragStart{HandleID: "h"})
	steps(t, e, "h", 175)
	assert.Equal(t, "390px 10px 100px", e.PixelTemplate())
	assert.Equal(t, 30.0, e.Context().DragOvershoot)

	send(t, e, RegisterHandle{Handle: layout.NewHandle("h0", 0), Dynamic: true})
	assert.Equal(t, Dragging, e.State())
	assert.Equal(t, 30.0, e.Context().DragOvershoot)

	steps(t, e, "h", 20)
	assert.Equal(t, "490px 10px 0px 0px", e.PixelTemplate())
	send(t, e, DragEnd{HandleID: "h"})
	assert.True(t, panelOf(t, e, "b").Collapsed)
	assert.Zero(t, e.Context().DragOvershoot)
}

func TestCollapseIgnoresNonCollapsiblePanel(t *testing.T) {
	e, sched, rec := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	before := e.PixelTemplate()

	for _, ev := range []Event{
		Collapse{PanelID: "b"},
		Collapse{PanelID: "b", Authorized: true},
		Expand{PanelID: "b"},
	} {
		require.NoError(t, e.Send(ev), EventName(ev))
		assert.Equal(t, Idle, e.State(), EventName(ev))
	}
	assert.Zero(t, sched.Pending())
	assert.Equal(t, before, e.PixelTemplate())
	assert.False(t, panelOf(t, e, "b").Collapsed)
	assert.Empty(t, rec.notices)
	assert.Empty(t, rec.errs)
}

func TestTransitionErrors(t *testing.T) {
	e, _, rec := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	before := e.Context()

	tests := []struct {
		name string
		ev   Event
		want error
	}{
		{"unknown handle", DragStart{HandleID: "nope"}, layout.ErrUnknownHandleID},
		{"unknown panel", Collapse{PanelID: "nope"}, layout.ErrUnknownPanelID},
		{"unknown unregister", UnregisterHandle{HandleID: "nope"}, layout.ErrUnknownHandleID},
		{"nothing collapsible", ToggleHandleCollapse{HandleID: "h"}, layout.ErrNoCollapsiblePanel},
		{"bad snapshot", RestoreSnapshot{Snapshot: Snapshot{Version: 99}}, ErrSnapshotVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Send(tt.ev)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Idle, e.State())
			assert.Equal(t, before, e.Context())
		})
	}
	assert.Len(t, rec.errs, len(tests))
}

func TestNoAdjacentHandle(t *testing.T) {
	e, _, _ := newEngine(t)
	p := layout.NewPanel("solo")
	p.Collapsible = true
	send(t, e,
		RegisterPanel{Panel: p},
		SetSize{Size: layout.Rect{Width: 100, Height: 10}},
	)
	assert.ErrorIs(t, e.Send(Collapse{PanelID: "solo"}), layout.ErrNoAdjacentHandle)
	assert.ErrorIs(t, e.Send(SetPixelSize{PanelID: "solo", Size: layout.Px(10)}), layout.ErrNoAdjacentHandle)
}

func TestUnknownEasing(t *testing.T) {
	e, _, _ := newEngine(t)
	b := collapsibleB(false)
	b.CollapseAnimation = layout.Animation{Easing: "wobble", Duration: time.Second}
	twoPanels(t, e, b)

	err := e.Send(Collapse{PanelID: "b"})
	assert.True(t, errors.Is(err, ErrUnknownEasing))
	assert.Equal(t, Idle, e.State())
}

func TestIgnoredEvents(t *testing.T) {
	e, _, rec := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	before := e.Context()

	require.NoError(t, e.Send(Drag{HandleID: "h", Delta: 5}))
	require.NoError(t, e.Send(DragEnd{HandleID: "h"}))
	assert.Equal(t, before, e.Context())

	send(t, e, DragStart{HandleID: "h"})
	assert.Equal(t, "h", e.ActiveHandle())
	require.NoError(t, e.Send(SetSize{Size: layout.Rect{Width: 900}}))
	require.NoError(t, e.Send(Collapse{PanelID: "b"}))
	assert.Equal(t, Dragging, e.State())
	send(t, e, DragEnd{HandleID: "h"})
	assert.Empty(t, e.ActiveHandle())
	assert.Equal(t, "245px 10px 245px", e.PixelTemplate())
	assert.Empty(t, rec.errs)
}

func TestContainerResizeScales(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	dragBy(t, e, "h", 45)

	send(t, e, SetSize{Size: layout.Rect{Width: 1010, Height: 200}})
	sizes := e.PixelSizes()
	assert.Equal(t, []float64{592, 10, 408}, sizes)

	pct := e.PercentageSizes()
	assert.InDelta(t, 1, pct[0]+pct[1]+pct[2], 1e-9)
}

func TestOrientation(t *testing.T) {
	e, _, _ := newEngine(t, WithOrientation(layout.Vertical))
	send(t, e,
		RegisterPanel{Panel: layout.NewPanel("top")},
		RegisterHandle{Handle: layout.NewHandle("h", 2)},
		RegisterPanel{Panel: layout.NewPanel("bottom")},
		SetSize{Size: layout.Rect{Width: 80, Height: 42}},
	)
	assert.Equal(t, "20px 2px 20px", e.PixelTemplate())

	send(t, e, SetOrientation{Orientation: layout.Horizontal})
	assert.Equal(t, "39px 2px 39px", e.PixelTemplate())
}

func TestMeasuredChildSizes(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	send(t, e, SetMeasuredChildSizes{Sizes: map[string]layout.Rect{
		"a": {Width: 100, Height: 200},
		"b": {Width: 390, Height: 200},
	}})
	assert.Equal(t, "100px 10px 390px", e.PixelTemplate())
}

func TestTemplateIsCommitted(t *testing.T) {
	e, _, rec := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	assert.Equal(t,
		"minmax(0px, min(calc(0.5 * (100% - 10px)), 100%)) 10px minmax(0px, min(calc(0.5 * (100% - 10px)), 100%))",
		e.Template())
	assert.Equal(t, 4, rec.layouts)
}

func idsOf(e *Engine) []string {
	var out []string
	for _, it := range e.Context().Items {
		out = append(out, it.ItemID())
	}
	return out
}
