package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// group builds a horizontal group of the given width, runs the initial
// distribution and commits it, the way the engine does on first measurement.
func group(t *testing.T, width float64, items ...Item) Context {
	t.Helper()
	var seq []Item
	for _, it := range items {
		seq = AddItem(seq, it)
	}
	c := Context{Items: seq, Size: Rect{Width: width, Height: 200}}
	c.Items = InitialLayout(withPrepared(c))
	c.Items = Commit(c)
	return c
}

func withPrepared(c Context) Context {
	c.Items = Prepare(c)
	return c
}

// drag replays a move one pixel at a time inside a single drag session and
// commits the result.
func drag(t *testing.T, c Context, handleID string, delta int) Context {
	t.Helper()
	c = dragSteps(t, withPrepared(c), handleID, delta)
	c.DragOvershoot = 0
	c.Items = Commit(c)
	return c
}

// dragSteps applies unit moves to prepared items without committing.
func dragSteps(t *testing.T, c Context, handleID string, delta int) Context {
	t.Helper()
	step := 1.0
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for i := 0; i < delta; i++ {
		res, err := Update(c, Drag{HandleID: handleID, Delta: step}, DefaultUpdateOptions())
		require.NoError(t, err)
		c.Items = res.Items
		c.DragOvershoot = res.DragOvershoot
	}
	return c
}

func pixelTemplate(c Context) string {
	return BuildTemplate(withPrepared(c))
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func panel(id string, opts ...func(*Panel)) Panel {
	p := NewPanel(id)
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withMin(s string) func(*Panel) {
	return func(p *Panel) { p.Min = MustParseUnit(s) }
}

func withMax(s string) func(*Panel) {
	return func(p *Panel) { p.Max = MustParseUnit(s) }
}

func withDefault(s string) func(*Panel) {
	return func(p *Panel) { p.Default = MustParseUnit(s) }
}

func collapsible(controlled bool) func(*Panel) {
	return func(p *Panel) {
		p.Collapsible = true
		p.CollapseIsControlled = controlled
	}
}

func ordered(i int) func(*Panel) {
	return func(p *Panel) { p.Order = OrderAt(i) }
}

func ids(items []Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.ItemID()
	}
	return strings.Join(parts, ",")
}
