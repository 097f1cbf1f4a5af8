// Package render draws a panel group into terminal cells and maps cells back
// to the items under them.
package render

import (
	"math"
	"sort"

	"github.com/Gaurav-Gosain/panes/internal/layout"
)

// Span is the run of cells one item occupies along the group's axis.
type Span struct {
	ID        string
	Handle    bool
	Collapsed bool
	Start     int
	Size      int
	Pixels    float64
}

// End is the first cell after the span.
func (s Span) End() int { return s.Start + s.Size }

// Geometry is a group measured in whole cells.
type Geometry struct {
	Orientation layout.Orientation
	Width       int
	Height      int
	Spans       []Span
}

// Measure rounds the pixel sizes of items to cells so the spans exactly fill
// the axis. sizes must be parallel to items.
func Measure(items []layout.Item, sizes []float64, o layout.Orientation, width, height int) Geometry {
	g := Geometry{Orientation: o, Width: width, Height: height}
	total := width
	if o == layout.Vertical {
		total = height
	}
	cells := CellSizes(sizes, total)
	pos := 0
	for i, it := range items {
		span := Span{ID: it.ItemID(), Start: pos}
		if i < len(cells) {
			span.Size = cells[i]
			span.Pixels = sizes[i]
		}
		switch v := it.(type) {
		case layout.Handle:
			span.Handle = true
		case layout.Panel:
			span.Collapsed = v.IsCollapsed()
		}
		g.Spans = append(g.Spans, span)
		pos += span.Size
	}
	return g
}

// CellSizes rounds sizes with the largest remainder method. When the sizes
// add up to total the result does too.
func CellSizes(sizes []float64, total int) []int {
	out := make([]int, len(sizes))
	if len(sizes) == 0 {
		return out
	}

	sum := 0.0
	floors := 0
	rem := make([]int, 0, len(sizes))
	for i, s := range sizes {
		s = math.Max(s, 0)
		sum += s
		out[i] = int(math.Floor(s + 1e-9))
		floors += out[i]
		rem = append(rem, i)
	}
	target := int(math.Round(sum))
	if total > 0 && target > total {
		target = total
	}

	frac := func(i int) float64 { return sizes[i] - float64(out[i]) }
	sort.SliceStable(rem, func(a, b int) bool { return frac(rem[a]) > frac(rem[b]) })
	for k := 0; floors < target && k < len(rem); k++ {
		if frac(rem[k]) <= 0 {
			break
		}
		out[rem[k]]++
		floors++
	}
	return out
}

// axis picks the coordinate along the group's axis.
func (g Geometry) axis(x, y int) int {
	if g.Orientation == layout.Vertical {
		return y
	}
	return x
}

// ItemAt returns the span under the cell, if any.
func (g Geometry) ItemAt(x, y int) (Span, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Span{}, false
	}
	pos := g.axis(x, y)
	for _, s := range g.Spans {
		if s.Size > 0 && pos >= s.Start && pos < s.End() {
			return s, true
		}
	}
	return Span{}, false
}

// HandleAt returns the handle under the cell. A handle narrower than one
// cell is hit on the cell where it sits.
func (g Geometry) HandleAt(x, y int) (string, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return "", false
	}
	pos := g.axis(x, y)
	for _, s := range g.Spans {
		if !s.Handle {
			continue
		}
		if pos >= s.Start && pos < max(s.End(), s.Start+1) {
			return s.ID, true
		}
	}
	return "", false
}

// Handles returns handle ids in visual order.
func (g Geometry) Handles() []string {
	var ids []string
	for _, s := range g.Spans {
		if s.Handle {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
