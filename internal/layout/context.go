package layout

import (
	"fmt"
	"math"
	"strings"
)

// Orientation selects the active axis of a group.
type Orientation uint8

const (
	// Horizontal lays panels out left to right; widths are resized.
	Horizontal Orientation = iota
	// Vertical lays panels out top to bottom; heights are resized.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation accepts "horizontal" and "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("invalid orientation %q (want horizontal or vertical)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Rect is a measured size. Both axes are kept even though only one is active.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Axis returns the length along o.
func (r Rect) Axis(o Orientation) float64 {
	if o == Vertical {
		return r.Height
	}
	return r.Width
}

// Context is the complete state of one panel group.
type Context struct {
	Items       []Item
	Size        Rect
	Orientation Orientation
	// DragOvershoot accumulates drag input that could not be applied. It is
	// zero whenever no drag is in progress.
	DragOvershoot float64
	GroupID       string
}

// Clone returns a deep enough copy for a transition to work on.
func (c Context) Clone() Context {
	c.Items = CloneItems(c.Items)
	return c
}

// GroupSize is the container length along the active axis.
func (c Context) GroupSize() float64 {
	return c.Size.Axis(c.Orientation)
}

// PixelValue resolves a panel's current value. Committed percentages are
// resolved against the space left after the static width, unrounded.
func (c Context) PixelValue(p Panel) float64 {
	switch p.CurrentValue.Kind {
	case Pixels:
		return p.CurrentValue.Value
	case Percent:
		return (c.GroupSize() - StaticWidth(c)) * p.CurrentValue.Value
	}
	switch {
	case p.IsCollapsed():
		return c.CollapsedPixels(p)
	case p.Default.IsSet():
		return ToPixels(c.GroupSize(), p.Default)
	}
	return 0
}

// ItemPixels returns the pixel length of any item.
func (c Context) ItemPixels(it Item) float64 {
	switch v := it.(type) {
	case Handle:
		return ToPixels(c.GroupSize(), v.Size)
	case Panel:
		return c.PixelValue(v)
	}
	return 0
}

// MinPixels resolves the panel's minimum.
func (c Context) MinPixels(p Panel) float64 {
	return ToPixels(c.GroupSize(), p.Min)
}

// MaxPixels resolves the panel's maximum. Fill (and an unset max) has no
// bound and resolves to +Inf.
func (c Context) MaxPixels(p Panel) float64 {
	if p.Max.Kind == Fill || p.Max.Kind == Auto {
		return math.Inf(1)
	}
	return ToPixels(c.GroupSize(), p.Max)
}

// CollapsedPixels resolves the panel's collapsed size.
func (c Context) CollapsedPixels(p Panel) float64 {
	return ToPixels(c.GroupSize(), p.CollapsedSize)
}

// Clamp bounds v to the panel's [min, max].
func (c Context) Clamp(p Panel, v float64) float64 {
	return math.Min(math.Max(v, c.MinPixels(p)), c.MaxPixels(p))
}

// IsLaidOut reports whether every panel has a concrete size.
func (c Context) IsLaidOut() bool {
	panels := 0
	for _, it := range c.Items {
		p, ok := it.(Panel)
		if !ok {
			continue
		}
		panels++
		if !p.CurrentValue.IsSet() {
			return false
		}
	}
	return panels > 0
}

// StaticWidth is the space that does not scale with the container: handles,
// collapsed panels and panels pinned to their default before first layout.
func StaticWidth(c Context) float64 {
	size := c.GroupSize()
	width := 0.0
	for _, it := range c.Items {
		switch v := it.(type) {
		case Handle:
			width += ToPixels(size, v.Size)
		case Panel:
			switch {
			case v.IsCollapsed():
				width += ToPixels(size, v.CollapsedSize)
			case !v.CurrentValue.IsSet() && v.Default.IsSet():
				width += ToPixels(size, v.Default)
			}
		}
	}
	return width
}

// PixelSizes returns the resolved length of every item, in order.
func PixelSizes(c Context) []float64 {
	out := make([]float64, len(c.Items))
	for i, it := range c.Items {
		out[i] = c.ItemPixels(it)
	}
	return out
}

// PercentageSizes returns every item's share of the container, in order.
func PercentageSizes(c Context) []float64 {
	size := c.GroupSize()
	out := PixelSizes(c)
	for i := range out {
		if size == 0 {
			out[i] = 0
			continue
		}
		out[i] /= size
	}
	return out
}
