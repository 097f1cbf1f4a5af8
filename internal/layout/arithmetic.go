package layout

import (
	"math"
)

// DefaultCollapseThreshold is the overshoot, in pixels, a drag has to build up
// next to a collapsible panel before it collapses or expands.
const DefaultCollapseThreshold = 50

// DefaultFastMultiplier scales drag deltas while the fast modifier is held.
const DefaultFastMultiplier = 15

// epsilon absorbs float noise from fractional (animated) moves when
// comparing a panel against its bounds.
const epsilon = 1e-6

// Prepare returns a copy of the items where every laid-out panel holds a
// pixel value. Committed percentages are resolved against the container
// minus the static width and rounded to whole pixels, half away from zero.
// Panels already in pixel form and panels that were never laid out are
// left as they are.
func Prepare(c Context) []Item {
	available := math.Max(c.GroupSize()-StaticWidth(c), 0)
	items := CloneItems(c.Items)
	for i, it := range items {
		p, ok := it.(Panel)
		if !ok || p.CurrentValue.Kind != Percent {
			continue
		}
		p.CurrentValue = Px(math.Round(available * p.CurrentValue.Value))
		items[i] = p
	}
	return items
}

// Commit is the inverse of Prepare. Non-collapsed panels become a fraction
// of the container minus the static width so later container resizes scale
// them without another drag; collapsed panels are pinned to their collapsed
// size.
func Commit(c Context) []Item {
	items := CloneItems(c.Items)
	available := c.GroupSize() - StaticWidth(c)
	for i, it := range items {
		p, ok := it.(Panel)
		if !ok || !p.CurrentValue.IsSet() {
			continue
		}
		if p.IsCollapsed() {
			p.CurrentValue = Px(c.CollapsedPixels(p))
			items[i] = p
			continue
		}
		px := c.PixelValue(p)
		if available <= 0 {
			p.CurrentValue = Pct(0)
		} else {
			p.CurrentValue = Pct(px / available)
		}
		items[i] = p
	}
	return items
}

// Drag is a single move of a handle along the active axis.
type Drag struct {
	HandleID string
	Delta    float64
	// Fast multiplies Delta by the fast multiplier.
	Fast bool
	// DisregardCollapseBuffer applies collapse and expand immediately, without
	// waiting for the overshoot threshold. Scripted animations set it.
	DisregardCollapseBuffer bool
	// Controlled marks a move already authorized by the owner of a
	// controlled panel.
	Controlled bool
}

// Notice asks the external owner of a controlled panel to change its
// collapsed state.
type Notice struct {
	PanelID   string
	Collapsed bool
}

// UpdateOptions tunes Update.
type UpdateOptions struct {
	CollapseThreshold float64
	FastMultiplier    float64
}

// DefaultUpdateOptions returns the stock thresholds.
func DefaultUpdateOptions() UpdateOptions {
	return UpdateOptions{
		CollapseThreshold: DefaultCollapseThreshold,
		FastMultiplier:    DefaultFastMultiplier,
	}
}

// UpdateResult is the outcome of one Update call.
type UpdateResult struct {
	Items         []Item
	DragOvershoot float64
	// Applied is false when the move only changed the overshoot.
	Applied bool
	Notices []Notice
}

// Update applies a drag to prepared (pixel) items.
//
// Moving a handle by a positive delta shrinks the first panel after it that
// has room and grows the panel directly before it; a negative delta mirrors
// that. Input that cannot be applied (no room, inside the collapse buffer,
// waiting on the owner of a controlled panel) is accumulated in the
// overshoot instead.
func Update(c Context, d Drag, opts UpdateOptions) (UpdateResult, error) {
	_, handleIndex, err := FindHandle(c.Items, d.HandleID)
	if err != nil {
		return UpdateResult{}, err
	}

	delta := d.Delta
	if d.Fast {
		delta *= opts.FastMultiplier
	}
	unchanged := UpdateResult{Items: c.Items, DragOvershoot: c.DragOvershoot}
	if delta == 0 {
		return unchanged, nil
	}

	overshoot := c.DragOvershoot
	// Moving back against an existing overshoot first unwinds it, so the
	// handle starts moving again only once the pointer is back over it.
	if !d.DisregardCollapseBuffer && overshoot != 0 && sign(overshoot) != sign(delta) {
		if math.Abs(delta) <= math.Abs(overshoot) {
			unchanged.DragOvershoot = overshoot + delta
			return unchanged, nil
		}
		delta += overshoot
		overshoot = 0
	}

	dir := sign(delta)
	newOvershoot := overshoot + delta
	buffered := UpdateResult{Items: c.Items, DragOvershoot: newOvershoot}

	beforeIndex := findPanelWithRoom(c, c.Items, handleIndex+int(dir), int(dir))
	if beforeIndex == -1 {
		return buffered, nil
	}
	afterIndex := handleIndex - int(dir)
	after, ok := PanelAt(c.Items, afterIndex)
	if !ok {
		return UpdateResult{}, errorf(ErrHandleWithoutPanel, d.HandleID)
	}
	before, _ := PanelAt(c.Items, beforeIndex)

	items := CloneItems(c.Items)
	beforePx := c.PixelValue(before)
	afterPx := c.PixelValue(after)
	threshold := opts.CollapseThreshold
	crossing := math.Abs(overshoot) < threshold

	switch {
	case after.IsCollapsed():
		if !d.DisregardCollapseBuffer && math.Abs(newOvershoot) < threshold {
			return buffered, nil
		}
		if after.CollapseIsControlled && !d.Controlled {
			if crossing || d.DisregardCollapseBuffer {
				buffered.Notices = []Notice{{PanelID: after.ID, Collapsed: false}}
			}
			return buffered, nil
		}

		// The panel reappears at the size the pointer has travelled since it
		// left the collapsed edge, but never below its min.
		target := c.Clamp(after, c.CollapsedPixels(after)+math.Abs(newOvershoot))
		need := target - afterPx
		beforeNew := c.Clamp(before, beforePx-need)
		removed := beforePx - beforeNew

		before.CurrentValue = Px(beforeNew)
		after.Collapsed = false
		after.CurrentValue = Px(afterPx + removed)

	case before.Collapsible && !before.Collapsed && beforePx <= c.MinPixels(before)+epsilon:
		if !d.DisregardCollapseBuffer && math.Abs(newOvershoot) < threshold {
			return buffered, nil
		}
		if before.CollapseIsControlled && !d.Controlled {
			if crossing || d.DisregardCollapseBuffer {
				buffered.Notices = []Notice{{PanelID: before.ID, Collapsed: true}}
			}
			return buffered, nil
		}

		collapsedPx := c.CollapsedPixels(before)
		before.SizeBeforeCollapse = Px(beforePx)
		before.Collapsed = true
		before.CurrentValue = Px(collapsedPx)
		after.CurrentValue = Px(c.Clamp(after, afterPx+beforePx-collapsedPx))

	default:
		beforeNew := c.Clamp(before, beforePx-math.Abs(delta))
		removed := beforePx - beforeNew
		before.CurrentValue = Px(beforeNew)
		after.CurrentValue = Px(c.Clamp(after, afterPx+removed))
	}

	items[beforeIndex] = before
	items[afterIndex] = after

	// Whatever the clamps left unassigned goes back to the shrinking panel so
	// the items always add up to the container. A panel that just collapsed
	// keeps its collapsed size and the neighbours take the rest.
	next := c
	next.Items = items
	total := 0.0
	for _, it := range items {
		total += next.ItemPixels(it)
	}
	if leftover := c.GroupSize() - total; leftover != 0 {
		if before.IsCollapsed() {
			items = ShiftSpace(next, beforeIndex, leftover)
		} else {
			before.CurrentValue = Px(before.CurrentValue.Value + leftover)
			items[beforeIndex] = before
		}
	}

	return UpdateResult{Items: items, Applied: true}, nil
}

// HasRoomToShrink reports whether a drag may take space from p. Expanded
// collapsible panels always have room, since at their min they collapse.
func HasRoomToShrink(c Context, p Panel) bool {
	if p.Collapsible && !p.Collapsed {
		return true
	}
	return c.PixelValue(p) > c.MinPixels(p)+epsilon
}

// HasRoomToGrow reports whether p can take more space.
func HasRoomToGrow(c Context, p Panel) bool {
	if p.IsCollapsed() {
		return false
	}
	return c.PixelValue(p) < c.MaxPixels(p)-epsilon
}

func findPanelWithRoom(c Context, items []Item, start, dir int) int {
	for i := start; i >= 0 && i < len(items); i += dir {
		if p, ok := items[i].(Panel); ok && HasRoomToShrink(c, p) {
			return i
		}
	}
	return -1
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
