package layout

import "math"

// InitialLayout gives every panel that has not been laid out yet a pixel
// size, the way a grid of minmax(min, 1fr) tracks would.
//
// Handles, collapsed panels, already sized panels and panels with a default
// are taken off the container first. The rest is split evenly between the
// flexible panels; a panel whose share falls outside its bounds is frozen
// at the bound and the split is redone for the others. Shares are rounded to
// whole pixels and the rounding remainder goes to the last flexible panel.
// Items must be prepared.
func InitialLayout(c Context) []Item {
	items := CloneItems(c.Items)
	size := c.GroupSize()
	if size <= 0 {
		return items
	}

	remaining := size
	var flexible []int
	for i, it := range items {
		switch v := it.(type) {
		case Handle:
			remaining -= ToPixels(size, v.Size)
		case Panel:
			switch {
			case v.IsCollapsed():
				v.CurrentValue = Px(c.CollapsedPixels(v))
				items[i] = v
				remaining -= v.CurrentValue.Value
			case v.CurrentValue.IsSet():
				remaining -= c.PixelValue(v)
			case v.Default.IsSet():
				v.CurrentValue = Px(c.Clamp(v, ToPixels(size, v.Default)))
				items[i] = v
				remaining -= v.CurrentValue.Value
			default:
				flexible = append(flexible, i)
			}
		}
	}
	if len(flexible) == 0 {
		return items
	}

	shares := make(map[int]float64, len(flexible))
	frozen := make(map[int]bool, len(flexible))
	for {
		free := remaining
		open := 0
		for _, i := range flexible {
			if frozen[i] {
				free -= shares[i]
				continue
			}
			open++
		}
		if open == 0 {
			break
		}
		share := math.Max(free/float64(open), 0)
		violated := false
		for _, i := range flexible {
			if frozen[i] {
				continue
			}
			p := items[i].(Panel)
			clamped := c.Clamp(p, share)
			shares[i] = clamped
			if clamped != share {
				frozen[i] = true
				violated = true
			}
		}
		if !violated {
			break
		}
	}

	assigned := 0.0
	last := -1
	for _, i := range flexible {
		p := items[i].(Panel)
		v := math.Round(shares[i])
		if !frozen[i] {
			last = i
		}
		p.CurrentValue = Px(v)
		items[i] = p
		assigned += v
	}
	if last != -1 {
		if leftover := remaining - assigned; leftover != 0 {
			p := items[last].(Panel)
			p.CurrentValue = Px(p.CurrentValue.Value + leftover)
			items[last] = p
		}
	}
	return items
}

// ApplyMeasurements replaces panel sizes with host-measured rectangles.
// Collapsed panels and ids that are not panels are ignored.
func ApplyMeasurements(c Context, sizes map[string]Rect) []Item {
	items := CloneItems(c.Items)
	for i, it := range items {
		p, ok := it.(Panel)
		if !ok || p.IsCollapsed() {
			continue
		}
		if r, ok := sizes[p.ID]; ok {
			p.CurrentValue = Px(r.Axis(c.Orientation))
			items[i] = p
		}
	}
	return items
}

// InsertDynamic adds item to a laid-out, prepared group and carves its size
// out of the neighbouring panels. Panels are visited outward from the
// insertion point, alternating sides, and each gives up to what it has above
// its min. If the neighbours run out of room the group overflows rather than
// failing.
func InsertDynamic(c Context, item Item) []Item {
	size := c.GroupSize()
	var need float64
	switch v := item.(type) {
	case Handle:
		need = ToPixels(size, v.Size)
	case Panel:
		switch {
		case v.IsCollapsed():
			need = c.CollapsedPixels(v)
		case v.Default.IsSet():
			need = c.Clamp(v, ToPixels(size, v.Default))
		default:
			need = c.MinPixels(v)
		}
		v.CurrentValue = Px(need)
		item = v
	}

	items := AddItem(c.Items, item)
	at := IndexOf(items, item.ItemID())
	next := c
	next.Items = items
	return ShiftSpace(next, at, -need)
}

// RemoveDynamic removes the item with id from a prepared group and donates
// the space it occupied to its neighbours, mirroring InsertDynamic.
func RemoveDynamic(c Context, id string, kind Item) ([]Item, error) {
	i := IndexOf(c.Items, id)
	if i == -1 {
		return RemoveItem(c.Items, id, kind)
	}
	freed := c.ItemPixels(c.Items[i])
	if p, ok := c.Items[i].(Panel); ok && !p.CurrentValue.IsSet() {
		freed = 0
	}

	// Leave a zero-sized placeholder while donating so the neighbour
	// distances stay those of the original sequence.
	items := CloneItems(c.Items)
	items[i] = Handle{ID: id, Size: Px(0)}
	next := c
	next.Items = items
	items = ShiftSpace(next, i, freed)
	return removeAt(items, i), nil
}

// ShiftSpace distributes amount (positive grows, negative shrinks) over the
// panels around index at, nearest first, alternating before and after.
// Collapsed panels and panels that were never laid out are skipped, and
// each panel stops at its own bound. Items must be prepared.
func ShiftSpace(c Context, at int, amount float64) []Item {
	items := CloneItems(c.Items)
	if amount == 0 {
		return items
	}
	remaining := math.Abs(amount)
	for dist := 1; remaining > 0 && (at-dist >= 0 || at+dist < len(items)); dist++ {
		for _, i := range []int{at - dist, at + dist} {
			if remaining <= 0 {
				break
			}
			p, ok := PanelAt(items, i)
			if !ok || p.IsCollapsed() || !p.CurrentValue.IsSet() {
				continue
			}
			px := c.PixelValue(p)
			var room float64
			if amount < 0 {
				room = px - c.MinPixels(p)
			} else {
				room = c.MaxPixels(p) - px
			}
			if room <= 0 {
				continue
			}
			take := math.Min(room, remaining)
			if amount < 0 {
				p.CurrentValue = Px(px - take)
			} else {
				p.CurrentValue = Px(px + take)
			}
			items[i] = p
			remaining -= take
		}
	}
	return items
}
