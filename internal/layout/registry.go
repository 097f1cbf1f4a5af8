package layout

// AddItem inserts item into items and returns the new sequence.
//
// Ids are unique: registering an id again replaces the existing entry. An
// explicit order inserts the item at that index (clamped to the sequence),
// pushing whatever held the slot one step further, so the last registration
// for an index wins it. Unordered items keep their current slot when
// re-registered and are otherwise appended, which preserves the relative
// order of everything registered without a hint.
func AddItem(items []Item, item Item) []Item {
	existing := IndexOf(items, item.ItemID())
	rest := items
	if existing != -1 {
		rest = removeAt(items, existing)
	}

	if order, ok := item.ItemOrder(); ok {
		return insertAt(rest, clampIndex(order, len(rest)), item)
	}
	if existing != -1 {
		return insertAt(rest, existing, item)
	}

	out := make([]Item, 0, len(rest)+1)
	out = append(out, rest...)
	return append(out, item)
}

// RemoveItem drops the item with id. Unknown ids are reported with the
// sentinel matching kind.
func RemoveItem(items []Item, id string, kind Item) ([]Item, error) {
	i := IndexOf(items, id)
	if i == -1 {
		if _, isHandle := kind.(Handle); isHandle {
			return nil, errorf(ErrUnknownHandleID, id)
		}
		return nil, errorf(ErrUnknownPanelID, id)
	}
	return removeAt(items, i), nil
}

// PanelIDs lists the ids of all panels, in order.
func PanelIDs(items []Item) []string {
	var ids []string
	for _, it := range items {
		if p, ok := it.(Panel); ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// HandleIDs lists the ids of all handles, in order.
func HandleIDs(items []Item) []string {
	var ids []string
	for _, it := range items {
		if h, ok := it.(Handle); ok {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

func removeAt(items []Item, i int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func insertAt(items []Item, i int, item Item) []Item {
	out := make([]Item, 0, len(items)+1)
	out = append(out, items[:i]...)
	out = append(out, item)
	return append(out, items[i:]...)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
