package layout

import "time"

// Item is a member of a panel group, either a Panel or a Handle value.
// Items are stored by value so copying a slice of items is enough to
// get an independent layout.
type Item interface {
	ItemID() string
	// ItemOrder returns the explicit placement hint, if any.
	ItemOrder() (int, bool)
	isItem()
}

// Animation configures command-driven collapse and expand transitions.
// An empty Easing means no animation: the change lands in a single frame.
type Animation struct {
	Easing   string        `json:"easing,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Enabled reports whether an easing curve is configured.
func (a Animation) Enabled() bool { return a.Easing != "" }

// Panel is one resizable region.
type Panel struct {
	ID    string `json:"id"`
	Order *int   `json:"order,omitempty"`

	Min     Unit `json:"min"`
	Max     Unit `json:"max"`
	Default Unit `json:"default"`

	Collapsible          bool `json:"collapsible,omitempty"`
	Collapsed            bool `json:"collapsed,omitempty"`
	CollapsedSize        Unit `json:"collapsedSize"`
	CollapseIsControlled bool `json:"collapseIsControlled,omitempty"`
	// SizeBeforeCollapse is the pixel size the panel had when it last
	// collapsed. Expanding restores it.
	SizeBeforeCollapse Unit `json:"sizeBeforeCollapse"`

	// CurrentValue is pixel while an interaction is live and percent once
	// committed. Auto means the panel has not been laid out yet.
	CurrentValue Unit `json:"currentValue"`

	CollapseAnimation Animation `json:"collapseAnimation"`
}

// NewPanel returns a panel with the default constraints: 0px min, fill max,
// 0px collapsed size.
func NewPanel(id string) Panel {
	return Panel{
		ID:            id,
		Min:           Px(0),
		Max:           FillUnit,
		CollapsedSize: Px(0),
	}
}

func (p Panel) ItemID() string { return p.ID }

func (p Panel) ItemOrder() (int, bool) {
	if p.Order == nil {
		return 0, false
	}
	return *p.Order, true
}

func (Panel) isItem() {}

// IsCollapsed reports whether the panel is collapsible and currently
// collapsed. Collapsed is meaningless on non-collapsible panels.
func (p Panel) IsCollapsed() bool { return p.Collapsible && p.Collapsed }

// Handle is a fixed-size divider between two panels.
type Handle struct {
	ID    string `json:"id"`
	Order *int   `json:"order,omitempty"`
	Size  Unit   `json:"size"`
}

// NewHandle returns a handle of the given pixel size.
func NewHandle(id string, size float64) Handle {
	return Handle{ID: id, Size: Px(size)}
}

func (h Handle) ItemID() string { return h.ID }

func (h Handle) ItemOrder() (int, bool) {
	if h.Order == nil {
		return 0, false
	}
	return *h.Order, true
}

func (Handle) isItem() {}

// OrderAt is a helper for the Order fields.
func OrderAt(i int) *int { return &i }

// CloneItems returns a copy of items that shares no mutable state with it.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// PanelAt returns the panel at index i.
func PanelAt(items []Item, i int) (Panel, bool) {
	if i < 0 || i >= len(items) {
		return Panel{}, false
	}
	p, ok := items[i].(Panel)
	return p, ok
}

// HandleAt returns the handle at index i.
func HandleAt(items []Item, i int) (Handle, bool) {
	if i < 0 || i >= len(items) {
		return Handle{}, false
	}
	h, ok := items[i].(Handle)
	return h, ok
}

// FindPanel looks a panel up by id.
func FindPanel(items []Item, id string) (Panel, int, error) {
	i := IndexOf(items, id)
	p, ok := PanelAt(items, i)
	if !ok {
		return Panel{}, -1, errorf(ErrUnknownPanelID, id)
	}
	return p, i, nil
}

// FindHandle looks a handle up by id.
func FindHandle(items []Item, id string) (Handle, int, error) {
	i := IndexOf(items, id)
	h, ok := HandleAt(items, i)
	if !ok {
		return Handle{}, -1, errorf(ErrUnknownHandleID, id)
	}
	return h, i, nil
}

// AdjacentHandle returns the index of the handle used to resize or collapse
// the panel at index i, preferring the handle after it, and the drag
// direction that grows the panel through that handle.
func AdjacentHandle(items []Item, panelIndex int) (handleIndex int, growDirection float64, err error) {
	if _, ok := HandleAt(items, panelIndex+1); ok {
		return panelIndex + 1, 1, nil
	}
	if _, ok := HandleAt(items, panelIndex-1); ok {
		return panelIndex - 1, -1, nil
	}
	id := ""
	if panelIndex >= 0 && panelIndex < len(items) {
		id = items[panelIndex].ItemID()
	}
	return -1, 0, errorf(ErrNoAdjacentHandle, id)
}
