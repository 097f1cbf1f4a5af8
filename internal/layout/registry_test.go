package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemOrdering(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name:  "unordered items keep registration order",
			items: []Item{panel("a"), NewHandle("h", 10), panel("b")},
			want:  "a,h,b",
		},
		{
			name:  "explicit order inserts at index",
			items: []Item{panel("a"), panel("b"), panel("c", ordered(1))},
			want:  "a,c,b",
		},
		{
			name:  "order past the end appends",
			items: []Item{panel("a", ordered(7)), panel("b")},
			want:  "a,b",
		},
		{
			name:  "last registration for an index wins it",
			items: []Item{panel("a", ordered(0)), panel("b", ordered(0))},
			want:  "b,a",
		},
		{
			name:  "re-registering replaces in place",
			items: []Item{panel("a"), panel("b"), panel("c"), panel("b")},
			want:  "a,b,c",
		},
		{
			name:  "re-registering with an order moves the item",
			items: []Item{panel("a"), panel("b"), panel("c"), panel("c", ordered(0))},
			want:  "c,a,b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []Item
			for _, it := range tt.items {
				items = AddItem(items, it)
			}
			assert.Equal(t, tt.want, ids(items))
		})
	}
}

func TestAddItemDoesNotAlias(t *testing.T) {
	base := AddItem(nil, panel("a"))
	base = AddItem(base, panel("b"))
	grown := AddItem(base, panel("c", ordered(0)))

	assert.Equal(t, "a,b", ids(base))
	assert.Equal(t, "c,a,b", ids(grown))
}

func TestRemoveItem(t *testing.T) {
	items := []Item{panel("a"), NewHandle("h", 10), panel("b")}

	out, err := RemoveItem(items, "h", Handle{})
	require.NoError(t, err)
	assert.Equal(t, "a,b", ids(out))
	assert.Equal(t, "a,h,b", ids(items))

	_, err = RemoveItem(items, "x", Handle{})
	assert.ErrorIs(t, err, ErrUnknownHandleID)
	_, err = RemoveItem(items, "x", Panel{})
	assert.ErrorIs(t, err, ErrUnknownPanelID)
}

func TestLookups(t *testing.T) {
	items := []Item{panel("a"), NewHandle("h1", 10), panel("b"), NewHandle("h2", 10), panel("c")}

	assert.Equal(t, []string{"a", "b", "c"}, PanelIDs(items))
	assert.Equal(t, []string{"h1", "h2"}, HandleIDs(items))

	_, _, err := FindPanel(items, "h1")
	assert.ErrorIs(t, err, ErrUnknownPanelID)
	_, i, err := FindHandle(items, "h2")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	h, dir, err := AdjacentHandle(items, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, h)
	assert.Equal(t, 1.0, dir)

	h, dir, err = AdjacentHandle(items, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, h)
	assert.Equal(t, -1.0, dir)

	_, _, err = AdjacentHandle([]Item{panel("solo")}, 0)
	assert.ErrorIs(t, err, ErrNoAdjacentHandle)
}
