package engine

import (
	"testing"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src, _, _ := newEngine(t)
	b := collapsibleB(false)
	b.Order = layout.OrderAt(2)
	twoPanels(t, src, b)
	dragBy(t, src, "h", 37)

	data, err := EncodeSnapshot(src.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
	assert.Contains(t, string(data), `"groupId":"test"`)
	assert.Contains(t, string(data), `"type":"handle"`)
	assert.Contains(t, string(data), `"orientation":"horizontal"`)

	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)

	dst, _, _ := newEngine(t, WithGroupID("other"))
	send(t, dst,
		SetSize{Size: layout.Rect{Width: 500, Height: 200}},
		RestoreSnapshot{Snapshot: snap},
	)
	assert.Equal(t, "282px 10px 208px", dst.PixelTemplate())
	assert.Equal(t, src.Template(), dst.Template())
	assert.Equal(t, "test", dst.GroupID())

	restored := panelOf(t, dst, "b")
	assert.True(t, restored.Collapsible)
	assert.Equal(t, layout.Px(100), restored.Min)
	require.NotNil(t, restored.Order)
	assert.Equal(t, 2, *restored.Order)
}

func TestSnapshotDuringDragIsCommitted(t *testing.T) {
	e, _, _ := newEngine(t)
	twoPanels(t, e, layout.NewPanel("b"))
	send(t, e, DragStart{HandleID: "h"})
	steps(t, e, "h", 49)

	snap := e.Snapshot()
	for _, it := range snap.Items {
		if p, ok := it.(layout.Panel); ok {
			assert.Equal(t, layout.Percent, p.CurrentValue.Kind, p.ID)
		}
	}
	p, _, err := layout.FindPanel(snap.Items, "a")
	require.NoError(t, err)
	assert.InDelta(t, 294.0/490.0, p.CurrentValue.Value, 1e-12)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing version", `{"groupId":"g","orientation":"horizontal","items":[]}`},
		{"future version", `{"version":2,"items":[]}`},
		{"unknown item", `{"version":1,"items":[{"type":"spacer"}]}`},
		{"bad orientation", `{"version":1,"orientation":"diagonal","items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := DecodeSnapshot([]byte(`{"version":3}`))
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}
