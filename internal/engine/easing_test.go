package engine

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		t.Run(name, func(t *testing.T) {
			fn, err := ParseEasing(name)
			require.NoError(t, err)
			assert.InDelta(t, 0, fn(0), 1e-9)
			assert.InDelta(t, 1, fn(1), 1e-9)
			for i := 0; i <= 20; i++ {
				v := fn(float64(i) / 20)
				assert.GreaterOrEqual(t, v, -1e-9)
				assert.LessOrEqual(t, v, 1+1e-9)
			}
		})
	}
}

func TestParseEasing(t *testing.T) {
	_, err := ParseEasing(" Ease-In-Out ")
	assert.NoError(t, err)

	_, err = ParseEasing("spring")
	assert.ErrorIs(t, err, ErrUnknownEasing)
	assert.Contains(t, err.Error(), "linear")
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 1},
		{time.Millisecond, 1},
		{FrameInterval, 1},
		{300 * time.Millisecond, 18},
		{500 * time.Millisecond, 30},
		{time.Second, 60},
		{1010 * time.Millisecond, 61},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FrameCount(tt.d))
		})
	}
}

func TestManualScheduler(t *testing.T) {
	start := time.Unix(100, 0)
	s := NewManualScheduler(start)
	assert.False(t, s.Step())

	var ran []int
	s.NextFrame(func() {
		ran = append(ran, 1)
		s.NextFrame(func() { ran = append(ran, 2) })
	})
	assert.Equal(t, 1, s.Pending())

	assert.True(t, s.Step())
	assert.Equal(t, []int{1}, ran, "callbacks queued during a frame wait for the next one")
	assert.Equal(t, start.Add(FrameInterval), s.Now())

	assert.Equal(t, 1, s.Drain(0))
	assert.Equal(t, []int{1, 2}, ran)
	assert.Equal(t, start.Add(2*FrameInterval), s.Now())
}

func TestTickSchedulerDrivesEngine(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewTickScheduler(func() time.Time { return now })
	assert.False(t, s.Run())

	e := New(WithScheduler(s))
	b := layout.NewPanel("b")
	b.Min = layout.Px(100)
	b.Collapsible = true
	b.CollapseAnimation = layout.Animation{Easing: "linear", Duration: 100 * time.Millisecond}
	require.NoError(t, e.Send(RegisterPanel{Panel: layout.NewPanel("a")}))
	require.NoError(t, e.Send(RegisterHandle{Handle: layout.NewHandle("h", 10)}))
	require.NoError(t, e.Send(RegisterPanel{Panel: b}))
	require.NoError(t, e.Send(SetSize{Size: layout.Rect{Width: 500, Height: 10}}))

	require.NoError(t, e.Send(Collapse{PanelID: "b"}))
	require.True(t, s.Pending())

	// A late tick catches up with the clock in one frame.
	now = now.Add(time.Second)
	assert.True(t, s.Run())
	assert.False(t, s.Pending())
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, "490px 10px 0px", e.PixelTemplate())
}
