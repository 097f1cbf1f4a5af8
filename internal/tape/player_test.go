package tape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func play(t *testing.T, script string) (*Player, error) {
	t.Helper()
	p := NewPlayer(zaptest.NewLogger(t))
	return p, p.Play(strings.NewReader(script))
}

func TestFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.tape"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			f, err := os.Open(file)
			require.NoError(t, err)
			defer f.Close()

			p := NewPlayer(zaptest.NewLogger(t))
			require.NoError(t, p.Play(f))
			assert.Empty(t, p.TransitionErrors())
		})
	}
}

func TestExpectationFailure(t *testing.T) {
	_, err := play(t, `size 500 200
panel a
handle h size=10
panel b
expect "200px 10px 290px"`)

	var exp *ExpectationError
	require.ErrorAs(t, err, &exp)
	assert.Equal(t, 5, exp.Line)
	assert.Equal(t, `"200px 10px 290px"`, exp.Want)
	assert.Equal(t, `"245px 10px 245px"`, exp.Got)
}

func TestExpectCollapsedFailure(t *testing.T) {
	_, err := play(t, `size 500 200
panel a
handle h size=10
panel b
expect-collapsed b true`)

	var exp *ExpectationError
	require.ErrorAs(t, err, &exp)
	assert.Equal(t, "collapsed=false", exp.Got)
}

func TestControlledPanelNotices(t *testing.T) {
	p, err := play(t, `panel a
handle h size=10
panel b min=100px collapsible controlled
size 500 200
drag h 145
drag-start h
drag-by h 60
drag-end h
expect "390px 10px 100px"
expect-collapsed b false`)
	require.NoError(t, err)
	assert.Equal(t, []layout.Notice{{PanelID: "b", Collapsed: true}}, p.Notices())

	// The owner answers with an authorized command.
	cmds, err := ParseString("collapse b authorized\nframes 1\nexpect \"490px 10px 0px\"")
	require.NoError(t, err)
	require.NoError(t, NewCommandExecutor(p).Run(cmds))
}

func TestExecutorErrors(t *testing.T) {
	setup := "size 500 200\npanel a\nhandle h size=10\npanel b\n"
	tests := []struct {
		name   string
		script string
		is     error
		msg    string
	}{
		{"drag-by without drag", "drag-by h 5", nil, "line 5: drag-by: no drag in progress"},
		{"unknown panel option", "panel c wide", nil, `line 5: panel: unknown panel option "wide"`},
		{"option without value", "panel c min", nil, `line 5: panel: panel c min: invalid unit: ""`},
		{"bad unit", "set-size a 10em", layout.ErrInvalidUnit, ""},
		{"unknown id", "remove nope", layout.ErrUnknownHandleID, ""},
		{"unknown panel", "collapse nope", layout.ErrUnknownPanelID, ""},
		{"bad frame count", "frames -1", nil, `line 5: frames: invalid frame count "-1"`},
		{"bad delta", "drag h far", nil, `line 5: drag: invalid delta "far"`},
		{"bad orientation", "orientation diagonal", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := play(t, setup+tt.script)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestRemoveReportsTransitionError(t *testing.T) {
	p, err := play(t, "size 500 200\npanel a\nhandle h size=10\npanel b\nremove nope")
	require.Error(t, err)
	assert.Len(t, p.TransitionErrors(), 1)
}

func TestHandleDefaults(t *testing.T) {
	p, err := play(t, "size 21 10\npanel a\nhandle h\npanel b")
	require.NoError(t, err)
	assert.Equal(t, "10px 1px 10px", p.PixelTemplate())
}
