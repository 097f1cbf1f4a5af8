package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	script := `
# setup
size 500 200
panel b min=100px  collapsible

EXPECT "245px 10px 245px"
drag-by h -3 fast
`
	cmds, err := ParseString(script)
	require.NoError(t, err)
	require.Len(t, cmds, 4)

	assert.Equal(t, Command{Type: CommandTypeSize, Args: []string{"500", "200"}, Line: 3}, cmds[0])
	assert.Equal(t, []string{"b", "min=100px", "collapsible"}, cmds[1].Args)
	assert.Equal(t, CommandTypeExpect, cmds[2].Type)
	assert.Equal(t, []string{"245px 10px 245px"}, cmds[2].Args, "quoted templates stay one argument")
	assert.Equal(t, 6, cmds[2].Line)
	assert.Equal(t, Command{Type: CommandTypeDragBy, Args: []string{"h", "-3", "fast"}, Line: 7}, cmds[3])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   int
		msg    string
	}{
		{"unknown command", "size 1 1\nwiggle h", 2, `unknown command "wiggle"`},
		{"missing args", "drag h", 1, "drag needs 2 argument(s), got 1"},
		{"unterminated quote", "\n\nexpect \"245px", 3, ""},
		{"expect collapsed arity", "expect-collapsed b", 1, "expect-collapsed needs 2 argument(s), got 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.script)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, perr.Msg)
			}
		})
	}
}

func TestCommandTypeString(t *testing.T) {
	assert.Equal(t, "drag-start", CommandTypeDragStart.String())
	assert.Equal(t, "expect-collapsed", CommandTypeExpectCollapsed.String())
	assert.Equal(t, "unknown", CommandTypeUnknown.String())
}
