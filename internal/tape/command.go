// Package tape implements a small line-oriented script format that drives a
// panel group and asserts on its layout. Scripts are used as regression
// fixtures and to seed layouts from the command line.
//
//	size 500 200
//	panel a
//	handle h size=10
//	panel b min=100px collapsible
//	drag h 40
//	expect "285px 10px 205px"
package tape

import "fmt"

// CommandType identifies a tape command
type CommandType int

const (
	CommandTypeUnknown CommandType = iota

	// Group setup
	CommandTypeSize
	CommandTypeOrientation
	CommandTypePanel
	CommandTypeHandle
	CommandTypeRemove

	// Dragging
	CommandTypeDrag
	CommandTypeDragStart
	CommandTypeDragBy
	CommandTypeDragEnd

	// Collapse and sizing
	CommandTypeCollapse
	CommandTypeExpand
	CommandTypeToggle
	CommandTypeSetSize

	// Animation frames
	CommandTypeFrames

	// Assertions
	CommandTypeExpect
	CommandTypeExpectCollapsed
)

var commandNames = map[string]CommandType{
	"size":             CommandTypeSize,
	"orientation":      CommandTypeOrientation,
	"panel":            CommandTypePanel,
	"handle":           CommandTypeHandle,
	"remove":           CommandTypeRemove,
	"drag":             CommandTypeDrag,
	"drag-start":       CommandTypeDragStart,
	"drag-by":          CommandTypeDragBy,
	"drag-end":         CommandTypeDragEnd,
	"collapse":         CommandTypeCollapse,
	"expand":           CommandTypeExpand,
	"toggle":           CommandTypeToggle,
	"set-size":         CommandTypeSetSize,
	"frames":           CommandTypeFrames,
	"expect":           CommandTypeExpect,
	"expect-collapsed": CommandTypeExpectCollapsed,
}

// minArgs is the number of positional arguments each command needs
var minArgs = map[CommandType]int{
	CommandTypeSize:            2,
	CommandTypeOrientation:     1,
	CommandTypePanel:           1,
	CommandTypeHandle:          1,
	CommandTypeRemove:          1,
	CommandTypeDrag:            2,
	CommandTypeDragStart:       1,
	CommandTypeDragBy:          2,
	CommandTypeDragEnd:         1,
	CommandTypeCollapse:        1,
	CommandTypeExpand:          1,
	CommandTypeToggle:          1,
	CommandTypeSetSize:         2,
	CommandTypeExpect:          1,
	CommandTypeExpectCollapsed: 2,
}

func (t CommandType) String() string {
	for name, ct := range commandNames {
		if ct == t {
			return name
		}
	}
	return "unknown"
}

// Command is one parsed script line
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c *Command) String() string {
	return fmt.Sprintf("%d: %s %v", c.Line, c.Type, c.Args)
}

// arg returns the i-th argument or "" when absent
func (c *Command) arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}
