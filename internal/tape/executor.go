package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
)

// Executor applies tape commands to a panel group
// This bridges the gap between tape commands and the layout engine
type Executor interface {
	// Group setup
	SetSize(width, height float64) error
	SetOrientation(o layout.Orientation) error
	AddPanel(p layout.Panel, dynamic bool) error
	AddHandle(h layout.Handle, dynamic bool) error
	Remove(id string) error

	// Dragging; delta is replayed as unit pointer steps
	DragStart(handleID string) error
	DragBy(handleID string, delta int, fast bool) error
	DragEnd(handleID string) error

	// Collapse and sizing
	Collapse(panelID string, authorized bool) error
	Expand(panelID string, authorized bool) error
	Toggle(handleID string) error
	SetPanelSize(panelID string, size layout.Unit) error

	// AdvanceFrames runs n animation frames, or all pending ones when n is 0,
	// and returns how many ran
	AdvanceFrames(n int) (int, error)

	// Queries for assertions
	PixelTemplate() string
	IsCollapsed(panelID string) (bool, error)
}

// ExpectationError reports a failed expect line
type ExpectationError struct {
	Line int
	Want string
	Got  string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("line %d: expected %s, got %s", e.Line, e.Want, e.Got)
}

// CommandExecutor provides a default implementation
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Run executes cmds in order and stops at the first failure
func (ce *CommandExecutor) Run(cmds []Command) error {
	for i := range cmds {
		if err := ce.Execute(&cmds[i]); err != nil {
			return err
		}
	}
	return nil
}

// Execute executes a command
func (ce *CommandExecutor) Execute(cmd *Command) error {
	if ce.executor == nil {
		return nil
	}
	if err := ce.execute(cmd); err != nil {
		if _, ok := err.(*ExpectationError); ok {
			return err
		}
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
	}
	return nil
}

func (ce *CommandExecutor) execute(cmd *Command) error {
	ex := ce.executor
	switch cmd.Type {
	case CommandTypeSize:
		w, err := parseFloat(cmd.arg(0))
		if err != nil {
			return err
		}
		h, err := parseFloat(cmd.arg(1))
		if err != nil {
			return err
		}
		return ex.SetSize(w, h)

	case CommandTypeOrientation:
		o, err := layout.ParseOrientation(cmd.arg(0))
		if err != nil {
			return err
		}
		return ex.SetOrientation(o)

	case CommandTypePanel:
		p, dynamic, err := parsePanel(cmd.arg(0), cmd.Args[1:])
		if err != nil {
			return err
		}
		return ex.AddPanel(p, dynamic)

	case CommandTypeHandle:
		h, dynamic, err := parseHandle(cmd.arg(0), cmd.Args[1:])
		if err != nil {
			return err
		}
		return ex.AddHandle(h, dynamic)

	case CommandTypeRemove:
		return ex.Remove(cmd.arg(0))

	case CommandTypeDrag:
		delta, fast, err := parseDelta(cmd.Args[1:])
		if err != nil {
			return err
		}
		if err := ex.DragStart(cmd.arg(0)); err != nil {
			return err
		}
		if err := ex.DragBy(cmd.arg(0), delta, fast); err != nil {
			return err
		}
		return ex.DragEnd(cmd.arg(0))

	case CommandTypeDragStart:
		return ex.DragStart(cmd.arg(0))

	case CommandTypeDragBy:
		delta, fast, err := parseDelta(cmd.Args[1:])
		if err != nil {
			return err
		}
		return ex.DragBy(cmd.arg(0), delta, fast)

	case CommandTypeDragEnd:
		return ex.DragEnd(cmd.arg(0))

	case CommandTypeCollapse:
		return ex.Collapse(cmd.arg(0), cmd.arg(1) == "authorized")

	case CommandTypeExpand:
		return ex.Expand(cmd.arg(0), cmd.arg(1) == "authorized")

	case CommandTypeToggle:
		return ex.Toggle(cmd.arg(0))

	case CommandTypeSetSize:
		u, err := layout.ParseUnit(cmd.arg(1))
		if err != nil {
			return err
		}
		return ex.SetPanelSize(cmd.arg(0), u)

	case CommandTypeFrames:
		n := 0
		if len(cmd.Args) > 0 {
			v, err := strconv.Atoi(cmd.arg(0))
			if err != nil || v < 0 {
				return fmt.Errorf("invalid frame count %q", cmd.arg(0))
			}
			n = v
		}
		_, err := ex.AdvanceFrames(n)
		return err

	case CommandTypeExpect:
		want := strings.Join(cmd.Args, " ")
		if got := ex.PixelTemplate(); got != want {
			return &ExpectationError{Line: cmd.Line, Want: strconv.Quote(want), Got: strconv.Quote(got)}
		}
		return nil

	case CommandTypeExpectCollapsed:
		want, err := strconv.ParseBool(cmd.arg(1))
		if err != nil {
			return fmt.Errorf("invalid bool %q", cmd.arg(1))
		}
		got, err := ex.IsCollapsed(cmd.arg(0))
		if err != nil {
			return err
		}
		if got != want {
			return &ExpectationError{
				Line: cmd.Line,
				Want: fmt.Sprintf("%s collapsed=%t", cmd.arg(0), want),
				Got:  fmt.Sprintf("collapsed=%t", got),
			}
		}
		return nil
	}

	return fmt.Errorf("unsupported command")
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parseDelta(args []string) (int, bool, error) {
	if len(args) == 0 {
		return 0, false, fmt.Errorf("missing delta")
	}
	delta, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false, fmt.Errorf("invalid delta %q", args[0])
	}
	fast := len(args) > 1 && args[1] == "fast"
	return delta, fast, nil
}

// parsePanel reads "panel <id> [key=value|flag]...". Unknown options are errors.
func parsePanel(id string, opts []string) (layout.Panel, bool, error) {
	p := layout.NewPanel(id)
	dynamic := false
	for _, opt := range opts {
		key, value, hasValue := strings.Cut(opt, "=")
		var err error
		switch key {
		case "min":
			p.Min, err = layout.ParseUnit(value)
		case "max":
			p.Max, err = layout.ParseMax(value)
		case "default":
			p.Default, err = layout.ParseUnit(value)
		case "collapsed-size":
			p.CollapsedSize, err = layout.ParseUnit(value)
		case "easing":
			p.CollapseAnimation.Easing = value
		case "duration":
			p.CollapseAnimation.Duration, err = time.ParseDuration(value)
		case "order":
			p.Order, err = parseOrder(value)
		case "collapsible":
			p.Collapsible = true
		case "collapsed":
			p.Collapsed = true
		case "controlled":
			p.CollapseIsControlled = true
		case "dynamic":
			dynamic = true
		default:
			return p, false, fmt.Errorf("unknown panel option %q", opt)
		}
		if err != nil {
			return p, false, fmt.Errorf("panel %s %s: %w", id, key, err)
		}
		if !hasValue && needsValue(key) {
			return p, false, fmt.Errorf("panel option %q needs a value", key)
		}
	}
	return p, dynamic, nil
}

func parseHandle(id string, opts []string) (layout.Handle, bool, error) {
	h := layout.NewHandle(id, 1)
	dynamic := false
	for _, opt := range opts {
		key, value, _ := strings.Cut(opt, "=")
		switch key {
		case "size":
			v, err := parseFloat(value)
			if err != nil {
				return h, false, err
			}
			h.Size = layout.Px(v)
		case "order":
			o, err := parseOrder(value)
			if err != nil {
				return h, false, err
			}
			h.Order = o
		case "dynamic":
			dynamic = true
		default:
			return h, false, fmt.Errorf("unknown handle option %q", opt)
		}
	}
	return h, dynamic, nil
}

func parseOrder(s string) (*int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid order %q", s)
	}
	return layout.OrderAt(n), nil
}

func needsValue(key string) bool {
	switch key {
	case "collapsible", "collapsed", "controlled", "dynamic":
		return false
	}
	return true
}
