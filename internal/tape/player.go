package tape

import (
	"errors"
	"io"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"go.uber.org/zap"
)

// maxFrames bounds "frames" without a count so a stuck animation cannot
// hang a script.
const maxFrames = 10_000

// Player executes scripts against an engine whose frames advance only when
// the script says so.
type Player struct {
	Engine    *engine.Engine
	Scheduler *engine.ManualScheduler

	notices []layout.Notice
	errs    []error
}

// NewPlayer creates an engine driven by a manual scheduler. Extra options
// are applied after the player's own.
func NewPlayer(logger *zap.Logger, opts ...engine.Option) *Player {
	p := &Player{Scheduler: engine.NewManualScheduler(time.Unix(0, 0))}
	base := []engine.Option{
		engine.WithLogger(logger),
		engine.WithScheduler(p.Scheduler),
		engine.WithHooks(engine.Hooks{
			OnCollapseChange: func(panelID string, collapsed bool) {
				p.notices = append(p.notices, layout.Notice{PanelID: panelID, Collapsed: collapsed})
			},
			OnTransitionError: func(_ engine.Event, err error) {
				p.errs = append(p.errs, err)
			},
		}),
	}
	p.Engine = engine.New(append(base, opts...)...)
	return p
}

// Play parses and runs a script.
func (p *Player) Play(r io.Reader) error {
	cmds, err := Parse(r)
	if err != nil {
		return err
	}
	return NewCommandExecutor(p).Run(cmds)
}

// Notices returns the collapse requests received so far.
func (p *Player) Notices() []layout.Notice { return p.notices }

// TransitionErrors returns every failed transition reported by the engine.
func (p *Player) TransitionErrors() []error { return p.errs }

func (p *Player) SetSize(width, height float64) error {
	return p.Engine.Send(engine.SetSize{Size: layout.Rect{Width: width, Height: height}})
}

func (p *Player) SetOrientation(o layout.Orientation) error {
	return p.Engine.Send(engine.SetOrientation{Orientation: o})
}

func (p *Player) AddPanel(panel layout.Panel, dynamic bool) error {
	if dynamic {
		return p.Engine.Send(engine.RegisterDynamicPanel{Panel: panel})
	}
	return p.Engine.Send(engine.RegisterPanel{Panel: panel})
}

func (p *Player) AddHandle(h layout.Handle, dynamic bool) error {
	return p.Engine.Send(engine.RegisterHandle{Handle: h, Dynamic: dynamic})
}

func (p *Player) Remove(id string) error {
	items := p.Engine.Context().Items
	if _, _, err := layout.FindPanel(items, id); err == nil {
		return p.Engine.Send(engine.UnregisterPanel{PanelID: id})
	}
	return p.Engine.Send(engine.UnregisterHandle{HandleID: id})
}

func (p *Player) DragStart(handleID string) error {
	return p.Engine.Send(engine.DragStart{HandleID: handleID})
}

// DragBy sends one event per unit of delta, the way pointer motion arrives.
func (p *Player) DragBy(handleID string, delta int, fast bool) error {
	if p.Engine.State() != engine.Dragging {
		return errors.New("no drag in progress")
	}
	step := 1.0
	if delta < 0 {
		step, delta = -1, -delta
	}
	for range delta {
		if err := p.Engine.Send(engine.Drag{HandleID: handleID, Delta: step, Fast: fast}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) DragEnd(handleID string) error {
	return p.Engine.Send(engine.DragEnd{HandleID: handleID})
}

func (p *Player) Collapse(panelID string, authorized bool) error {
	return p.Engine.Send(engine.Collapse{PanelID: panelID, Authorized: authorized})
}

func (p *Player) Expand(panelID string, authorized bool) error {
	return p.Engine.Send(engine.Expand{PanelID: panelID, Authorized: authorized})
}

func (p *Player) Toggle(handleID string) error {
	return p.Engine.Send(engine.ToggleHandleCollapse{HandleID: handleID})
}

func (p *Player) SetPanelSize(panelID string, size layout.Unit) error {
	return p.Engine.Send(engine.SetPixelSize{PanelID: panelID, Size: size})
}

func (p *Player) AdvanceFrames(n int) (int, error) {
	before := len(p.errs)
	var ran int
	if n == 0 {
		ran = p.Scheduler.Drain(maxFrames)
	} else {
		for ran < n && p.Scheduler.Step() {
			ran++
		}
	}
	if len(p.errs) > before {
		return ran, p.errs[len(p.errs)-1]
	}
	return ran, nil
}

func (p *Player) PixelTemplate() string {
	return p.Engine.PixelTemplate()
}

func (p *Player) IsCollapsed(panelID string) (bool, error) {
	panel, _, err := layout.FindPanel(p.Engine.Context().Items, panelID)
	if err != nil {
		return false, err
	}
	return panel.IsCollapsed(), nil
}

var _ Executor = (*Player)(nil)
