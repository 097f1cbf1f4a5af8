package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"go.uber.org/zap"
)

// animation is an explicit collapse or expand in flight. Frames are driven
// by the scheduler; the panel and its handle are looked up again on every
// frame because registrations may reorder the group meanwhile.
type animation struct {
	event    Event
	panelID  string
	collapse bool
	from, to float64
	frames   int
	done     int
	start    time.Time
	ease     EasingFunc
}

// FrameCount returns how many frames an animation of duration d lasts.
func FrameCount(d time.Duration) int {
	n := int(math.Ceil(d.Seconds()*FrameRate - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

func (e *Engine) toggle(panelID string, collapse, authorized bool) (layout.Context, error) {
	c := e.working()
	p, i, err := layout.FindPanel(c.Items, panelID)
	if err != nil {
		return e.ctx, err
	}
	if _, _, err := layout.AdjacentHandle(c.Items, i); err != nil {
		return e.ctx, err
	}
	if !p.Collapsible {
		e.logger.Debug("panel is not collapsible", zap.String("panel", panelID))
		return e.ctx, nil
	}
	if p.Collapsed == collapse {
		return e.ctx, nil
	}
	if p.CollapseIsControlled && !authorized {
		e.notify([]layout.Notice{{PanelID: panelID, Collapsed: collapse}})
		return e.ctx, nil
	}

	a := &animation{
		panelID:  panelID,
		collapse: collapse,
		from:     c.PixelValue(p),
		frames:   1,
		start:    e.scheduler.Now(),
		ease:     easings["linear"],
	}
	if collapse {
		a.event = Collapse{PanelID: panelID, Authorized: authorized}
		a.to = c.CollapsedPixels(p)
	} else {
		a.event = Expand{PanelID: panelID, Authorized: authorized}
		restore := c.MinPixels(p)
		if p.SizeBeforeCollapse.IsSet() {
			restore = layout.ToPixels(c.GroupSize(), p.SizeBeforeCollapse)
		}
		a.to = c.Clamp(p, restore)
	}
	if anim := p.CollapseAnimation; anim.Enabled() && !e.noAnimations {
		ease, err := ParseEasing(anim.Easing)
		if err != nil {
			return e.ctx, fmt.Errorf("panel %q: %w", panelID, err)
		}
		a.ease = ease
		a.frames = FrameCount(anim.Duration)
	}

	e.logger.Debug("animation started",
		zap.String("panel", panelID),
		zap.Bool("collapse", collapse),
		zap.Float64("from", a.from),
		zap.Float64("to", a.to),
		zap.Int("frames", a.frames))
	e.anim = a
	e.state = TogglingCollapse
	e.scheduler.NextFrame(e.frameFunc(a))
	return c, nil
}

func (e *Engine) frameFunc(a *animation) func() {
	return func() {
		e.mu.Lock()
		e.runFrame(a)
		calls := e.takeCalls()
		e.mu.Unlock()

		for _, call := range calls {
			call()
		}
	}
}

func (e *Engine) runFrame(a *animation) {
	if e.anim != a {
		return
	}

	// Late frames catch up with the clock; every frame advances at least one.
	frame := int(e.scheduler.Now().Sub(a.start) / FrameInterval)
	frame = max(frame, a.done+1)
	frame = min(frame, a.frames)
	a.done = frame

	c, err := e.animate(a, frame)
	if err != nil {
		e.logger.Warn("animation aborted",
			zap.String("panel", a.panelID),
			zap.Int("frame", frame),
			zap.Error(err))
		e.anim = nil
		e.state = Idle
		e.ctx = e.commit(e.working())
		if fn := e.hooks.OnTransitionError; fn != nil {
			ev := a.event
			e.later(func() { fn(ev, err) })
		}
		return
	}

	if frame < a.frames {
		e.ctx = c
		e.scheduler.NextFrame(e.frameFunc(a))
		return
	}
	e.ctx = e.commit(c)
	e.anim = nil
	e.state = Idle
	e.logger.Debug("animation finished",
		zap.String("panel", a.panelID),
		zap.Bool("collapsed", a.collapse))
}

// animate moves the panel to its eased size for frame. Intermediate frames
// go through the drag arithmetic with the collapse buffer disabled; the last
// frame pins the panel to its exact target.
func (e *Engine) animate(a *animation, frame int) (layout.Context, error) {
	c := e.working()
	c.DragOvershoot = 0
	p, i, err := layout.FindPanel(c.Items, a.panelID)
	if err != nil {
		return c, err
	}
	h, growDir, err := layout.AdjacentHandle(c.Items, i)
	if err != nil {
		return c, err
	}

	if frame >= a.frames {
		return pin(c, a, p, i), nil
	}
	if a.collapse && p.IsCollapsed() {
		return c, nil
	}

	desired := a.from + (a.to-a.from)*a.ease(float64(frame)/float64(a.frames))
	delta := desired - c.PixelValue(p)
	// Never move against the animation, e.g. while an expanding panel is
	// still held at its min by the first frame.
	if delta == 0 || (delta > 0) != (a.to > a.from) {
		return c, nil
	}
	handle, _ := layout.HandleAt(c.Items, h)
	res, err := layout.Update(c, layout.Drag{
		HandleID:                handle.ID,
		Delta:                   delta * growDir,
		DisregardCollapseBuffer: true,
		Controlled:              true,
	}, e.update)
	if err != nil {
		return c, err
	}
	c.Items = res.Items
	return c, nil
}

// pin sets the panel to the animation target and settles the difference
// with its neighbours.
func pin(c layout.Context, a *animation, p layout.Panel, i int) layout.Context {
	diff := a.to - c.PixelValue(p)
	if a.collapse {
		p.SizeBeforeCollapse = layout.Px(a.from)
	}
	p.Collapsed = a.collapse
	p.CurrentValue = layout.Px(a.to)
	c.Items[i] = p
	if diff != 0 {
		c.Items = layout.ShiftSpace(c, i, -diff)
	}
	return c
}
