// Package engine runs a panel group: it owns the group context, applies
// events through the prepare, update and commit pipeline of package layout
// and drives collapse and expand animations frame by frame.
package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the state machine of one panel group. It is safe for concurrent
// use; hooks run after the engine lock is released, so they may send events.
type Engine struct {
	mu sync.Mutex

	ctx        layout.Context
	state      State
	dragHandle string
	anim       *animation

	update       layout.UpdateOptions
	noAnimations bool
	logger       *zap.Logger
	scheduler    Scheduler
	hooks        Hooks

	// calls holds hook invocations queued while the lock is held.
	calls []func()
}

// New returns an idle engine with an empty group.
func New(opts ...Option) *Engine {
	e := &Engine{
		ctx:       layout.Context{GroupID: uuid.NewString()},
		update:    layout.DefaultUpdateOptions(),
		logger:    zap.NewNop(),
		scheduler: realtimeScheduler{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("group", e.ctx.GroupID))
	return e
}

// Send applies ev. Events the current state does not handle are ignored.
// A failed event leaves the engine exactly as it was.
func (e *Engine) Send(ev Event) error {
	e.mu.Lock()
	err := e.handle(ev)
	calls := e.takeCalls()
	e.mu.Unlock()

	for _, call := range calls {
		call()
	}
	return err
}

func (e *Engine) handle(ev Event) error {
	if !e.state.accepts(ev) {
		e.logger.Debug("event ignored",
			zap.String("event", ev.eventName()),
			zap.Stringer("state", e.state))
		return nil
	}

	prev := e.state
	next, err := e.transition(ev)
	if err != nil {
		e.state = prev
		e.logger.Warn("transition failed",
			zap.String("event", ev.eventName()),
			zap.Stringer("state", e.state),
			zap.Error(err))
		if fn := e.hooks.OnTransitionError; fn != nil {
			e.later(func() { fn(ev, err) })
		}
		return err
	}
	e.ctx = next
	if e.state != prev {
		e.logger.Debug("state changed",
			zap.String("event", ev.eventName()),
			zap.Stringer("from", prev),
			zap.Stringer("to", e.state))
	}
	return nil
}

func (e *Engine) transition(ev Event) (layout.Context, error) {
	switch ev := ev.(type) {
	case RegisterPanel:
		return e.register(ev.Panel, false)
	case RegisterDynamicPanel:
		return e.register(ev.Panel, true)
	case RegisterHandle:
		return e.register(ev.Handle, ev.Dynamic)
	case UnregisterPanel:
		return e.unregister(ev.PanelID, layout.Panel{})
	case UnregisterHandle:
		return e.unregister(ev.HandleID, layout.Handle{})
	case DragStart:
		return e.dragStart(ev)
	case Drag:
		return e.drag(ev)
	case DragEnd:
		return e.dragEnd()
	case SetSize:
		c := e.ctx.Clone()
		c.Size = ev.Size
		return e.commit(e.layOut(c)), nil
	case SetMeasuredChildSizes:
		c := e.prepared()
		c.Items = layout.ApplyMeasurements(c, ev.Sizes)
		return e.commit(e.layOut(c)), nil
	case SetOrientation:
		c := e.ctx.Clone()
		c.Orientation = ev.Orientation
		return e.commit(e.layOut(c)), nil
	case Collapse:
		return e.toggle(ev.PanelID, true, ev.Authorized)
	case Expand:
		return e.toggle(ev.PanelID, false, ev.Authorized)
	case SetPixelSize:
		return e.setPixelSize(ev)
	case ToggleHandleCollapse:
		return e.toggleHandle(ev.HandleID)
	case RestoreSnapshot:
		return e.restore(ev.Snapshot)
	}
	return e.ctx, fmt.Errorf("unhandled event %T", ev)
}

func (e *Engine) register(item layout.Item, dynamic bool) (layout.Context, error) {
	c := e.prepared()
	if dynamic {
		// Nothing to carve from until the group has been laid out.
		c = e.layOut(c)
		dynamic = c.IsLaidOut()
	}
	if dynamic {
		c.Items = layout.InsertDynamic(c, item)
	} else {
		c.Items = layout.AddItem(c.Items, item)
	}
	e.logger.Debug("item registered",
		zap.String("id", item.ItemID()),
		zap.Bool("dynamic", dynamic))
	return e.commit(c), nil
}

func (e *Engine) unregister(id string, kind layout.Item) (layout.Context, error) {
	c := e.working()
	items, err := layout.RemoveDynamic(c, id, kind)
	if err != nil {
		return e.ctx, err
	}
	c.Items = items
	if e.anim != nil && e.anim.panelID == id {
		e.logger.Debug("animated panel removed", zap.String("panel", id))
		e.anim = nil
		e.state = Idle
	}
	return e.commit(c), nil
}

func (e *Engine) dragStart(ev DragStart) (layout.Context, error) {
	c := e.working()
	if _, _, err := layout.FindHandle(c.Items, ev.HandleID); err != nil {
		return e.ctx, err
	}
	c.DragOvershoot = 0
	e.state = Dragging
	e.dragHandle = ev.HandleID
	return c, nil
}

func (e *Engine) drag(ev Drag) (layout.Context, error) {
	c := e.working()
	res, err := layout.Update(c, layout.Drag{
		HandleID: ev.HandleID,
		Delta:    ev.Delta,
		Fast:     ev.Fast,
	}, e.update)
	if err != nil {
		return e.ctx, err
	}
	c.Items = res.Items
	c.DragOvershoot = res.DragOvershoot
	e.notify(res.Notices)
	return c, nil
}

func (e *Engine) dragEnd() (layout.Context, error) {
	c := e.working()
	e.state = Idle
	e.dragHandle = ""
	return e.commit(c), nil
}

// setPixelSize replays unit moves on the panel's handle so that clamping and
// the collapse buffer behave exactly as they would for a drag.
func (e *Engine) setPixelSize(ev SetPixelSize) (layout.Context, error) {
	c := e.working()
	p, i, err := layout.FindPanel(c.Items, ev.PanelID)
	if err != nil {
		return e.ctx, err
	}
	h, growDir, err := layout.AdjacentHandle(c.Items, i)
	if err != nil {
		return e.ctx, err
	}
	handle, _ := layout.HandleAt(c.Items, h)

	target := layout.ToPixels(c.GroupSize(), ev.Size)
	delta := target - c.PixelValue(p)
	step := growDir
	if delta < 0 {
		step = -growDir
	}
	for n := int(math.Round(math.Abs(delta))); n > 0; n-- {
		p, _ = layout.PanelAt(c.Items, i)
		left := target - c.PixelValue(p)
		if (delta > 0 && left < 0.5) || (delta < 0 && left > -0.5) {
			break
		}
		// A collapsed panel has no room of its own; growing it runs through
		// the collapse buffer like a drag does.
		if (delta > 0 && !p.IsCollapsed() && !layout.HasRoomToGrow(c, p)) ||
			(delta < 0 && !layout.HasRoomToShrink(c, p)) {
			break
		}
		res, err := layout.Update(c, layout.Drag{HandleID: handle.ID, Delta: step}, e.update)
		if err != nil {
			return e.ctx, err
		}
		c.Items = res.Items
		c.DragOvershoot = res.DragOvershoot
		e.notify(res.Notices)
	}
	return e.commit(c), nil
}

func (e *Engine) toggleHandle(handleID string) (layout.Context, error) {
	c := e.working()
	_, h, err := layout.FindHandle(c.Items, handleID)
	if err != nil {
		return e.ctx, err
	}
	for _, i := range []int{h - 1, h + 1} {
		if p, ok := layout.PanelAt(c.Items, i); ok && p.Collapsible {
			return e.toggle(p.ID, !p.Collapsed, false)
		}
	}
	return e.ctx, fmt.Errorf("%w: %q", layout.ErrNoCollapsiblePanel, handleID)
}

func (e *Engine) restore(s Snapshot) (layout.Context, error) {
	if s.Version != SnapshotVersion {
		return e.ctx, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	c := e.ctx.Clone()
	c.Items = layout.CloneItems(s.Items)
	c.Orientation = s.Orientation
	if s.GroupID != "" {
		c.GroupID = s.GroupID
	}
	c.DragOvershoot = 0
	return e.commit(e.layOut(c)), nil
}

// prepared returns a pixel copy of the context. Without a container size
// there is nothing to resolve percentages against and the copy is returned
// as is.
func (e *Engine) prepared() layout.Context {
	c := e.ctx.Clone()
	if c.GroupSize() > 0 {
		c.Items = layout.Prepare(c)
	}
	return c
}

// working is prepared plus an initial layout for panels that have no size
// yet.
func (e *Engine) working() layout.Context {
	return e.layOut(e.prepared())
}

func (e *Engine) layOut(c layout.Context) layout.Context {
	if c.GroupSize() <= 0 {
		return c
	}
	c.Items = layout.Prepare(c)
	if !c.IsLaidOut() {
		c.Items = layout.InitialLayout(c)
	}
	return c
}

// commit converts c back to committed form and queues OnLayout. A drag in
// progress keeps its overshoot across registrations.
func (e *Engine) commit(c layout.Context) layout.Context {
	if e.state != Dragging {
		c.DragOvershoot = 0
	}
	if c.GroupSize()-layout.StaticWidth(c) > 0 {
		c.Items = layout.Commit(c)
	}
	if fn := e.hooks.OnLayout; fn != nil {
		snapshot := c.Clone()
		e.later(func() { fn(snapshot) })
	}
	return c
}

func (e *Engine) notify(notices []layout.Notice) {
	for _, n := range notices {
		e.logger.Info("collapse change requested from owner",
			zap.String("panel", n.PanelID),
			zap.Bool("collapsed", n.Collapsed))
		if fn := e.hooks.OnCollapseChange; fn != nil {
			id, collapsed := n.PanelID, n.Collapsed
			e.later(func() { fn(id, collapsed) })
		}
	}
}

func (e *Engine) later(fn func()) { e.calls = append(e.calls, fn) }

func (e *Engine) takeCalls() []func() {
	calls := e.calls
	e.calls = nil
	return calls
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ActiveHandle returns the handle being dragged, or "" outside a drag.
func (e *Engine) ActiveHandle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragHandle
}

// GroupID returns the group's correlation id.
func (e *Engine) GroupID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.GroupID
}

// Context returns a copy of the group context as currently stored: pixel
// values while a drag or animation is live, committed values otherwise.
func (e *Engine) Context() layout.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.Clone()
}

// Template returns the committed track list.
func (e *Engine) Template() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.BuildTemplate(e.committedView())
}

// PixelTemplate returns the track list with every panel resolved to pixels.
func (e *Engine) PixelTemplate() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.BuildTemplate(e.working())
}

// PixelSizes returns the pixel length of every item, in order.
func (e *Engine) PixelSizes() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.PixelSizes(e.working())
}

// PercentageSizes returns every item's fraction of the container, in order.
func (e *Engine) PercentageSizes() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.PercentageSizes(e.working())
}

// Snapshot captures the committed layout.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.committedView()
	return Snapshot{
		Version:     SnapshotVersion,
		GroupID:     c.GroupID,
		Orientation: c.Orientation,
		Items:       c.Items,
	}
}

func (e *Engine) committedView() layout.Context {
	c := e.working()
	if c.GroupSize()-layout.StaticWidth(c) > 0 {
		c.Items = layout.Commit(c)
	}
	return c
}
