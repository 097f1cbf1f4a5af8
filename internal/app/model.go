// Package app provides the interactive host for a panel group: a Bubble Tea
// model that owns one engine, drives its animation frames, renders it and
// persists its layout.
package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/render"
	"github.com/Gaurav-Gosain/panes/internal/state"
	"go.uber.org/zap"
)

// DefaultGroupID keys the interactive group in the state store.
const DefaultGroupID = "main"

// Options configures New.
type Options struct {
	Config *config.UserConfig
	// Store persists snapshots. Nil disables persistence.
	Store   state.Interface
	Logger  *zap.Logger
	GroupID string
	// Clock drives animation timing. Defaults to time.Now.
	Clock func() time.Time
}

// Model is the Bubble Tea model for one panel group.
type Model struct {
	Engine    *engine.Engine
	Scheduler *engine.TickScheduler
	Store     state.Interface
	Keys      *config.KeybindRegistry
	Logger    *zap.Logger

	Width    int
	Height   int
	Geometry render.Geometry

	FocusedHandle string
	// MouseDragging is set between a press on a handle and its release.
	MouseDragging bool
	// DragAnchor is the last pointer position along the axis during a drag.
	DragAnchor      int
	LastClickAt     time.Time
	LastClickHandle string

	ShowHelp  bool
	ShowSizes bool

	status      string
	statusErr   bool
	statusUntil time.Time

	// owned holds the controlled panels this host answers for.
	owned map[string]bool
	// requests are collapse changes granted but not yet applied because the
	// engine was busy.
	requests []layout.Notice

	layoutChanged bool
	quitting      bool
	clock         func() time.Time
}

// New builds the model, registers the configured panels and restores the
// last saved layout when it still matches them.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	groupID := opts.GroupID
	if groupID == "" {
		groupID = DefaultGroupID
	}

	orientation, err := layout.ParseOrientation(cfg.Layout.Orientation)
	if err != nil {
		return nil, err
	}
	items, err := cfg.Layout.Items()
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	m := &Model{
		Store:     opts.Store,
		Keys:      config.NewKeybindRegistry(cfg),
		Logger:    logger,
		ShowSizes: config.ShowSizes,
		owned:     make(map[string]bool),
		clock:     clock,
	}
	m.Scheduler = engine.NewTickScheduler(clock)

	engineOpts := []engine.Option{
		engine.WithLogger(logger.Named("engine")),
		engine.WithScheduler(m.Scheduler),
		engine.WithGroupID(groupID),
		engine.WithOrientation(orientation),
		engine.WithCollapseThreshold(cfg.Layout.CollapseThreshold),
		engine.WithFastMultiplier(cfg.Layout.FastMultiplier),
		engine.WithHooks(engine.Hooks{
			OnCollapseChange:  m.onCollapseChange,
			OnLayout:          func(layout.Context) { m.layoutChanged = true },
			OnTransitionError: m.onTransitionError,
		}),
	}
	if !config.AnimationsEnabled {
		engineOpts = append(engineOpts, engine.WithAnimationsDisabled())
	}
	m.Engine = engine.New(engineOpts...)

	for _, it := range items {
		var ev engine.Event
		switch v := it.(type) {
		case layout.Panel:
			if v.CollapseIsControlled {
				m.owned[v.ID] = true
			}
			ev = engine.RegisterPanel{Panel: v}
		case layout.Handle:
			ev = engine.RegisterHandle{Handle: v}
		}
		if err := m.Engine.Send(ev); err != nil {
			return nil, err
		}
	}
	if handles := layout.HandleIDs(items); len(handles) > 0 {
		m.FocusedHandle = handles[0]
	}

	if err := m.restore(items); err != nil {
		logger.Warn("saved layout discarded", zap.String("group", groupID), zap.Error(err))
	}
	m.layoutChanged = false
	return m, nil
}

// restore applies the stored snapshot if it describes the same panels.
func (m *Model) restore(items []layout.Item) error {
	if m.Store == nil {
		return nil
	}
	snap, ok, err := m.Store.LoadSnapshot(m.Engine.GroupID())
	if err != nil || !ok {
		return err
	}
	if !slices.Equal(layout.PanelIDs(snap.Items), layout.PanelIDs(items)) ||
		!slices.Equal(layout.HandleIDs(snap.Items), layout.HandleIDs(items)) {
		return errors.New("panels changed since the layout was saved")
	}
	if err := m.Engine.Send(engine.RestoreSnapshot{Snapshot: snap}); err != nil {
		return err
	}
	m.Logger.Info("layout restored", zap.String("group", snap.GroupID))
	return nil
}

// onCollapseChange grants requests for panels this host owns. The answer
// waits for the engine to be idle since authorized commands are only
// accepted there.
func (m *Model) onCollapseChange(panelID string, collapsed bool) {
	if !m.owned[panelID] {
		m.Logger.Debug("collapse request for unowned panel", zap.String("panel", panelID))
		return
	}
	m.requests = slices.DeleteFunc(m.requests, func(n layout.Notice) bool { return n.PanelID == panelID })
	m.requests = append(m.requests, layout.Notice{PanelID: panelID, Collapsed: collapsed})
}

func (m *Model) onTransitionError(ev engine.Event, err error) {
	m.Logger.Debug("transition error", zap.String("event", fmt.Sprintf("%T", ev)), zap.Error(err))
	m.SetStatus(err.Error(), true)
}

// grantRequests answers queued collapse requests once the engine is idle.
func (m *Model) grantRequests() {
	for len(m.requests) > 0 && m.Engine.State() == engine.Idle {
		n := m.requests[0]
		m.requests = m.requests[1:]
		var ev engine.Event = engine.Expand{PanelID: n.PanelID, Authorized: true}
		if n.Collapsed {
			ev = engine.Collapse{PanelID: n.PanelID, Authorized: true}
		}
		if err := m.Engine.Send(ev); err != nil {
			m.Logger.Warn("collapse request failed", zap.String("panel", n.PanelID), zap.Error(err))
		}
	}
}

// PendingRequests returns the granted collapse changes not yet applied.
func (m *Model) PendingRequests() []layout.Notice { return slices.Clone(m.requests) }

// SetStatus shows a transient message in the status line.
func (m *Model) SetStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
	m.statusUntil = m.clock().Add(config.StatusMessageDuration)
}

// Status returns the visible status message, if any.
func (m *Model) Status() (string, bool) {
	if m.status == "" || m.clock().After(m.statusUntil) {
		return "", false
	}
	return m.status, m.statusErr
}

// Quitting reports whether Quit has been called.
func (m *Model) Quitting() bool { return m.quitting }

// Resize gives the group the whole window but the status line.
func (m *Model) Resize(width, height int) {
	m.Width, m.Height = width, height
	m.sendSize()
}

// sendSize reports the container size. The engine only takes it when idle,
// so a resize during a drag or animation is resent by the next tick.
func (m *Model) sendSize() {
	if m.Width <= 0 || m.Height <= 0 || m.Engine.State() != engine.Idle {
		return
	}
	want := layout.Rect{Width: float64(m.Width), Height: float64(max(m.Height-1, 0))}
	if m.Engine.Context().Size == want {
		return
	}
	if err := m.Engine.Send(engine.SetSize{Size: want}); err != nil {
		m.Logger.Warn("resize failed", zap.Error(err))
	}
}

// measure refreshes the cell geometry used for drawing and hit-testing.
func (m *Model) measure() {
	c := m.Engine.Context()
	m.Geometry = render.Measure(c.Items, m.Engine.PixelSizes(), c.Orientation,
		int(c.Size.Width), int(c.Size.Height))
}

// persist hands the committed layout to the store after it changed.
func (m *Model) persist() {
	if !m.layoutChanged || m.Engine.State() != engine.Idle {
		return
	}
	m.layoutChanged = false
	if m.Store == nil {
		return
	}
	if err := m.Store.SaveSnapshot(m.Engine.Snapshot()); err != nil {
		m.Logger.Warn("save failed", zap.Error(err))
	}
}

// Save writes the layout now.
func (m *Model) Save() error {
	if m.Store == nil {
		return errors.New("persistence is disabled")
	}
	if err := m.Store.SaveSnapshot(m.Engine.Snapshot()); err != nil {
		return err
	}
	return m.Store.Flush()
}

// Quit flushes pending saves and marks the model as finished.
func (m *Model) Quit() {
	m.quitting = true
	m.layoutChanged = true
	m.persist()
	if m.Store != nil {
		if err := m.Store.Flush(); err != nil {
			m.Logger.Warn("flush on quit failed", zap.Error(err))
		}
	}
}
