package engine

import (
	"time"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	"go.uber.org/zap"
)

// Hooks are callbacks into the host. Any of them may be nil.
type Hooks struct {
	// OnCollapseChange asks the owner of a controlled panel to change its
	// collapsed state. The owner answers with an authorized Collapse or
	// Expand once it agrees.
	OnCollapseChange func(panelID string, collapsed bool)
	// OnLayout runs after every committed transition and after the last
	// frame of an animation.
	OnLayout func(ctx layout.Context)
	// OnTransitionError runs when an event fails.
	OnTransitionError func(ev Event, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithScheduler sets the frame scheduler used by animations.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithHooks sets the host callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithGroupID sets the group id. The default is a random UUID.
func WithGroupID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.ctx.GroupID = id
		}
	}
}

// WithOrientation sets the initial orientation.
func WithOrientation(o layout.Orientation) Option {
	return func(e *Engine) { e.ctx.Orientation = o }
}

// WithCollapseThreshold sets the overshoot needed before a drag collapses or
// expands a panel.
func WithCollapseThreshold(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.update.CollapseThreshold = px
		}
	}
}

// WithFastMultiplier sets the factor applied to fast drags.
func WithFastMultiplier(m float64) Option {
	return func(e *Engine) {
		if m > 0 {
			e.update.FastMultiplier = m
		}
	}
}

// WithAnimationsDisabled makes every collapse and expand land in one frame
// regardless of the panels' easing.
func WithAnimationsDisabled() Option {
	return func(e *Engine) { e.noAnimations = true }
}

// realtimeScheduler runs frames on timers. Callbacks run on timer
// goroutines, so it only suits hosts that serialize access themselves.
type realtimeScheduler struct{}

func (realtimeScheduler) Now() time.Time { return time.Now() }

func (realtimeScheduler) NextFrame(fn func()) { time.AfterFunc(FrameInterval, fn) }
