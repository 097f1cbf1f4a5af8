// Package panes provides a resizable panel layout engine that can be
// embedded in other programs, plus a ready made Bubble Tea model that hosts
// one panel group in the terminal.
//
// # Engine
//
// A group is a sequence of panels separated by handles. Register them, give
// the group a size and drive it with drag events:
//
//	e := panes.NewEngine(panes.WithGroupID("editor"))
//	_ = e.Send(panes.RegisterPanel{Panel: panes.NewPanel("tree")})
//	_ = e.Send(panes.RegisterHandle{Handle: panes.NewHandle("tree:code", 1)})
//	_ = e.Send(panes.RegisterPanel{Panel: panes.NewPanel("code")})
//	_ = e.Send(panes.SetSize{Size: panes.Rect{Width: 120, Height: 40}})
//
//	_ = e.Send(panes.DragStart{HandleID: "tree:code"})
//	_ = e.Send(panes.Drag{HandleID: "tree:code", Delta: 10})
//	_ = e.Send(panes.DragEnd{HandleID: "tree:code"})
//
//	fmt.Println(e.PixelTemplate())
//
// Collapse animations run on a Scheduler. The default one uses wall clock
// timers; hosts with their own frame loop use a TickScheduler and call Run
// once per frame.
//
// # Terminal host
//
//	model, err := panes.New(panes.WithTheme("dracula"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, panes.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
package panes

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/app"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/input"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/state"
	"github.com/Gaurav-Gosain/panes/internal/theme"
	"go.uber.org/zap"
)

// Engine is the state machine that owns one panel group.
type Engine = engine.Engine

// EngineOption configures an Engine.
type EngineOption = engine.Option

// Hooks are callbacks an Engine invokes after a transition.
type Hooks = engine.Hooks

// State is the interaction state of an Engine.
type State = engine.State

// Engine states
const (
	Idle             = engine.Idle
	Dragging         = engine.Dragging
	TogglingCollapse = engine.TogglingCollapse
)

// Events accepted by Engine.Send.
type (
	Event                 = engine.Event
	RegisterPanel         = engine.RegisterPanel
	RegisterDynamicPanel  = engine.RegisterDynamicPanel
	UnregisterPanel       = engine.UnregisterPanel
	RegisterHandle        = engine.RegisterHandle
	UnregisterHandle      = engine.UnregisterHandle
	DragStart             = engine.DragStart
	Drag                  = engine.Drag
	DragEnd               = engine.DragEnd
	SetSize               = engine.SetSize
	SetMeasuredChildSizes = engine.SetMeasuredChildSizes
	SetOrientation        = engine.SetOrientation
	Collapse              = engine.Collapse
	Expand                = engine.Expand
	SetPixelSize          = engine.SetPixelSize
	ToggleHandleCollapse  = engine.ToggleHandleCollapse
	RestoreSnapshot       = engine.RestoreSnapshot
)

// Layout types.
type (
	Item        = layout.Item
	Panel       = layout.Panel
	Handle      = layout.Handle
	Unit        = layout.Unit
	Rect        = layout.Rect
	Context     = layout.Context
	Orientation = layout.Orientation
	Animation   = layout.Animation
	Notice      = layout.Notice
)

// Orientations
const (
	Horizontal = layout.Horizontal
	Vertical   = layout.Vertical
)

// Snapshot is a serializable capture of a group.
type Snapshot = engine.Snapshot

// Schedulers
type (
	Scheduler       = engine.Scheduler
	ManualScheduler = engine.ManualScheduler
	TickScheduler   = engine.TickScheduler
)

// Errors returned by Engine.Send and the unit parsers.
var (
	ErrInvalidUnit        = layout.ErrInvalidUnit
	ErrUnknownPanelID     = layout.ErrUnknownPanelID
	ErrUnknownHandleID    = layout.ErrUnknownHandleID
	ErrNoAdjacentHandle   = layout.ErrNoAdjacentHandle
	ErrNoCollapsiblePanel = layout.ErrNoCollapsiblePanel
	ErrUnknownEasing      = engine.ErrUnknownEasing
	ErrSnapshotVersion    = engine.ErrSnapshotVersion
)

// Engine construction and helpers.
var (
	NewEngine              = engine.New
	NewManualScheduler     = engine.NewManualScheduler
	NewTickScheduler       = engine.NewTickScheduler
	WithLogger             = engine.WithLogger
	WithScheduler          = engine.WithScheduler
	WithHooks              = engine.WithHooks
	WithGroupID            = engine.WithGroupID
	WithOrientation        = engine.WithOrientation
	WithCollapseThreshold  = engine.WithCollapseThreshold
	WithFastMultiplier     = engine.WithFastMultiplier
	WithAnimationsDisabled = engine.WithAnimationsDisabled

	NewPanel         = layout.NewPanel
	NewHandle        = layout.NewHandle
	Px               = layout.Px
	Pct              = layout.Pct
	ParseUnit        = layout.ParseUnit
	ParseMax         = layout.ParseMax
	ParseOrientation = layout.ParseOrientation
	EasingNames      = engine.EasingNames

	EncodeSnapshot = engine.EncodeSnapshot
	DecodeSnapshot = engine.DecodeSnapshot
)

// Model is the Bubble Tea model hosting one panel group.
type Model = app.Model

// Store persists snapshots between runs.
type Store = state.Interface

// Options configures the terminal host.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// Animations enables collapse and expand animations.
	Animations bool

	// ASCIIOnly draws handles with ASCII characters.
	ASCIIOnly bool

	// GroupID keys the group in the store. Default is "main".
	GroupID string

	// Store restores and saves the layout. Nil disables persistence.
	Store Store

	// Logger receives engine and host logs. Nil discards them.
	Logger *zap.Logger

	// UserConfig describes the panels. If nil, the user's config file is
	// loaded, falling back to the defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for the terminal host.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithAnimations enables or disables collapse animations.
func WithAnimations(enabled bool) Option {
	return func(o *Options) {
		o.Animations = enabled
	}
}

// WithASCIIOnly enables ASCII-only handles.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithGroup sets the group id the layout is stored under.
func WithGroup(id string) Option {
	return func(o *Options) {
		o.GroupID = id
	}
}

// WithStore persists the layout in s.
func WithStore(s Store) Option {
	return func(o *Options) {
		o.Store = s
	}
}

// WithHostLogger sets the logger of the terminal host.
func WithHostLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// OpenStore opens the SQLite snapshot store at path.
func OpenStore(path string) (Store, error) {
	m, err := state.Open(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Animations: true}
}

// New creates the terminal host with the given options.
func New(opts ...Option) (*Model, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	if options.ASCIIOnly {
		config.UseASCIIOnly = true
	}
	config.AnimationsEnabled = options.Animations
	if options.Theme != "" {
		_ = theme.Initialize(options.Theme)
	}

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	return app.New(app.Options{
		Config:  userConfig,
		Store:   options.Store,
		Logger:  options.Logger,
		GroupID: options.GroupID,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the host:
//
//	p := tea.NewProgram(model, panes.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a handle is being dragged.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*Model)
	if !ok || m.MouseDragging {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
