package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/panes/internal/config"
)

// TickerMsg represents a periodic tick event. Animation frames and queued
// work run on it.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows Update to delegate to the input package without creating a
// circular dependency.
type InputHandler func(msg tea.Msg, m *Model) (tea.Model, tea.Cmd)

// inputHandler is set by the main package.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return TickCmd()
}

// TickCmd ticks at the animation frame rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd ticks slowly while nothing animates.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case TickerMsg:
		cmd = m.tick()
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	default:
		if inputHandler != nil {
			_, cmd = inputHandler(msg, m)
		}
	}

	m.grantRequests()
	m.persist()
	m.measure()
	if m.quitting {
		return m, tea.Quit
	}
	return m, cmd
}

// tick runs due animation frames and catches up on work the engine refused
// while it was busy.
func (m *Model) tick() tea.Cmd {
	m.Scheduler.Run()
	m.sendSize()
	if m.Scheduler.Pending() || len(m.requests) > 0 {
		return TickCmd()
	}
	return IdleTickCmd()
}
