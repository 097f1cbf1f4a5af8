package layout

import (
	"errors"
	"fmt"
)

// Errors returned by layout operations. They signal programming errors in
// the host (stale ids, malformed configuration) and are never retried.
var (
	// ErrInvalidUnit is returned when a size string is neither px nor %.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnknownPanelID is returned when an event names a panel that is not
	// registered.
	ErrUnknownPanelID = errors.New("unknown panel id")

	// ErrUnknownHandleID is returned when an event names a handle that is not
	// registered.
	ErrUnknownHandleID = errors.New("unknown handle id")

	// ErrNoAdjacentHandle is returned when a collapse or resize command
	// targets a panel with no handle next to it.
	ErrNoAdjacentHandle = errors.New("no adjacent handle for panel")

	// ErrNoCollapsiblePanel is returned when a handle-driven collapse toggle
	// finds no collapsible neighbor.
	ErrNoCollapsiblePanel = errors.New("no collapsible panel for handle")

	// ErrHandleWithoutPanel is returned when a handle has no panel on the side
	// that would grow during a drag.
	ErrHandleWithoutPanel = errors.New("handle has no adjacent panel")
)

func errorf(sentinel error, id string) error {
	return fmt.Errorf("%w: %q", sentinel, id)
}
