package state

import "github.com/Gaurav-Gosain/panes/internal/engine"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSnapshot(s engine.Snapshot) error
	LoadSnapshot(groupID string) (engine.Snapshot, bool, error)
	List() ([]Record, error)
	Delete(groupID string) error
	Flush() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
