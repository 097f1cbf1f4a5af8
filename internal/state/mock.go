package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/engine"
)

// Mock is an in-memory test double for Manager. Saves land immediately.
type Mock struct {
	mu      sync.Mutex
	records map[string]Record
	saves   int
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{records: make(map[string]Record)}
}

func (m *Mock) SaveSnapshot(s engine.Snapshot) error {
	data, err := engine.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.records[s.GroupID] = Record{GroupID: s.GroupID, Version: s.Version, Data: data, SavedAt: time.Now()}
	return nil
}

func (m *Mock) LoadSnapshot(groupID string) (engine.Snapshot, bool, error) {
	m.mu.Lock()
	rec, ok := m.records[groupID]
	m.mu.Unlock()
	if !ok {
		return engine.Snapshot{}, false, nil
	}
	s, err := engine.DecodeSnapshot(rec.Data)
	return s, err == nil, err
}

func (m *Mock) List() ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out, nil
}

func (m *Mock) Delete(groupID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[groupID]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, groupID)
	}
	delete(m.records, groupID)
	return nil
}

func (m *Mock) Flush() error { return nil }

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Saves returns how many snapshots were saved.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// IsClosed reports whether Close was called.
func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Interface = (*Mock)(nil)
