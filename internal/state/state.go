// Package state persists group snapshots in SQLite so a layout survives
// restarts.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/panes/internal/engine"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

const defaultSaveDebounce = 500 * time.Millisecond

// ErrNotFound is returned when no snapshot is stored for a group.
var ErrNotFound = errors.New("snapshot not found")

// Record is one stored snapshot.
type Record struct {
	GroupID string
	Version int
	Data    []byte
	SavedAt time.Time
}

// Manager stores one snapshot per group. SaveSnapshot is debounced so a
// drag that commits many times writes once.
type Manager struct {
	db       *sql.DB
	logger   *zap.Logger
	debounce time.Duration
	now      func() time.Time

	// writeMu serializes database writes with Close.
	writeMu sync.Mutex

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string][]byte
	closed    bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger logs failed background saves.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDebounce sets how long saves are delayed.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) { m.debounce = d }
}

// WithClock sets the clock used for saved_at.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string, opts ...Option) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	m := &Manager{
		db:       db,
		logger:   zap.NewNop(),
		debounce: defaultSaveDebounce,
		now:      time.Now,
		pending:  make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	m.closed = true
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.takePending()
	m.saveMu.Unlock()

	err := m.write(pending)
	return errors.Join(err, m.db.Close())
}

// SaveSnapshot schedules s to be written after the debounce delay. Later
// saves for the same group replace earlier pending ones.
func (m *Manager) SaveSnapshot(s engine.Snapshot) error {
	data, err := engine.EncodeSnapshot(s)
	if err != nil {
		return err
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if m.closed {
		return errors.New("state manager is closed")
	}

	m.pending[s.GroupID] = data
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.debounce, func() {
		if err := m.Flush(); err != nil {
			m.logger.Warn("failed to save snapshot", zap.Error(err))
		}
	})
	return nil
}

// Flush writes pending saves now.
func (m *Manager) Flush() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	pending := m.takePending()
	m.saveMu.Unlock()
	return m.write(pending)
}

func (m *Manager) takePending() map[string][]byte {
	pending := m.pending
	m.pending = make(map[string][]byte)
	return pending
}

func (m *Manager) write(pending map[string][]byte) error {
	var errs []error
	for groupID, data := range pending {
		_, err := m.db.Exec(`
			INSERT INTO snapshots (group_id, version, data, saved_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(group_id) DO UPDATE SET
				version = excluded.version,
				data = excluded.data,
				saved_at = excluded.saved_at
		`, groupID, engine.SnapshotVersion, data, m.now().UnixMilli())
		if err != nil {
			errs = append(errs, fmt.Errorf("save %q: %w", groupID, err))
			continue
		}
		m.logger.Debug("snapshot saved", zap.String("group", groupID), zap.Int("bytes", len(data)))
	}
	return errors.Join(errs...)
}

// LoadSnapshot returns the stored snapshot for groupID. The bool is false
// when nothing has been saved yet.
func (m *Manager) LoadSnapshot(groupID string) (engine.Snapshot, bool, error) {
	rec, err := m.Get(groupID)
	if errors.Is(err, ErrNotFound) {
		return engine.Snapshot{}, false, nil
	}
	if err != nil {
		return engine.Snapshot{}, false, err
	}
	s, err := engine.DecodeSnapshot(rec.Data)
	if err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("group %q: %w", groupID, err)
	}
	return s, true, nil
}

// Get returns the raw record for groupID.
func (m *Manager) Get(groupID string) (Record, error) {
	row := m.db.QueryRow(`
		SELECT group_id, version, data, saved_at FROM snapshots WHERE group_id = ?
	`, groupID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, groupID)
	}
	return rec, err
}

// List returns every stored snapshot, most recently saved first.
func (m *Manager) List() ([]Record, error) {
	rows, err := m.db.Query(`
		SELECT group_id, version, data, saved_at FROM snapshots ORDER BY saved_at DESC, group_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the snapshot for groupID, including an unsaved pending one.
func (m *Manager) Delete(groupID string) error {
	m.saveMu.Lock()
	_, hadPending := m.pending[groupID]
	delete(m.pending, groupID)
	m.saveMu.Unlock()

	res, err := m.db.Exec(`DELETE FROM snapshots WHERE group_id = ?`, groupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 && !hadPending {
		return fmt.Errorf("%w: %q", ErrNotFound, groupID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var savedAt int64
	if err := s.Scan(&rec.GroupID, &rec.Version, &rec.Data, &savedAt); err != nil {
		return Record{}, err
	}
	rec.SavedAt = time.UnixMilli(savedAt)
	return rec, nil
}
