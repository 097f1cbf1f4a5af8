package engine

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/panes/internal/layout"
	jsoniter "github.com/json-iterator/go"
)

// SnapshotVersion is the snapshot format written by this package.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when restoring a snapshot written in a
// format this package does not read.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is a serializable capture of a group: committed items,
// orientation and group id. Transient pixel state and the container size
// are not part of it.
type Snapshot struct {
	Version     int
	GroupID     string
	Orientation layout.Orientation
	Items       []layout.Item
}

type snapshotJSON struct {
	Version     int                `json:"version"`
	GroupID     string             `json:"groupId"`
	Orientation layout.Orientation `json:"orientation"`
	Items       []itemJSON         `json:"items"`
}

type itemJSON struct {
	Type   string         `json:"type"`
	Panel  *layout.Panel  `json:"panel,omitempty"`
	Handle *layout.Handle `json:"handle,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Version:     s.Version,
		GroupID:     s.GroupID,
		Orientation: s.Orientation,
		Items:       make([]itemJSON, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		switch v := it.(type) {
		case layout.Panel:
			out.Items = append(out.Items, itemJSON{Type: "panel", Panel: &v})
		case layout.Handle:
			out.Items = append(out.Items, itemJSON{Type: "handle", Handle: &v})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	items := make([]layout.Item, 0, len(in.Items))
	for i, it := range in.Items {
		switch {
		case it.Type == "panel" && it.Panel != nil:
			items = append(items, *it.Panel)
		case it.Type == "handle" && it.Handle != nil:
			items = append(items, *it.Handle)
		default:
			return fmt.Errorf("snapshot item %d: unknown item type %q", i, it.Type)
		}
	}
	*s = Snapshot{
		Version:     in.Version,
		GroupID:     in.GroupID,
		Orientation: in.Orientation,
		Items:       items,
	}
	return nil
}

// EncodeSnapshot serializes s.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a blob written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	return s, nil
}
