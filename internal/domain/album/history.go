package album

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// History is the append-only, chronologically ordered list of snapshots.
type History struct {
	snapshots []*Snapshot
	ids       []string
	byID      map[string]*Snapshot

	now    func() time.Time
	idGen  IDGenerator
	layout string
	last   time.Time
}

// NewHistory creates an empty history using the wall clock and timestamp ids.
func NewHistory() *History {
	return &History{
		snapshots: make([]*Snapshot, 0),
		ids:       make([]string, 0),
		byID:      make(map[string]*Snapshot),
		now:       time.Now,
		idGen:     TimestampIDs{},
		layout:    DefaultTimestampLayout,
	}
}

// Capture deep-copies the given shapes into a new snapshot and appends it.
//
// Capture instants are strictly increasing within a history: when the clock
// has not advanced since the previous capture, the instant is moved forward
// by one nanosecond so identifiers stay unique and ordered.
func (h *History) Capture(description string, live []*shape.Shape) *Snapshot {
	at := h.now().Round(0)
	if !h.last.IsZero() && !at.After(h.last) {
		at = h.last.Add(time.Nanosecond)
	}
	h.last = at

	snap := newSnapshot(h.idGen.NextID(at), at, at.Format(h.layout), description, live)
	h.snapshots = append(h.snapshots, snap)
	h.ids = append(h.ids, snap.ID())
	h.byID[snap.ID()] = snap
	return snap
}

// List returns the snapshots oldest first.
func (h *History) List() []*Snapshot {
	return h.snapshots
}

// IDs returns the snapshot identifiers in capture order.
func (h *History) IDs() []string {
	return h.ids
}

// Get returns the snapshot with the given identifier.
func (h *History) Get(id string) (*Snapshot, bool) {
	s, ok := h.byID[id]
	return s, ok
}

// Resolve finds a snapshot by identifier or, failing that, by its 1-based
// position in capture order.
func (h *History) Resolve(ref string) (*Snapshot, error) {
	if s, ok := h.byID[ref]; ok {
		return s, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(h.snapshots) {
		return h.snapshots[n-1], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, ref)
}

// Latest returns the most recent snapshot.
func (h *History) Latest() (*Snapshot, bool) {
	if len(h.snapshots) == 0 {
		return nil, false
	}
	return h.snapshots[len(h.snapshots)-1], true
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Clear discards every snapshot. The live registry is not touched.
func (h *History) Clear() {
	h.snapshots = make([]*Snapshot, 0)
	h.ids = make([]string, 0)
	h.byID = make(map[string]*Snapshot)
}
