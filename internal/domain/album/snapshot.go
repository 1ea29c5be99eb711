package album

import (
	"strings"
	"time"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// Snapshot is a frozen copy of the registry at one instant.
type Snapshot struct {
	id          string
	capturedAt  time.Time
	timestamp   string
	description string
	shapes      []*shape.Shape
}

func newSnapshot(id string, capturedAt time.Time, timestamp, description string, live []*shape.Shape) *Snapshot {
	shapes := make([]*shape.Shape, len(live))
	for i, s := range live {
		shapes[i] = shape.Clone(s)
	}
	return &Snapshot{
		id:          id,
		capturedAt:  capturedAt,
		timestamp:   timestamp,
		description: description,
		shapes:      shapes,
	}
}

// ID returns the sortable identifier.
func (s *Snapshot) ID() string { return s.id }

// CapturedAt returns the capture instant.
func (s *Snapshot) CapturedAt() time.Time { return s.capturedAt }

// Timestamp returns the formatted capture time.
func (s *Snapshot) Timestamp() string { return s.timestamp }

// Description returns the free-text description.
func (s *Snapshot) Description() string { return s.description }

// Shapes returns copies of the captured shapes in registry order.
// Mutating the result never affects the snapshot.
func (s *Snapshot) Shapes() []*shape.Shape {
	out := make([]*shape.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = shape.Clone(sh)
	}
	return out
}

// Len returns the number of captured shapes.
func (s *Snapshot) Len() int { return len(s.shapes) }

// String lists the snapshot header followed by one shape per line.
func (s *Snapshot) String() string {
	var sb strings.Builder
	sb.WriteString("Snapshot ID: " + s.id + "\n")
	sb.WriteString("Timestamp: " + s.timestamp + "\n")
	sb.WriteString("Description: " + s.description + "\n")
	sb.WriteString("Shape Information:\n")
	for _, sh := range s.shapes {
		sb.WriteString(sh.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
