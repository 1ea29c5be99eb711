package album

import (
	"time"

	"github.com/google/uuid"
)

// TimestampIDLayout is the fixed-width UTC layout of timestamp identifiers.
// Every field is zero padded, so string order equals chronological order.
const TimestampIDLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultTimestampLayout is the human-readable capture time (dd-MM-yyyy HH:mm:ss).
const DefaultTimestampLayout = "02-01-2006 15:04:05"

// IDGenerator derives a snapshot identifier from its capture instant.
// Identifiers produced for increasing instants must compare in increasing
// string order.
type IDGenerator interface {
	NextID(capturedAt time.Time) string
}

// TimestampIDs formats the capture instant in UTC with nanosecond precision.
type TimestampIDs struct{}

// NextID implements IDGenerator.
func (TimestampIDs) NextID(capturedAt time.Time) string {
	return capturedAt.UTC().Format(TimestampIDLayout)
}

// UUIDv7IDs issues time-ordered UUIDv7 identifiers. The embedded timestamp
// comes from the wall clock at generation, which is the capture instant.
type UUIDv7IDs struct{}

// NextID implements IDGenerator.
func (UUIDv7IDs) NextID(time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// IDGeneratorFor maps a configured format name to a generator.
func IDGeneratorFor(format string) (IDGenerator, bool) {
	switch format {
	case "", "timestamp":
		return TimestampIDs{}, true
	case "uuidv7":
		return UUIDv7IDs{}, true
	}
	return nil, false
}
