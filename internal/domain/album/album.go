package album

import (
	"time"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// Album is one independent core instance: a live registry plus its history.
type Album struct {
	shapes  *Registry
	history *History
}

// Option configures an Album.
type Option func(*Album)

// WithClock replaces the wall clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(a *Album) {
		if now != nil {
			a.history.now = now
		}
	}
}

// WithIDGenerator replaces the snapshot identifier generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(a *Album) {
		if gen != nil {
			a.history.idGen = gen
		}
	}
}

// WithTimestampLayout sets the time layout of Snapshot.Timestamp.
func WithTimestampLayout(layout string) Option {
	return func(a *Album) {
		if layout != "" {
			a.history.layout = layout
		}
	}
}

// New creates an empty album.
func New(opts ...Option) *Album {
	a := &Album{
		shapes:  NewRegistry(),
		history: NewHistory(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Shapes returns the live registry.
func (a *Album) Shapes() *Registry {
	return a.shapes
}

// History returns the snapshot history.
func (a *Album) History() *History {
	return a.history
}

// Create adds a new shape to the registry.
func (a *Album) Create(name string, kind shape.Kind, x, y, d1, d2 float64, color shape.Color) (*shape.Shape, error) {
	return a.shapes.Create(name, kind, x, y, d1, d2, color)
}

// Capture freezes the current registry into a new snapshot.
func (a *Album) Capture(description string) *Snapshot {
	return a.history.Capture(description, a.shapes.List())
}

// ClearShapes empties the live registry and keeps the history.
func (a *Album) ClearShapes() {
	a.shapes.Clear()
}

// ClearSnapshots empties the history and keeps the live registry.
func (a *Album) ClearSnapshots() {
	a.history.Clear()
}

// Reset empties both the registry and the history.
func (a *Album) Reset() {
	a.shapes.Clear()
	a.history.Clear()
}
