package presentation

import (
	"time"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// ColorDTO is a shape color for presentation.
type ColorDTO struct {
	R float64 `json:"r" yaml:"r" toml:"r"`
	G float64 `json:"g" yaml:"g" toml:"g"`
	B float64 `json:"b" yaml:"b" toml:"b"`
}

// ShapeDTO represents a shape for presentation. Only the dimension pair that
// matches the kind is populated.
type ShapeDTO struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Kind    string   `json:"kind" yaml:"kind" toml:"kind"`
	X       float64  `json:"x" yaml:"x" toml:"x"`
	Y       float64  `json:"y" yaml:"y" toml:"y"`
	Width   float64  `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height  float64  `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	XRadius float64  `json:"x_radius,omitempty" yaml:"x_radius,omitempty" toml:"x_radius,omitempty"`
	YRadius float64  `json:"y_radius,omitempty" yaml:"y_radius,omitempty" toml:"y_radius,omitempty"`
	Color   ColorDTO `json:"color" yaml:"color" toml:"color"`
}

// SnapshotDTO represents a captured snapshot for presentation.
type SnapshotDTO struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Timestamp   string     `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	CapturedAt  time.Time  `json:"captured_at" yaml:"captured_at" toml:"captured_at"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	Shapes      []ShapeDTO `json:"shapes" yaml:"shapes" toml:"shapes"`
}

// AlbumDTO is the exported state of an album: the live shapes and the
// snapshot history in capture order. It is the root document for every
// structured format (TOML needs a table at the root).
type AlbumDTO struct {
	Shapes    []ShapeDTO    `json:"shapes" yaml:"shapes" toml:"shapes"`
	Snapshots []SnapshotDTO `json:"snapshots" yaml:"snapshots" toml:"snapshots"`
}

// FromShape converts a domain shape to a DTO.
func FromShape(s *shape.Shape) ShapeDTO {
	c := s.Color()
	return ShapeDTO{
		Name:    s.Name(),
		Kind:    s.Kind().String(),
		X:       s.X(),
		Y:       s.Y(),
		Width:   s.Width(),
		Height:  s.Height(),
		XRadius: s.XRadius(),
		YRadius: s.YRadius(),
		Color:   ColorDTO{R: c.R(), G: c.G(), B: c.B()},
	}
}

// FromShapes converts shapes to DTOs, never returning nil.
func FromShapes(shapes []*shape.Shape) []ShapeDTO {
	dtos := make([]ShapeDTO, len(shapes))
	for i, s := range shapes {
		dtos[i] = FromShape(s)
	}
	return dtos
}

// FromSnapshot converts a snapshot to a DTO.
func FromSnapshot(snap *album.Snapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:          snap.ID(),
		Timestamp:   snap.Timestamp(),
		CapturedAt:  snap.CapturedAt(),
		Description: snap.Description(),
		Shapes:      FromShapes(snap.Shapes()),
	}
}

// FromSnapshots converts snapshots to DTOs, never returning nil.
func FromSnapshots(snaps []*album.Snapshot) []SnapshotDTO {
	dtos := make([]SnapshotDTO, len(snaps))
	for i, snap := range snaps {
		dtos[i] = FromSnapshot(snap)
	}
	return dtos
}

// FromAlbum converts the whole album state.
func FromAlbum(a *album.Album) AlbumDTO {
	return AlbumDTO{
		Shapes:    FromShapes(a.Shapes().List()),
		Snapshots: FromSnapshots(a.History().List()),
	}
}
