package album

import (
	"fmt"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// Registry holds the live shapes in insertion order, keyed by unique name.
type Registry struct {
	shapes []*shape.Shape
	index  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		shapes: make([]*shape.Shape, 0),
		index:  make(map[string]int),
	}
}

// Create builds a shape of the given kind and appends it.
// It fails with ErrDuplicateName when the name is already live, or with the
// shape package's validation errors when the parameters are invalid.
func (r *Registry) Create(name string, kind shape.Kind, x, y, d1, d2 float64, color shape.Color) (*shape.Shape, error) {
	if _, exists := r.index[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	s, err := shape.New(name, kind, x, y, d1, d2, color)
	if err != nil {
		return nil, err
	}

	r.index[name] = len(r.shapes)
	r.shapes = append(r.shapes, s)
	return s, nil
}

// Get returns the live shape with the given name.
func (r *Registry) Get(name string) (*shape.Shape, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.shapes[i], true
}

// Move sets a new reference position for the named shape.
func (r *Registry) Move(name string, x, y float64) error {
	s, err := r.lookup(name)
	if err != nil {
		return err
	}
	s.MoveTo(x, y)
	return nil
}

// Resize dispatches on the stored kind: width/height for rectangles,
// xRadius/yRadius for ovals. A failed resize leaves the shape unchanged.
func (r *Registry) Resize(name string, d1, d2 float64) error {
	s, err := r.lookup(name)
	if err != nil {
		return err
	}
	return s.Resize(d1, d2)
}

// Recolor changes the named shape's color in place.
// Channel ranges are checked before the name is looked up.
func (r *Registry) Recolor(name string, red, green, blue float64) error {
	if _, err := shape.NewColor(red, green, blue); err != nil {
		return err
	}
	s, err := r.lookup(name)
	if err != nil {
		return err
	}
	return s.Recolor(red, green, blue)
}

// Remove deletes the named shape and frees its name.
// Removing an absent name is a no-op and reports false.
func (r *Registry) Remove(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}

	r.shapes = append(r.shapes[:i], r.shapes[i+1:]...)
	delete(r.index, name)
	for j := i; j < len(r.shapes); j++ {
		r.index[r.shapes[j].Name()] = j
	}
	return true
}

// Clear removes every live shape.
func (r *Registry) Clear() {
	r.shapes = make([]*shape.Shape, 0)
	r.index = make(map[string]int)
}

// List returns the live shapes in insertion order.
// The slice is a read view: callers must mutate shapes through the Registry.
func (r *Registry) List() []*shape.Shape {
	return r.shapes
}

// Len returns the number of live shapes.
func (r *Registry) Len() int {
	return len(r.shapes)
}

func (r *Registry) lookup(name string) (*shape.Shape, error) {
	s, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}
