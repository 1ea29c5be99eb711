package shape

import (
	"fmt"
	"strings"
)

// Kind tags the variant of a Shape.
type Kind int

const (
	KindUnknown Kind = iota
	KindRectangle
	KindOval
)

// String returns the lowercase keyword used by the command language.
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindOval:
		return "oval"
	default:
		return "unknown"
	}
}

// ParseKind maps a case-insensitive type name to its Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "rectangle":
		return KindRectangle, true
	case "oval":
		return KindOval, true
	}
	return KindUnknown, false
}

// Shape is a named, colored rectangle or oval.
//
// The size pair (d1, d2) is width/height for a rectangle and
// xRadius/yRadius for an oval. Both must stay strictly positive.
type Shape struct {
	name  string
	kind  Kind
	x, y  float64
	d1    float64
	d2    float64
	color Color
}

// NewRectangle creates a rectangle anchored at its top-left corner.
func NewRectangle(name string, x, y, width, height float64, color Color) (*Shape, error) {
	return newShape(name, KindRectangle, x, y, width, height, color)
}

// NewOval creates an oval anchored at the top-left corner of its bounding box.
func NewOval(name string, x, y, xRadius, yRadius float64, color Color) (*Shape, error) {
	return newShape(name, KindOval, x, y, xRadius, yRadius, color)
}

// New creates a shape of the given kind, dispatching on the tag.
func New(name string, kind Kind, x, y, d1, d2 float64, color Color) (*Shape, error) {
	switch kind {
	case KindRectangle, KindOval:
		return newShape(name, kind, x, y, d1, d2, color)
	default:
		return nil, fmt.Errorf("%w: unknown shape kind %d", ErrValidation, int(kind))
	}
}

func newShape(name string, kind Kind, x, y, d1, d2 float64, color Color) (*Shape, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: shape name must not be empty", ErrValidation)
	}
	if err := checkDimensions(kind, d1, d2); err != nil {
		return nil, err
	}
	if err := checkChannels(color.r, color.g, color.b); err != nil {
		return nil, err
	}
	return &Shape{
		name:  name,
		kind:  kind,
		x:     x,
		y:     y,
		d1:    d1,
		d2:    d2,
		color: color,
	}, nil
}

// Clone returns a structurally identical shape with its own Color.
func Clone(s *Shape) *Shape {
	if s == nil {
		return nil
	}
	return &Shape{
		name:  s.name,
		kind:  s.kind,
		x:     s.x,
		y:     s.y,
		d1:    s.d1,
		d2:    s.d2,
		color: s.color.Clone(),
	}
}

// Name returns the shape's unique name.
func (s *Shape) Name() string { return s.name }

// Kind returns the variant tag.
func (s *Shape) Kind() Kind { return s.kind }

// X returns the reference x coordinate.
func (s *Shape) X() float64 { return s.x }

// Y returns the reference y coordinate.
func (s *Shape) Y() float64 { return s.y }

// Color returns a copy of the owned color.
func (s *Shape) Color() Color { return s.color }

// Dimensions returns the variant-specific size pair.
func (s *Shape) Dimensions() (float64, float64) { return s.d1, s.d2 }

// Width returns a rectangle's width, or 0 for an oval.
func (s *Shape) Width() float64 {
	if s.kind != KindRectangle {
		return 0
	}
	return s.d1
}

// Height returns a rectangle's height, or 0 for an oval.
func (s *Shape) Height() float64 {
	if s.kind != KindRectangle {
		return 0
	}
	return s.d2
}

// XRadius returns an oval's horizontal radius, or 0 for a rectangle.
func (s *Shape) XRadius() float64 {
	if s.kind != KindOval {
		return 0
	}
	return s.d1
}

// YRadius returns an oval's vertical radius, or 0 for a rectangle.
func (s *Shape) YRadius() float64 {
	if s.kind != KindOval {
		return 0
	}
	return s.d2
}

// Center returns the geometric center of the shape.
func (s *Shape) Center() (float64, float64) {
	if s.kind == KindOval {
		return s.x + s.d1, s.y + s.d2
	}
	return s.x + s.d1/2, s.y + s.d2/2
}

// MoveTo sets a new reference position.
func (s *Shape) MoveTo(x, y float64) {
	s.x, s.y = x, y
}

// Resize replaces the size pair. On error the shape is unchanged.
func (s *Shape) Resize(d1, d2 float64) error {
	if err := checkDimensions(s.kind, d1, d2); err != nil {
		return err
	}
	s.d1, s.d2 = d1, d2
	return nil
}

// Recolor changes the owned color in place. On error the color is unchanged.
func (s *Shape) Recolor(r, g, b float64) error {
	return s.color.Set(r, g, b)
}

// String renders the shape in a stable, human-readable form, e.g.
// Rectangle(name=R1,x=10,y=10,w=20,h=20,color=(1,0,0)).
func (s *Shape) String() string {
	switch s.kind {
	case KindRectangle:
		return fmt.Sprintf("Rectangle(name=%s,x=%s,y=%s,w=%s,h=%s,color=%s)",
			s.name, formatNumber(s.x), formatNumber(s.y), formatNumber(s.d1), formatNumber(s.d2), s.color)
	case KindOval:
		return fmt.Sprintf("Oval(name=%s,x=%s,y=%s,rx=%s,ry=%s,color=%s)",
			s.name, formatNumber(s.x), formatNumber(s.y), formatNumber(s.d1), formatNumber(s.d2), s.color)
	default:
		return fmt.Sprintf("Shape(name=%s)", s.name)
	}
}

func checkDimensions(kind Kind, d1, d2 float64) error {
	first, second := "width", "height"
	if kind == KindOval {
		first, second = "x radius", "y radius"
	}
	// NaN fails the > 0 test and is rejected.
	if !(d1 > 0) {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrRange, first, d1)
	}
	if !(d2 > 0) {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrRange, second, d2)
	}
	return nil
}
