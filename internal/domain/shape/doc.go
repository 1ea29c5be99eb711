// Package shape defines the geometry values held by an album.
//
// A Shape is a tagged union over two variants, Rectangle and Oval, sharing a
// name, a reference position and an owned Color. The two variants interpret
// their size pair differently:
//
//   - Rectangle: width and height, positioned by its top-left corner.
//   - Oval: x radius and y radius, positioned by the top-left corner of its
//     bounding box (so its center is x+xRadius, y+yRadius).
//
// The asymmetry is deliberate and visible to renderers; Center hides it for
// callers that only need a midpoint.
//
// Every constructor and mutator validates its inputs and leaves the value
// untouched on failure. Failures wrap ErrValidation or ErrRange and can be
// matched with errors.Is.
package shape
