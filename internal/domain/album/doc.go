// Package album implements the core of the shapes photo album.
//
// An Album owns two orthogonal pieces of state:
//
//   - Registry: the live, ordered set of named shapes. Shapes are created,
//     moved, resized, recolored and removed through the Registry only.
//   - History: the append-only sequence of Snapshots. A Snapshot is a deep
//     copy of every live shape taken at capture time and is never modified
//     afterwards.
//
// Albums are constructed explicitly with New; there is no package-level
// instance, so independent albums can coexist (one per interpreted command
// file, one per test).
//
// Neither the Registry nor the History is synchronized. Callers that share an
// Album between goroutines must serialize mutations themselves; the server
// package does this by swapping whole albums instead of mutating a shared one.
package album
