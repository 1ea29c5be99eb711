package command

import (
	"strings"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// Command is a parsed, validated line.
type Command interface {
	Keyword() Keyword
}

// ShapeCommand creates a rectangle or an oval.
type ShapeCommand struct {
	Name    string
	Kind    shape.Kind
	X, Y    float64
	D1, D2  float64 // width/height or xRadius/yRadius
	R, G, B float64
}

// Keyword implements Command.
func (c *ShapeCommand) Keyword() Keyword { return KeywordShape }

// MoveCommand moves a shape to a new reference position.
type MoveCommand struct {
	Name string
	X, Y float64
}

// Keyword implements Command.
func (c *MoveCommand) Keyword() Keyword { return KeywordMove }

// ColorCommand recolors a shape.
type ColorCommand struct {
	Name    string
	R, G, B float64
}

// Keyword implements Command.
func (c *ColorCommand) Keyword() Keyword { return KeywordColor }

// ResizeCommand resizes a shape; the meaning of D1/D2 depends on its kind.
type ResizeCommand struct {
	Name   string
	D1, D2 float64
}

// Keyword implements Command.
func (c *ResizeCommand) Keyword() Keyword { return KeywordResize }

// RemoveCommand removes a shape.
type RemoveCommand struct {
	Name string
}

// Keyword implements Command.
func (c *RemoveCommand) Keyword() Keyword { return KeywordRemove }

// SnapshotCommand captures the album. Words holds the description tokens.
type SnapshotCommand struct {
	Words []string
}

// Keyword implements Command.
func (c *SnapshotCommand) Keyword() Keyword { return KeywordSnapshot }

// Description joins every description word with a single space.
func (c *SnapshotCommand) Description() string {
	return strings.Join(c.Words, " ")
}

// LegacyDescription keeps only the first and last words, which is how older
// command files were interpreted ("snapshot a b c" gave "a c"; a single word
// appears twice).
func (c *SnapshotCommand) LegacyDescription() string {
	if len(c.Words) == 0 {
		return ""
	}
	return c.Words[0] + " " + c.Words[len(c.Words)-1]
}
