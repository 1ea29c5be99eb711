// Package command implements the line-oriented shape command language.
//
// Each line is one command; tokens are separated by whitespace and keywords
// and shape types match case-insensitively:
//
//	shape    <name> <rectangle|oval> <x> <y> <d1> <d2> <r> <g> <b>
//	move     <name> <x> <y>
//	color    <name> <r> <g> <b>
//	resize   <name> <d1> <d2>
//	remove   <name>
//	snapshot [description words...]
//
// Lines are parsed and applied independently. A bad line is reported and
// skipped; it never stops the rest of the stream.
package command

import "strings"

// Keyword identifies a command.
type Keyword int

const (
	KeywordUnknown Keyword = iota
	KeywordShape
	KeywordMove
	KeywordColor
	KeywordResize
	KeywordRemove
	KeywordSnapshot
)

// String returns the keyword as written in the command language.
func (k Keyword) String() string {
	switch k {
	case KeywordShape:
		return "shape"
	case KeywordMove:
		return "move"
	case KeywordColor:
		return "color"
	case KeywordResize:
		return "resize"
	case KeywordRemove:
		return "remove"
	case KeywordSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// keywords maps lowercase keyword strings to their Keyword.
var keywords = map[string]Keyword{
	"shape":    KeywordShape,
	"move":     KeywordMove,
	"color":    KeywordColor,
	"resize":   KeywordResize,
	"remove":   KeywordRemove,
	"snapshot": KeywordSnapshot,
}

// LookupKeyword returns the Keyword for a token, ignoring case.
func LookupKeyword(tok string) Keyword {
	if kw, ok := keywords[strings.ToLower(tok)]; ok {
		return kw
	}
	return KeywordUnknown
}

// arity is the exact number of tokens after the keyword.
// Snapshot takes any number and is not listed.
var arity = map[Keyword]int{
	KeywordShape:  9,
	KeywordMove:   3,
	KeywordColor:  4,
	KeywordResize: 3,
	KeywordRemove: 1,
}

// isSkippable reports whether a line carries no command.
func isSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
