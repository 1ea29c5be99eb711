package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// Parse turns one line into a Command. Blank and comment lines are not
// commands and must be filtered by the caller.
func Parse(line string) (Command, error) {
	return parse(line, false)
}

// ParseLenient is Parse but drops tokens past the last argument instead of
// rejecting the line. Too few arguments are still an error.
func ParseLenient(line string) (Command, error) {
	return parse(line, true)
}

func parse(line string, lenient bool) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrParse)
	}

	kw := LookupKeyword(tokens[0])
	if kw == KeywordUnknown {
		return nil, fmt.Errorf("%w: unknown command %q", ErrParse, tokens[0])
	}

	args := tokens[1:]
	if want, ok := arity[kw]; ok {
		if lenient && len(args) > want {
			args = args[:want]
		}
		if len(args) != want {
			return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrParse, kw, want, len(args))
		}
	}

	p := &argParser{kw: kw, args: args}
	switch kw {
	case KeywordShape:
		return p.shape()
	case KeywordMove:
		return p.move()
	case KeywordColor:
		return p.color()
	case KeywordResize:
		return p.resize()
	case KeywordRemove:
		return &RemoveCommand{Name: args[0]}, nil
	case KeywordSnapshot:
		return &SnapshotCommand{Words: append([]string(nil), args...)}, nil
	}
	return nil, fmt.Errorf("%w: unhandled command %s", ErrParse, kw)
}

// argParser reads numeric arguments and remembers the first failure,
// so the per-command methods read straight through.
type argParser struct {
	kw   Keyword
	args []string
	err  error
}

func (p *argParser) number(i int, field string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.args[i], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = fmt.Errorf("%w: %s: invalid %s %q", ErrParse, p.kw, field, p.args[i])
		return 0
	}
	return v
}

func (p *argParser) shape() (Command, error) {
	kind, ok := shape.ParseKind(p.args[1])
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrParse, p.args[1])
	}

	first, second := "width", "height"
	if kind == shape.KindOval {
		first, second = "x radius", "y radius"
	}

	cmd := &ShapeCommand{
		Name: p.args[0],
		Kind: kind,
		X:    p.number(2, "x"),
		Y:    p.number(3, "y"),
		D1:   p.number(4, first),
		D2:   p.number(5, second),
		R:    p.number(6, "red"),
		G:    p.number(7, "green"),
		B:    p.number(8, "blue"),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cmd, nil
}

func (p *argParser) move() (Command, error) {
	cmd := &MoveCommand{
		Name: p.args[0],
		X:    p.number(1, "x"),
		Y:    p.number(2, "y"),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cmd, nil
}

func (p *argParser) color() (Command, error) {
	cmd := &ColorCommand{
		Name: p.args[0],
		R:    p.number(1, "red"),
		G:    p.number(2, "green"),
		B:    p.number(3, "blue"),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cmd, nil
}

func (p *argParser) resize() (Command, error) {
	cmd := &ResizeCommand{
		Name: p.args[0],
		D1:   p.number(1, "first dimension"),
		D2:   p.number(2, "second dimension"),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cmd, nil
}
