package shape

import (
	"fmt"
	"strconv"
)

// MaxChannel is the largest value a color channel may take.
const MaxChannel = 255

// Color is an RGB triple with every channel in [0, MaxChannel].
// A Color is owned by exactly one Shape and is recolored in place.
type Color struct {
	r, g, b float64
}

// NewColor returns a color after checking every channel.
func NewColor(r, g, b float64) (Color, error) {
	if err := checkChannels(r, g, b); err != nil {
		return Color{}, err
	}
	return Color{r: r, g: g, b: b}, nil
}

// MustColor is NewColor for literals known to be valid. It panics otherwise.
func MustColor(r, g, b float64) Color {
	c, err := NewColor(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// Set replaces all three channels. On error the color keeps its old value.
func (c *Color) Set(r, g, b float64) error {
	if err := checkChannels(r, g, b); err != nil {
		return err
	}
	c.r, c.g, c.b = r, g, b
	return nil
}

// Clone returns an independent copy.
func (c Color) Clone() Color {
	return Color{r: c.r, g: c.g, b: c.b}
}

// R returns the red channel.
func (c Color) R() float64 { return c.r }

// G returns the green channel.
func (c Color) G() float64 { return c.g }

// B returns the blue channel.
func (c Color) B() float64 { return c.b }

// RGB returns the channels truncated to integers, as renderers expect them.
func (c Color) RGB() (r, g, b int) {
	return int(c.r), int(c.g), int(c.b)
}

// String formats the color as (r,g,b).
func (c Color) String() string {
	return "(" + formatNumber(c.r) + "," + formatNumber(c.g) + "," + formatNumber(c.b) + ")"
}

func checkChannels(r, g, b float64) error {
	for _, ch := range []struct {
		name  string
		value float64
	}{{"red", r}, {"green", g}, {"blue", b}} {
		// Written as a negated in-range test so NaN is rejected.
		if !(ch.value >= 0 && ch.value <= MaxChannel) {
			return fmt.Errorf("%w: %s channel %v outside [0, %d]", ErrRange, ch.name, ch.value, MaxChannel)
		}
	}
	return nil
}

// formatNumber prints integral values without a fractional part.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
