package album

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

func red() shape.Color { return shape.MustColor(255, 0, 0) }

func names(shapes []*shape.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.Name()
	}
	return out
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg)
	require.Empty(t, reg.List())
	require.Equal(t, 0, reg.Len())
}

func TestRegistry_CreatePreservesInsertionOrder(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Create("B", shape.KindRectangle, 0, 0, 1, 1, red())
	require.NoError(t, err)
	_, err = reg.Create("A", shape.KindOval, 0, 0, 1, 1, red())
	require.NoError(t, err)
	_, err = reg.Create("C", shape.KindRectangle, 0, 0, 1, 1, red())
	require.NoError(t, err)

	require.Equal(t, []string{"B", "A", "C"}, names(reg.List()))
}

func TestRegistry_CreateDuplicateName(t *testing.T) {
	reg := NewRegistry()
	orig, err := reg.Create("A", shape.KindRectangle, 1, 2, 3, 4, red())
	require.NoError(t, err)

	_, err = reg.Create("A", shape.KindOval, 9, 9, 9, 9, shape.MustColor(0, 0, 255))

	require.ErrorIs(t, err, ErrDuplicateName)
	require.Equal(t, 1, reg.Len())
	got, ok := reg.Get("A")
	require.True(t, ok)
	require.Same(t, orig, got)
	require.Equal(t, shape.KindRectangle, got.Kind())
	require.Equal(t, 3.0, got.Width())
}

func TestRegistry_CreateInvalidShapeIsNotAdded(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Create("A", shape.KindRectangle, 0, 0, 0, 1, red())
	require.ErrorIs(t, err, shape.ErrRange)

	_, err = reg.Create("", shape.KindRectangle, 0, 0, 1, 1, red())
	require.ErrorIs(t, err, shape.ErrValidation)

	require.Equal(t, 0, reg.Len())
	_, ok := reg.Get("A")
	require.False(t, ok)
}

func TestRegistry_Move(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("A", shape.KindRectangle, 0, 0, 1, 1, red())
	require.NoError(t, err)

	require.NoError(t, reg.Move("A", 5, 6))

	s, _ := reg.Get("A")
	require.Equal(t, 5.0, s.X())
	require.Equal(t, 6.0, s.Y())
}

func TestRegistry_MutatorsOnMissingName(t *testing.T) {
	reg := NewRegistry()

	require.ErrorIs(t, reg.Move("ghost", 1, 1), ErrNotFound)
	require.ErrorIs(t, reg.Resize("ghost", 1, 1), ErrNotFound)
	require.ErrorIs(t, reg.Recolor("ghost", 1, 1, 1), ErrNotFound)
}

func TestRegistry_RecolorChecksRangeBeforeLookup(t *testing.T) {
	reg := NewRegistry()

	err := reg.Recolor("ghost", 300, 0, 0)

	require.ErrorIs(t, err, shape.ErrRange)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Recolor(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("A", shape.KindOval, 0, 0, 1, 1, red())
	require.NoError(t, err)

	require.NoError(t, reg.Recolor("A", 1, 2, 3))
	s, _ := reg.Get("A")
	require.Equal(t, shape.MustColor(1, 2, 3), s.Color())

	require.ErrorIs(t, reg.Recolor("A", 1, -2, 3), shape.ErrRange)
	require.Equal(t, shape.MustColor(1, 2, 3), s.Color())
}

func TestRegistry_ResizeDispatchesOnKind(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("R1", shape.KindRectangle, 0, 0, 20, 20, red())
	require.NoError(t, err)
	_, err = reg.Create("O1", shape.KindOval, 0, 0, 20, 20, red())
	require.NoError(t, err)

	require.NoError(t, reg.Resize("R1", 30, 40))
	require.NoError(t, reg.Resize("O1", 5, 6))

	r, _ := reg.Get("R1")
	o, _ := reg.Get("O1")
	require.Equal(t, 30.0, r.Width())
	require.Equal(t, 40.0, r.Height())
	require.Equal(t, 5.0, o.XRadius())
	require.Equal(t, 6.0, o.YRadius())
}

func TestRegistry_ResizeNegativeWidthKeepsPriorValue(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("R1", shape.KindRectangle, 0, 0, 20, 25, red())
	require.NoError(t, err)

	err = reg.Resize("R1", -1, 10)

	require.ErrorIs(t, err, shape.ErrRange)
	r, _ := reg.Get("R1")
	require.Equal(t, 20.0, r.Width())
	require.Equal(t, 25.0, r.Height())
}

func TestRegistry_RemoveFreesName(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"A", "B", "C"} {
		_, err := reg.Create(n, shape.KindRectangle, 0, 0, 1, 1, red())
		require.NoError(t, err)
	}

	require.True(t, reg.Remove("B"))
	require.Equal(t, []string{"A", "C"}, names(reg.List()))

	// Index stays consistent for shapes after the removed one.
	c, ok := reg.Get("C")
	require.True(t, ok)
	require.Equal(t, "C", c.Name())

	_, err := reg.Create("B", shape.KindOval, 0, 0, 1, 1, red())
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "B"}, names(reg.List()))
}

func TestRegistry_RemoveMissingIsNoop(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("A", shape.KindRectangle, 1, 2, 3, 4, red())
	require.NoError(t, err)
	before := names(reg.List())

	require.False(t, reg.Remove("never-inserted"))

	require.Equal(t, 1, reg.Len())
	require.Equal(t, before, names(reg.List()))
}

func TestRegistry_Clear(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("A", shape.KindRectangle, 0, 0, 1, 1, red())
	require.NoError(t, err)

	reg.Clear()

	require.Empty(t, reg.List())
	_, ok := reg.Get("A")
	require.False(t, ok)
	_, err = reg.Create("A", shape.KindRectangle, 0, 0, 1, 1, red())
	require.NoError(t, err)
}
