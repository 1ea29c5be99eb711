package presentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

var fixtureTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	firstID  = "2024-03-01T12:00:00.000000000Z"
	secondID = "2024-03-01T12:00:00.000000001Z"
)

// newFixtureAlbum builds an album with a red rectangle and a green oval,
// captured once as "first" and again as "moved" after R1 moves to (50, 60).
func newFixtureAlbum(t *testing.T) *album.Album {
	t.Helper()
	a := album.New(album.WithClock(func() time.Time { return fixtureTime }))

	_, err := a.Create("R1", shape.KindRectangle, 10, 10, 20, 20, shape.MustColor(255, 0, 0))
	require.NoError(t, err)
	_, err = a.Create("O1", shape.KindOval, 10, 10, 20, 20, shape.MustColor(0, 255, 0))
	require.NoError(t, err)
	a.Capture("first")

	require.NoError(t, a.Shapes().Move("R1", 50, 60))
	a.Capture("moved")
	return a
}
