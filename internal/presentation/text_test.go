package presentation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

func TestTextView_Render(t *testing.T) {
	a := newFixtureAlbum(t)

	var buf bytes.Buffer
	require.NoError(t, NewTextView(&buf).Render(a.History().List()))

	out := buf.String()
	require.Contains(t, out, "#1 "+firstID)
	require.Contains(t, out, "#2 "+secondID)
	require.Contains(t, out, "Description: first")
	require.Contains(t, out, "Description: moved")
	require.Contains(t, out, "Rectangle(name=R1,x=10,y=10,w=20,h=20,color=(255,0,0))")
	require.Contains(t, out, "Rectangle(name=R1,x=50,y=60,w=20,h=20,color=(255,0,0))")
	require.Contains(t, out, "Oval(name=O1,x=10,y=10,rx=20,ry=20,color=(0,255,0))")
	require.Less(t, bytes.Index(buf.Bytes(), []byte(firstID)), bytes.Index(buf.Bytes(), []byte(secondID)))
}

func TestTextView_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextView(&buf).Render(nil))
	require.Contains(t, buf.String(), "No snapshots.")
}

func TestHexColor(t *testing.T) {
	require.Equal(t, "#ff0080", hexColor(shape.MustColor(255, 0, 128.9)))
	require.Equal(t, "#000000", hexColor(shape.MustColor(0, 0, 0)))
}
