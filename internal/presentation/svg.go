package presentation

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

// DefaultCanvasSize is the width and height used when none is configured.
const DefaultCanvasSize = 1000

// Canvas is the drawing area of one snapshot.
type Canvas struct {
	Width  int
	Height int
}

// DefaultCanvas returns a DefaultCanvasSize square.
func DefaultCanvas() Canvas {
	return Canvas{Width: DefaultCanvasSize, Height: DefaultCanvasSize}
}

// Validate reports whether both sides are positive.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

const svgTemplate = `{{define "shapes"}}{{range .}}{{if .Rect}}<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" style="fill:rgb({{.R}},{{.G}},{{.B}})" />{{else}}<ellipse cx="{{.X}}" cy="{{.Y}}" rx="{{.W}}" ry="{{.H}}" style="fill:rgb({{.R}},{{.G}},{{.B}})" />{{end}}
{{end}}{{end}}` +
	`{{define "svg"}}<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}">
{{template "shapes" .Shapes}}</svg>
{{end}}` +
	`{{define "document"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Shapes Photo Album</title>
</head>
<body>
{{range .Snapshots}}<div class="snapshot" id="{{.ID}}" style="background-color:powderblue;">
<h2>{{.ID}}</h2>
<p>Description: {{.Description}}</p>
<svg width="{{.Width}}" height="{{.Height}}">
{{template "shapes" .Shapes}}</svg>
</div>
{{end}}</body>
</html>
{{end}}`

var templates = template.Must(template.New("photoalbum").Parse(svgTemplate))

// descriptionPolicy keeps harmless inline markup in descriptions and strips
// everything else.
var descriptionPolicy = bluemonday.UGCPolicy()

type svgShape struct {
	Rect       bool
	X, Y, W, H string
	R, G, B    int
}

type svgData struct {
	ID          string
	Description template.HTML
	Width       int
	Height      int
	Shapes      []svgShape
}

type documentData struct {
	Snapshots []svgData
}

// RenderSVG writes a standalone SVG image of one snapshot.
func RenderSVG(w io.Writer, snap *album.Snapshot, canvas Canvas) error {
	return templates.ExecuteTemplate(w, "svg", newSVGData(snap, canvas))
}

// RenderDocument writes an HTML page with one section per snapshot, in
// capture order.
func RenderDocument(w io.Writer, snaps []*album.Snapshot, canvas Canvas) error {
	data := documentData{Snapshots: make([]svgData, len(snaps))}
	for i, snap := range snaps {
		data.Snapshots[i] = newSVGData(snap, canvas)
	}
	return templates.ExecuteTemplate(w, "document", data)
}

func newSVGData(snap *album.Snapshot, canvas Canvas) svgData {
	shapes := snap.Shapes()
	data := svgData{
		ID:          snap.ID(),
		Description: template.HTML(descriptionPolicy.Sanitize(snap.Description())),
		Width:       canvas.Width,
		Height:      canvas.Height,
		Shapes:      make([]svgShape, 0, len(shapes)),
	}
	for _, s := range shapes {
		data.Shapes = append(data.Shapes, newSVGShape(s))
	}
	return data
}

// newSVGShape maps a rectangle onto its corner and size, and an oval onto
// the center of its bounding box and its radii.
func newSVGShape(s *shape.Shape) svgShape {
	r, g, b := s.Color().RGB()
	out := svgShape{R: r, G: g, B: b}
	switch s.Kind() {
	case shape.KindRectangle:
		out.Rect = true
		out.X, out.Y = svgNumber(s.X()), svgNumber(s.Y())
		out.W, out.H = svgNumber(s.Width()), svgNumber(s.Height())
	default:
		cx, cy := s.Center()
		out.X, out.Y = svgNumber(cx), svgNumber(cy)
		out.W, out.H = svgNumber(s.XRadius()), svgNumber(s.YRadius())
	}
	return out
}

func svgNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
