package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/domain/shape"
)

var (
	headingColor = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	labelColor   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"}
)

const swatch = "■"

// TextView renders snapshots as a styled terminal listing. Styling degrades
// to plain text when the writer is not a terminal.
type TextView struct {
	writer  io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	base    lipgloss.Style
}

// NewTextView creates a text view bound to w.
func NewTextView(w io.Writer) *TextView {
	r := lipgloss.NewRenderer(w)
	return &TextView{
		writer:  w,
		heading: r.NewStyle().Bold(true).Foreground(headingColor),
		label:   r.NewStyle().Foreground(labelColor),
		muted:   r.NewStyle().Foreground(mutedColor).Italic(true),
		base:    r.NewStyle(),
	}
}

// Render writes every snapshot in order.
func (v *TextView) Render(snaps []*album.Snapshot) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(v.writer, v.muted.Render("No snapshots."))
		return err
	}

	var sb strings.Builder
	for i, snap := range snaps {
		if i > 0 {
			sb.WriteString("\n")
		}
		v.writeSnapshot(&sb, i+1, snap)
	}
	_, err := io.WriteString(v.writer, sb.String())
	return err
}

func (v *TextView) writeSnapshot(sb *strings.Builder, index int, snap *album.Snapshot) {
	sb.WriteString(v.heading.Render(fmt.Sprintf("#%d %s", index, snap.ID())))
	sb.WriteString("\n")
	v.writeField(sb, "Timestamp", snap.Timestamp())
	v.writeField(sb, "Description", snap.Description())

	shapes := snap.Shapes()
	if len(shapes) == 0 {
		sb.WriteString("  ")
		sb.WriteString(v.muted.Render("(no shapes)"))
		sb.WriteString("\n")
		return
	}
	for _, s := range shapes {
		sb.WriteString("  ")
		sb.WriteString(v.base.Foreground(lipgloss.Color(hexColor(s.Color()))).Render(swatch))
		sb.WriteString(" ")
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
}

func (v *TextView) writeField(sb *strings.Builder, name, value string) {
	sb.WriteString("  ")
	sb.WriteString(v.label.Render(name + ":"))
	sb.WriteString(" ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

// hexColor maps the channels, truncated to integers, onto a #rrggbb string.
func hexColor(c shape.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
