package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/photoalbum/internal/domain/album"
)

// DiffOp classifies a diff line.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffRemoved
	DiffAdded
)

// DiffLine is one line of a snapshot diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// SnapshotDiff compares the shape listings of two snapshots.
type SnapshotDiff struct {
	From, To *album.Snapshot
	Lines    []DiffLine
}

// Changed reports whether the two listings differ.
func (d SnapshotDiff) Changed() bool {
	for _, l := range d.Lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

// DiffSnapshots computes a line diff of the shapes held by from and to.
func DiffSnapshots(from, to *album.Snapshot) SnapshotDiff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(shapeListing(from), shapeListing(to))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := SnapshotDiff{From: from, To: to}
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = DiffRemoved
		case diffmatchpatch.DiffInsert:
			op = DiffAdded
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			text = strings.TrimSuffix(text, "\n")
			if text == "" {
				continue
			}
			out.Lines = append(out.Lines, DiffLine{Op: op, Text: text})
		}
	}
	return out
}

// WriteDiff writes d with "-", "+" and " " line prefixes.
func WriteDiff(w io.Writer, d SnapshotDiff) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s %s\n", d.From.ID(), d.From.Description())
	fmt.Fprintf(&sb, "+++ %s %s\n", d.To.ID(), d.To.Description())
	for _, l := range d.Lines {
		switch l.Op {
		case DiffRemoved:
			sb.WriteString("- ")
		case DiffAdded:
			sb.WriteString("+ ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func shapeListing(snap *album.Snapshot) string {
	var sb strings.Builder
	for _, s := range snap.Shapes() {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
