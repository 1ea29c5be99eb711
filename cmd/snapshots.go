package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
)

var (
	snapshotsIn     string
	snapshotsFormat string
	snapshotsLatest bool
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots --in FILE",
	Short: "List the snapshots a command file captures",
	Long: `List the snapshots a command file captures, oldest first.

The # column is the 1-based index accepted wherever a snapshot is named,
for example by "photoalbum diff".

Examples:
  photoalbum snapshots --in buildings.txt
  photoalbum snapshots -i buildings.txt --format yaml
  photoalbum snapshots -i buildings.txt --latest --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listSnapshots(cmd.Context(), snapshotsIn, snapshotsFormat, snapshotsLatest, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	snapshotsCmd.Flags().StringVarP(&snapshotsIn, "in", "i", "", "command file to interpret (required)")
	snapshotsCmd.Flags().StringVarP(&snapshotsFormat, "format", "f", "table", "output format: table, json, yaml or toml")
	snapshotsCmd.Flags().BoolVar(&snapshotsLatest, "latest", false, "show only the most recent snapshot")
	_ = snapshotsCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(snapshotsCmd)
}

func listSnapshots(ctx context.Context, in, format string, latest bool, stdout, stderr io.Writer) error {
	sess, err := newSession(stderr)
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	a, _, err := sess.load(ctx, in)
	if err != nil {
		return err
	}
	snaps := a.History().List()
	first := 1
	if latest {
		snaps = nil
		if last, ok := a.History().Latest(); ok {
			snaps = []*album.Snapshot{last}
			first = a.History().Len()
		}
	}
	log.Debug(log.CatSnapshot, "Listing snapshots", "in", in, "count", len(snaps), "format", format)

	if format == "table" {
		_, err := fmt.Fprintln(stdout, snapshotTable(stdout, snaps, first))
		return err
	}

	f, err := presentation.ParseFormat(format)
	if err != nil {
		return err
	}
	return presentation.NewFormatter(stdout, f).FormatAlbum(presentation.AlbumDTO{
		Shapes:    []presentation.ShapeDTO{},
		Snapshots: presentation.FromSnapshots(snaps),
	})
}

// snapshotTable numbers rows from first, the 1-based index of snaps[0].
func snapshotTable(w io.Writer, snaps []*album.Snapshot, first int) string {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "TIMESTAMP", "SHAPES", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for i, snap := range snaps {
		t.Row(strconv.Itoa(first+i), snap.ID(), snap.Timestamp(), strconv.Itoa(snap.Len()), snap.Description())
	}
	return t.Render()
}
