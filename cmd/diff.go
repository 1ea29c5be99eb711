package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
)

var diffIn string

var diffCmd = &cobra.Command{
	Use:   "diff --in FILE FROM TO",
	Short: "Show how the shapes changed between two snapshots",
	Long: `Show how the shapes changed between two snapshots of a command file.

FROM and TO are snapshot ids or 1-based indexes as listed by
"photoalbum snapshots". Removed shapes are prefixed with "-", added ones
with "+".

Examples:
  photoalbum diff --in buildings.txt 1 2
  photoalbum diff -i buildings.txt 1 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return diffAlbum(cmd.Context(), diffIn, args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	diffCmd.Flags().StringVarP(&diffIn, "in", "i", "", "command file to interpret (required)")
	_ = diffCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(diffCmd)
}

func diffAlbum(ctx context.Context, in, from, to string, stdout, stderr io.Writer) error {
	sess, err := newSession(stderr)
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	a, _, err := sess.load(ctx, in)
	if err != nil {
		return err
	}

	fromSnap, err := a.History().Resolve(from)
	if err != nil {
		return err
	}
	toSnap, err := a.History().Resolve(to)
	if err != nil {
		return err
	}
	d := presentation.DiffSnapshots(fromSnap, toSnap)
	log.Debug(log.CatSnapshot, "Snapshots diffed", "from", fromSnap.ID(), "to", toSnap.ID(), "changed", d.Changed())
	return presentation.WriteDiff(stdout, d)
}
