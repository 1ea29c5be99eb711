package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
	"github.com/zjrosen/photoalbum/internal/tracing"
)

// View names accepted by --view.
const (
	viewText = "text"
	viewWeb  = "web"
)

type runOptions struct {
	in     string
	out    string
	view   string
	watch  bool
	strict bool
	canvas presentation.Canvas
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run --in FILE [xmax ymax]",
	Short: "Interpret a command file and render its snapshots",
	Long: `Interpret a command file and render the snapshots it captures.

Each line of the file is one command. A line that fails to parse or apply is
reported on stderr and skipped; the rest of the file is still interpreted.

Views:
  text   styled listing of every snapshot (default)
  web    HTML page with one SVG drawing per snapshot (requires --out)
  json, yaml, toml
         the live shapes and every snapshot as a structured document

xmax and ymax size the web drawings and override view.width/view.height.

Examples:
  photoalbum run --in buildings.txt
  photoalbum run -i buildings.txt -v web -o album.html 800 800
  photoalbum run -i buildings.txt -v json | jq '.snapshots[].id'
  photoalbum run -i buildings.txt -v web -o album.html --watch`,
	Args: canvasArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		canvas, err := parseCanvas(args, cfg.Canvas())
		if err != nil {
			return err
		}
		runOpts.canvas = canvas
		return runAlbum(cmd.Context(), runOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOpts.in, "in", "i", "", "command file to interpret (required)")
	runCmd.Flags().StringVarP(&runOpts.out, "out", "o", "", "write the view to this file instead of stdout")
	runCmd.Flags().StringVarP(&runOpts.view, "view", "v", viewText, "view: text, web, json, yaml or toml")
	runCmd.Flags().BoolVarP(&runOpts.watch, "watch", "w", false, "re-render whenever the command file changes")
	runCmd.Flags().BoolVar(&runOpts.strict, "strict", false, "exit non-zero when any command line is rejected")
	_ = runCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(runCmd)
}

// canvasArgs accepts either no positional arguments or xmax and ymax.
func canvasArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("expected xmax and ymax together, got %d argument(s)", len(args))
	}
	return nil
}

func parseCanvas(args []string, fallback presentation.Canvas) (presentation.Canvas, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	width, err := strconv.Atoi(args[0])
	if err != nil {
		return presentation.Canvas{}, fmt.Errorf("invalid xmax %q", args[0])
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		return presentation.Canvas{}, fmt.Errorf("invalid ymax %q", args[1])
	}
	canvas := presentation.Canvas{Width: width, Height: height}
	return canvas, canvas.Validate()
}

func validateView(view, out string) error {
	switch view {
	case viewText, string(presentation.FormatJSON), string(presentation.FormatYAML), string(presentation.FormatTOML):
		return nil
	case viewWeb:
		if out == "" {
			return fmt.Errorf("the web view requires --out")
		}
		return nil
	default:
		return fmt.Errorf("unknown view %q (expected text, web, json, yaml or toml)", view)
	}
}

func runAlbum(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	if err := validateView(opts.view, opts.out); err != nil {
		return err
	}

	sess, err := newSession(stderr)
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	rejected, err := renderOnce(ctx, sess, opts, stdout)
	if err != nil {
		return err
	}

	if opts.watch {
		ctx, cancel := signalContext(ctx)
		defer cancel()
		fmt.Fprintf(stderr, "Watching %s for changes (Ctrl+C to stop)\n", opts.in)
		return watchFile(ctx, opts.in, func() {
			if _, err := renderOnce(ctx, sess, opts, stdout); err != nil {
				fmt.Fprintf(stderr, "photoalbum: %v\n", err)
			}
		})
	}

	if opts.strict && rejected > 0 {
		return fmt.Errorf("%d command line(s) rejected", rejected)
	}
	return nil
}

// renderOnce interprets the command file and writes the view. It returns
// the number of rejected lines.
func renderOnce(ctx context.Context, sess *session, opts runOptions, stdout io.Writer) (int, error) {
	a, res, err := sess.load(ctx, opts.in)
	if err != nil {
		return 0, err
	}

	_, span := sess.tracing.Tracer().Start(ctx, tracing.SpanPrefixRender+opts.view,
		trace.WithAttributes(
			attribute.String(tracing.AttrView, opts.view),
			attribute.Int(tracing.AttrSnapshots, a.History().Len()),
		))
	defer span.End()

	write := func(w io.Writer) error { return renderView(a, opts.view, opts.canvas, w) }
	if opts.out == "" {
		err = write(stdout)
	} else {
		err = writeFile(opts.out, write)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return len(res.Failures), err
	}

	log.Info(log.CatRender, "Album rendered",
		"view", opts.view, "out", opts.out, "snapshots", a.History().Len(), "rejected", len(res.Failures))
	return len(res.Failures), nil
}

func renderView(a *album.Album, view string, canvas presentation.Canvas, w io.Writer) error {
	switch view {
	case viewText:
		return presentation.NewTextView(w).Render(a.History().List())
	case viewWeb:
		return presentation.RenderDocument(w, a.History().List(), canvas)
	default:
		format, err := presentation.ParseFormat(view)
		if err != nil {
			return err
		}
		return presentation.NewFormatter(w, format).FormatAlbum(presentation.FromAlbum(a))
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is the user-chosen output file
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
