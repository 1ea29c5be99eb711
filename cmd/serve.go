package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/photoalbum/internal/cachemanager"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
	"github.com/zjrosen/photoalbum/internal/server"
)

var (
	serveIn    string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve --in FILE",
	Short: "Serve the album of a command file over HTTP",
	Long: `Serve the album of a command file over HTTP.

Endpoints:
  GET /                           HTML page with every snapshot
  GET /api/shapes                 live shapes as JSON
  GET /api/snapshots              every snapshot as JSON
  GET /api/snapshots/{id}         one snapshot by id or 1-based index
  GET /api/snapshots/{id}/svg     one snapshot as an SVG image
  GET /api/events                 reload notifications (server-sent events)

With --watch the command file is re-interpreted whenever it changes; the new
album replaces the old one only once it is fully built.

Examples:
  photoalbum serve --in buildings.txt
  photoalbum serve -i buildings.txt --addr :9000 --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serveAlbum(cmd.Context(), serveIn, cfg.Serve.Addr, serveWatch, cmd.ErrOrStderr())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveIn, "in", "i", "", "command file to interpret (required)")
	serveCmd.Flags().String("addr", "", "address to listen on (overrides serve.addr)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload when the command file changes")
	_ = serveCmd.MarkFlagRequired("in")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func serveAlbum(ctx context.Context, in, addr string, watch bool, stderr io.Writer) error {
	sess, err := newSession(stderr)
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	source := server.NewSource(
		server.FileLoader(in, sess.newAlbum, sess.flags, sess.options(in)...),
		server.WithSourceTracer(sess.tracing.Tracer()),
	)
	defer source.Close()

	if err := source.Reload(ctx); err != nil {
		return err
	}

	var cache cachemanager.CacheManager[string, string]
	if cfg.Cache.Enabled {
		cache = cachemanager.NewInMemoryCacheManager[string, string]("snapshot-svg", cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	svgs := presentation.NewSVGCache(cache, cfg.Canvas(), cfg.Cache.TTL)
	srv := server.New(source, svgs, cfg.Canvas())

	ctx, cancel := signalContext(ctx)
	defer cancel()

	if watch {
		go func() {
			err := watchFile(ctx, in, func() {
				if err := source.Reload(ctx); err != nil {
					fmt.Fprintf(stderr, "photoalbum: reload failed: %v\n", err)
				}
			})
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Watcher stopped", err, "path", in)
				fmt.Fprintf(stderr, "photoalbum: watching %s: %v\n", in, err)
			}
		}()
	}

	fmt.Fprintf(stderr, "Serving %s on http://%s (Ctrl+C to stop)\n", in, addr)
	return srv.ListenAndServe(ctx, addr)
}
