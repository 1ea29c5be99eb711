package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zjrosen/photoalbum/internal/command"
	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/tracing"
	"github.com/zjrosen/photoalbum/internal/watcher"
)

// session carries what every command needs to interpret command files
// under the current configuration.
type session struct {
	tracing *tracing.Provider
	flags   *flags.Registry
	stderr  io.Writer
}

func newSession(stderr io.Writer) (*session, error) {
	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return &session{
		tracing: tp,
		flags:   flags.New(cfg.Flags),
		stderr:  stderr,
	}, nil
}

func (s *session) Close(ctx context.Context) {
	if err := s.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTracing, "Failed to shut down tracing", err)
	}
}

func (s *session) newAlbum() *album.Album {
	return album.New(cfg.AlbumOptions()...)
}

// options reports each rejected line as path:line: error on stderr.
func (s *session) options(path string) []command.Option {
	return []command.Option{
		command.WithTracer(s.tracing.Tracer()),
		command.WithReporter(func(f command.Failure) {
			fmt.Fprintf(s.stderr, "%s:%d: %v\n", path, f.Line, f.Err)
		}),
	}
}

func (s *session) load(ctx context.Context, path string) (*album.Album, command.Result, error) {
	a := s.newAlbum()
	res, err := command.RunFile(ctx, path, a, s.flags, s.options(path)...)
	if err != nil {
		return nil, res, err
	}
	return a, res, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// watchFile calls onChange after every settled change to path until ctx is
// done.
func watchFile(ctx context.Context, path string, onChange func()) error {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.Watch.Debounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			onChange()
		}
	}
}
