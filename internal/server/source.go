// Package server exposes an album over HTTP. The album is rebuilt from its
// command file on reload and swapped in whole, so handlers always read a
// fully interpreted album that nothing mutates.
package server

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/photoalbum/internal/command"
	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/pubsub"
	"github.com/zjrosen/photoalbum/internal/tracing"
)

// Loader builds a fresh album.
type Loader func(ctx context.Context) (*album.Album, command.Result, error)

// FileLoader interprets the command file at path into a new album created
// by newAlbum.
func FileLoader(path string, newAlbum func() *album.Album, fl *flags.Registry, opts ...command.Option) Loader {
	return func(ctx context.Context) (*album.Album, command.Result, error) {
		a := newAlbum()
		res, err := command.RunFile(ctx, path, a, fl, opts...)
		if err != nil {
			return nil, res, err
		}
		return a, res, nil
	}
}

// ReloadStatus describes the outcome of the most recent reload.
type ReloadStatus struct {
	Generation uint64 `json:"generation"`
	Shapes     int    `json:"shapes"`
	Snapshots  int    `json:"snapshots"`
	Failures   int    `json:"failures"`
	Error      string `json:"error,omitempty"`
}

// Source holds the album currently being served.
type Source struct {
	load       Loader
	tracer     trace.Tracer
	current    atomic.Pointer[album.Album]
	events     *pubsub.Broker[ReloadStatus]
	mu         sync.Mutex // serialises reloads
	generation uint64
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithSourceTracer records a span per reload.
func WithSourceTracer(t trace.Tracer) SourceOption {
	return func(s *Source) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewSource creates a source serving an empty album until the first Reload.
func NewSource(load Loader, opts ...SourceOption) *Source {
	s := &Source{
		load:   load,
		tracer: noop.NewTracerProvider().Tracer("noop"),
		events: pubsub.NewRetainingBroker[ReloadStatus](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(album.New())
	return s
}

// Album returns the album currently being served. Callers must not mutate it.
func (s *Source) Album() *album.Album {
	return s.current.Load()
}

// Reload rebuilds the album. On failure the previous album keeps being
// served and the error is both returned and published.
func (s *Source) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, tracing.SpanReload)
	defer span.End()

	s.generation++
	status := ReloadStatus{Generation: s.generation}

	a, res, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		status.Error = err.Error()
		cur := s.current.Load()
		status.Shapes, status.Snapshots = cur.Shapes().Len(), cur.History().Len()
		log.ErrorErr(log.CatServe, "Reload failed, keeping previous album", err, "generation", s.generation)
		s.events.Publish(pubsub.ReloadedEvent, status)
		return err
	}

	s.current.Store(a)
	status.Shapes, status.Snapshots, status.Failures = a.Shapes().Len(), a.History().Len(), len(res.Failures)
	span.SetAttributes(
		attribute.Int(tracing.AttrShapes, status.Shapes),
		attribute.Int(tracing.AttrSnapshots, status.Snapshots),
		attribute.Int(tracing.AttrFailed, status.Failures),
	)
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatServe, "Album reloaded",
		"generation", s.generation, "shapes", status.Shapes, "snapshots", status.Snapshots, "failures", status.Failures)
	s.events.Publish(pubsub.ReloadedEvent, status)
	return nil
}

// Subscribe returns reload notifications. A new subscriber first receives
// the latest status, if any.
func (s *Source) Subscribe(ctx context.Context) <-chan pubsub.Event[ReloadStatus] {
	return s.events.Subscribe(ctx)
}

// Close ends every subscription.
func (s *Source) Close() {
	if dropped := s.events.Dropped(); dropped > 0 {
		log.Warn(log.CatServe, "Reload events dropped for slow subscribers", "dropped", dropped)
	}
	s.events.Close()
}
