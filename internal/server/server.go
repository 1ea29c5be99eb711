package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zjrosen/photoalbum/internal/cachemanager"
	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
)

const shutdownTimeout = 5 * time.Second

// Server serves the album held by a Source.
type Server struct {
	source *Source
	svgs   *presentation.SVGCache
	canvas presentation.Canvas
	router *chi.Mux
}

// New creates a server. svgs may be built over a nil cache to disable
// memoisation.
func New(source *Source, svgs *presentation.SVGCache, canvas presentation.Canvas) *Server {
	s := &Server{
		source: source,
		svgs:   svgs,
		canvas: canvas,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	s.RegisterHTTP(r)
	s.router = r
	return s
}

// RegisterHTTP registers the album endpoints on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/", s.handleDocument)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/shapes", s.handleShapes)
		r.Get("/snapshots", s.handleSnapshots)
		r.Get("/snapshots/{id}", s.handleSnapshot)
		r.Get("/snapshots/{id}/svg", s.handleSnapshotSVG)
		r.Get("/events", s.handleEvents)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Cached images are dropped whenever the source reloads.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.invalidateOnReload(ctx)

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.CatServe, "Serving album", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) invalidateOnReload(ctx context.Context) {
	for range s.source.Subscribe(ctx) {
		s.svgs.Invalidate(ctx)
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	a := s.source.Album()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := presentation.RenderDocument(w, a.History().List(), s.canvas); err != nil {
		log.ErrorErr(log.CatServe, "Failed to render album", err)
	}
}

type health struct {
	Status string              `json:"status"`
	Cache  *cachemanager.Stats `json:"cache,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := health{Status: "ok"}
	if stats, ok := s.svgs.Stats(); ok {
		h.Cache = &stats
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleShapes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presentation.FromShapes(s.source.Album().Shapes().List()))
}

func (s *Server) handleSnapshots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presentation.FromSnapshots(s.source.Album().History().List()))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, presentation.FromSnapshot(snap))
}

func (s *Server) handleSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.resolve(w, r)
	if !ok {
		return
	}
	svg, err := s.svgs.Render(r.Context(), snap)
	if err != nil {
		log.ErrorErr(log.CatServe, "Failed to render snapshot", err, "id", snap.ID())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}

// handleEvents streams reload notifications as server-sent events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range s.source.Subscribe(r.Context()) {
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", ev.Type, ev.Seq, data); err != nil {
			return
		}
		flusher.Flush()
	}
}

// resolve finds the {id} snapshot by identifier or 1-based index, writing
// a 404 when there is none.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*album.Snapshot, bool) {
	ref := chi.URLParam(r, "id")
	snap, err := s.source.Album().History().Resolve(ref)
	if err != nil {
		http.Error(w, "Snapshot not found", http.StatusNotFound)
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorErr(log.CatServe, "Failed to encode response", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug(log.CatServe, "Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
