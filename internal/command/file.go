package command

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/tracing"
)

// RunFile interprets the command file at path into a.
func RunFile(ctx context.Context, path string, a *album.Album, fl *flags.Registry, opts ...Option) (Result, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the user-chosen command file
	if err != nil {
		return Result{}, fmt.Errorf("opening command file: %w", err)
	}
	defer func() { _ = f.Close() }()

	trace.SpanFromContext(ctx).SetAttributes(attribute.String(tracing.AttrSource, path))
	return NewInterpreter(a, fl, opts...).Run(ctx, f)
}
