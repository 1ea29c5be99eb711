package command

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/tracing"
)

// maxLineSize bounds a single command line.
const maxLineSize = 1 << 20

// Result summarises one Run.
type Result struct {
	Lines    int // lines read, including skipped ones
	Applied  int
	Skipped  int // blank and comment lines
	Failures []Failure
}

// Reporter receives every rejected line as it happens.
type Reporter func(Failure)

// Interpreter reads command lines and applies them to an album one at a time.
type Interpreter struct {
	exec   *Executor
	tracer trace.Tracer
	report Reporter
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithTracer records one span per executed line.
func WithTracer(t trace.Tracer) Option {
	return func(in *Interpreter) {
		if t != nil {
			in.tracer = t
		}
	}
}

// WithReporter sets the callback for rejected lines.
func WithReporter(r Reporter) Option {
	return func(in *Interpreter) {
		in.report = r
	}
}

// NewInterpreter creates an interpreter bound to one album.
func NewInterpreter(a *album.Album, fl *flags.Registry, opts ...Option) *Interpreter {
	in := &Interpreter{
		exec:   NewExecutor(a, fl),
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Exec parses and applies a single line. Blank and comment lines are
// accepted and do nothing.
func (in *Interpreter) Exec(ctx context.Context, line string) error {
	_, err := in.execLine(ctx, 0, line)
	return err
}

// Run applies every line of r in order. A rejected line, including one
// longer than maxLineSize, is reported and processing continues; only a read
// error from r stops the run early, and the partial Result is returned with it.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) (Result, error) {
	ctx, span := in.tracer.Start(ctx, tracing.SpanRun)
	defer span.End()

	var res Result
	br := bufio.NewReader(r)

	for {
		line, oversized, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, fmt.Errorf("reading commands: %w", err)
		}
		res.Lines++

		var applied bool
		if oversized {
			err = fmt.Errorf("%w: line exceeds %d bytes", ErrParse, maxLineSize)
		} else {
			applied, err = in.execLine(ctx, res.Lines, line)
		}

		switch {
		case err != nil:
			f := Failure{Line: res.Lines, Text: line, Err: err}
			res.Failures = append(res.Failures, f)
			log.ErrorErr(log.CatCommand, "Command rejected", err, "line", res.Lines, "text", line)
			if in.report != nil {
				in.report(f)
			}
		case applied:
			res.Applied++
		default:
			res.Skipped++
		}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrLines, res.Lines),
		attribute.Int(tracing.AttrApplied, res.Applied),
		attribute.Int(tracing.AttrFailed, len(res.Failures)),
	)

	log.Info(log.CatCommand, "Commands processed",
		"lines", res.Lines, "applied", res.Applied, "skipped", res.Skipped, "failed", len(res.Failures))
	return res, nil
}

// readLine returns the next line without its line terminator. A line longer
// than maxLineSize is consumed up to its newline and returned empty with
// oversized set. io.EOF is returned only when no bytes remain.
func readLine(br *bufio.Reader) (line string, oversized bool, err error) {
	var buf []byte
	read := 0
	for {
		chunk, rerr := br.ReadSlice('\n')
		read += len(chunk)
		if !oversized {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > maxLineSize {
				oversized, buf = true, nil
			}
		}
		switch {
		case errors.Is(rerr, bufio.ErrBufferFull):
			continue
		case errors.Is(rerr, io.EOF) && read > 0:
			return trimEOL(buf), oversized, nil
		case rerr != nil:
			return "", false, rerr
		}
		return trimEOL(buf), oversized, nil
	}
}

func trimEOL(b []byte) string {
	b = bytes.TrimSuffix(b, []byte("\n"))
	b = bytes.TrimSuffix(b, []byte("\r"))
	return string(b)
}

// execLine reports whether the line carried a command that was applied.
func (in *Interpreter) execLine(ctx context.Context, lineNo int, line string) (bool, error) {
	if isSkippable(line) {
		return false, nil
	}

	_, span := in.tracer.Start(ctx, tracing.SpanPrefixCommand+"line")
	defer span.End()
	span.SetAttributes(attribute.Int(tracing.AttrLineNumber, lineNo))

	parseLine := Parse
	if in.exec.flags.Enabled(flags.FlagLenientArity) {
		parseLine = ParseLenient
	}
	cmd, err := parseLine(line)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetName(tracing.SpanPrefixCommand + cmd.Keyword().String())
	span.SetAttributes(attribute.String(tracing.AttrKeyword, cmd.Keyword().String()))

	if err := in.exec.Execute(cmd); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetStatus(codes.Ok, "")
	return true, nil
}
