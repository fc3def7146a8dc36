package chipper

import (
	"log/slog"
	"os"
	"time"

	"github.com/chipperlog/chipper/format"
	"github.com/chipperlog/chipper/tag"
	"github.com/chipperlog/chipper/target"
	"github.com/chipperlog/chipper/trace"
)

// DeliveryPolicy controls when the default formatter/target pair runs
// relative to matched handlers.
type DeliveryPolicy int

const (
	// DeliverAlways runs the default pair for every emission, so every
	// emission has at least one observable destination even when user
	// handlers also matched. This is the default policy.
	DeliverAlways DeliveryPolicy = iota
	// DeliverUnmatched runs the default pair only when no user handler
	// matched the emission.
	DeliverUnmatched
)

// Handler binds a subscription tag set to a formatter and a target. An
// emission reaches the handler when its tags intersect the subscription.
// Handlers are immutable; their lifecycle is tied to the [Logger] that owns
// them.
type Handler struct {
	formatter *format.Formatter
	target    *target.Target
	name      string
	tags      tag.Set
}

// NewHandler creates a [Handler]. The name is diagnostic only and plays no
// part in matching. A nil formatter gets the default configuration; a nil
// target becomes a no-op sink. A handler with an empty subscription matches
// nothing.
func NewHandler(name string, tags tag.Set, f *format.Formatter, t *target.Target) *Handler {
	if f == nil {
		f = format.New()
	}

	if t == nil {
		t = target.New()
	}

	return &Handler{
		name:      name,
		tags:      tags,
		formatter: f,
		target:    t,
	}
}

// Name returns the handler's diagnostic name.
func (h *Handler) Name() string {
	return h.name
}

// Tags returns the handler's subscription.
func (h *Handler) Tags() tag.Set {
	return h.tags
}

// Logger routes emissions to an ordered collection of handlers plus a
// default formatter/target pair. A Logger is effectively read-only after
// construction and safe for concurrent use; writes are serialized per
// target.
//
// Create instances with [New].
type Logger struct {
	clock    func() time.Time
	source   trace.Source
	diag     *slog.Logger
	defaults *Handler
	handlers []*Handler
	policy   DeliveryPolicy
}

// LoggerOption configures a [Logger].
type LoggerOption func(*Logger)

// New creates a [Logger] with the given options. Without options the Logger
// has no user handlers and a default pair rendering with the default
// formatter to stdout, so every emission is visible.
func New(opts ...LoggerOption) *Logger {
	l := &Logger{
		clock:  time.Now,
		source: trace.Runtime{},
		diag:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.defaults == nil {
		l.defaults = NewHandler(tag.Default, tag.Set{}, nil, target.New(os.Stdout))
	}

	return l
}

// WithHandlers appends user handlers, evaluated in the given order on every
// emission.
func WithHandlers(handlers ...*Handler) LoggerOption {
	return func(l *Logger) {
		l.handlers = append(l.handlers, handlers...)
	}
}

// WithDefault sets the default formatter/target pair. A nil formatter or
// target falls back as in [NewHandler].
func WithDefault(f *format.Formatter, t *target.Target) LoggerOption {
	return func(l *Logger) {
		l.defaults = NewHandler(tag.Default, tag.Set{}, f, t)
	}
}

// WithDeliveryPolicy sets when the default pair runs. See [DeliveryPolicy].
func WithDeliveryPolicy(p DeliveryPolicy) LoggerOption {
	return func(l *Logger) {
		l.policy = p
	}
}

// WithClock overrides the emission timestamp source, primarily for tests.
func WithClock(clock func() time.Time) LoggerOption {
	return func(l *Logger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithTraceSource sets the call-site capture implementation. Use
// [trace.None] to disable capture entirely.
func WithTraceSource(source trace.Source) LoggerOption {
	return func(l *Logger) {
		if source != nil {
			l.source = source
		}
	}
}

// WithDiagnostics sets the logger that receives per-handler failure reports
// (render errors, sink write errors). The default reports to stderr.
func WithDiagnostics(diag *slog.Logger) LoggerOption {
	return func(l *Logger) {
		if diag != nil {
			l.diag = diag
		}
	}
}

// Handlers returns the user handlers in evaluation order. The returned
// slice is a copy.
func (l *Logger) Handlers() []*Handler {
	out := make([]*Handler, len(l.handlers))
	copy(out, l.handlers)

	return out
}

// Emit routes a message to every handler whose subscription intersects the
// given tags, and to the default pair per the delivery policy. With no tags
// the reserved default tag is synthesized.
//
// A malformed tag aborts the emission before any handler runs and is the
// only error Emit returns. Per-handler failures are isolated: a render or
// write failure on one handler is reported to the diagnostics logger and
// does not affect the others.
func (l *Logger) Emit(message string, tags ...string) error {
	set, err := l.normalize(tags)
	if err != nil {
		return err
	}

	l.dispatch(2, nil, message, set)

	return nil
}

// EmitErr is [Logger.Emit] with an associated error. When the emission
// carries the reserved trace tag, the error's text and any recorded stack
// are appended as a block after the message.
func (l *Logger) EmitErr(cause error, message string, tags ...string) error {
	set, err := l.normalize(tags)
	if err != nil {
		return err
	}

	l.dispatch(2, cause, message, set)

	return nil
}

func (l *Logger) normalize(tags []string) (tag.Set, error) {
	if len(tags) == 0 {
		return tag.MustNew(tag.Default), nil
	}

	return tag.New(tags...)
}

// dispatch fans one emission out to matching handlers and the default pair.
// callerSkip locates the original call site for trace capture, counting
// frames above dispatch with dispatch itself at 0.
func (l *Logger) dispatch(callerSkip int, cause error, message string, set tag.Set) {
	now := l.clock()

	var frame trace.Frame

	traceback := ""

	if set.Has(tag.Trace) {
		// Best-effort: a failed capture leaves the frame empty.
		if f, ok := l.source.Capture(callerSkip); ok {
			frame = f
		}

		traceback = trace.FormatError(cause)
	}

	matched := false

	for _, h := range l.handlers {
		if !h.tags.Matches(set) {
			continue
		}

		matched = true

		l.deliver(h, now, set, frame, traceback, message)
	}

	if l.policy == DeliverAlways || !matched {
		l.deliver(l.defaults, now, set, frame, traceback, message)
	}
}

// deliver renders and writes one emission for one handler. Failures are
// reported, never propagated, so one broken handler cannot silence the
// rest.
func (l *Logger) deliver(h *Handler, now time.Time, set tag.Set, frame trace.Frame, traceback, message string) {
	defer func() {
		if r := recover(); r != nil {
			l.diag.Error("handler panicked",
				slog.String("handler", h.name),
				slog.Any("panic", r))
		}
	}()

	prefix, err := h.formatter.Render(format.Input{
		Time:    now,
		Handler: h.name,
		Tags:    set,
		Frame:   frame,
	})
	if err != nil {
		l.diag.Error("render failed",
			slog.String("handler", h.name),
			slog.String("error", err.Error()))

		return
	}

	line := prefix + message
	if traceback != "" {
		line += "\n" + traceback
	}

	if err := h.target.WriteLine(line); err != nil {
		l.diag.Error("target write failed",
			slog.String("handler", h.name),
			slog.String("error", err.Error()))
	}
}
