// Package debugbar captures runtime errors and explicit value dumps for
// the duration of one web request and renders them as an on-page overlay:
// a persistent counter indicator that toggles per-category panels.
//
// A Bar is constructed once at startup; each request gets its own Capture
// via Begin, carried on the request context. The host registers the
// capture's error handler with its error-reporting mechanism (or uses the
// bundled net/http Middleware), emits HeadHTML from its page head and
// FooterHTML from its page footer, and discards the capture when the
// request ends. Nothing is shared between requests except the Bar's log
// sink.
package debugbar

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/okiba/debugbar/internal/archive"
	"github.com/okiba/debugbar/internal/capture"
	"github.com/okiba/debugbar/internal/config"
	"github.com/okiba/debugbar/internal/dump"
	"github.com/okiba/debugbar/internal/intercept"
	"github.com/okiba/debugbar/internal/logformat"
	"github.com/okiba/debugbar/internal/panel"
)

// LogFunc is the logging sink capability: one formatted log block per
// intercepted event.
type LogFunc = intercept.LogFunc

// Severity codes re-exported for hosts registering the error handler.
type Severity = logformat.Severity

const (
	SevError            = logformat.SevError
	SevWarning          = logformat.SevWarning
	SevParse            = logformat.SevParse
	SevNotice           = logformat.SevNotice
	SevCoreError        = logformat.SevCoreError
	SevCoreWarning      = logformat.SevCoreWarning
	SevCompileError     = logformat.SevCompileError
	SevCompileWarning   = logformat.SevCompileWarning
	SevUserError        = logformat.SevUserError
	SevUserWarning      = logformat.SevUserWarning
	SevUserNotice       = logformat.SevUserNotice
	SevStrict           = logformat.SevStrict
	SevRecoverableError = logformat.SevRecoverableError
	SevDeprecated       = logformat.SevDeprecated
	SevUserDeprecated   = logformat.SevUserDeprecated
)

// Bar holds the process-wide pieces: configuration, the log sink, and the
// optional sqlite archive. Per-request state lives on Capture, never here.
type Bar struct {
	cfg      config.Config
	logFunc  LogFunc
	observer intercept.Observer
	now      func() time.Time

	archiveStore *archive.Store
	logFile      *os.File
}

// Option configures a Bar.
type Option func(*Bar)

// WithLogFunc replaces the configured log sink with fn.
func WithLogFunc(fn LogFunc) Option {
	return func(b *Bar) {
		if fn != nil {
			b.logFunc = fn
		}
	}
}

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(b *Bar) {
		if now != nil {
			b.now = now
		}
	}
}

// New builds a Bar from cfg. The configured log sink is opened here; call
// Close when the process shuts down.
func New(cfg config.Config, opts ...Option) (*Bar, error) {
	b := &Bar{
		cfg: cfg,
		now: time.Now,
	}

	switch cfg.Log.Sink {
	case config.SinkNone:
		b.logFunc = func(string) {}
	case config.SinkFile:
		f, err := os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		b.logFile = f
		b.logFunc = func(line string) {
			_, _ = f.WriteString(line)
		}
	case config.SinkSQLite:
		store, err := archive.Open(cfg.Archive.DBPath, cfg.Archive.RetentionDays)
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		b.archiveStore = store
		b.observer = store.Append
		b.logFunc = func(string) {}
	default:
		b.logFunc = intercept.DefaultLogFunc
	}

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Close releases the Bar's log destination.
func (b *Bar) Close() error {
	if b.archiveStore != nil {
		return b.archiveStore.Close()
	}
	if b.logFile != nil {
		return b.logFile.Close()
	}
	return nil
}

// Enabled reports whether the overlay is active at all.
func (b *Bar) Enabled() bool {
	return b.cfg.Panel.Enabled
}

// HeadHTML is the page-head hook body: the overlay style block. Emit it
// once per page.
func (b *Bar) HeadHTML() template.HTML {
	if !b.Enabled() {
		return ""
	}
	return panel.HeadHTML()
}

// defaultStyle resolves the configured dump style.
func (b *Bar) defaultStyle() dump.Style {
	return dump.ParseStyle(b.cfg.Panel.DumpStyle)
}

// Capture is the per-request capture context: one store, one error
// handler, created at request start and discarded at request end.
type Capture struct {
	bar     *Bar
	store   *capture.Store
	handler *intercept.Handler
}

type ctxKey struct{}

// Begin creates a fresh Capture and attaches it to the context. This is
// the init-at-request-start half of the lifecycle; the Capture is simply
// dropped at request end.
func (b *Bar) Begin(ctx context.Context) (context.Context, *Capture) {
	store := capture.NewStore(b.cfg.Capture.BufferSize)
	c := &Capture{
		bar:   b,
		store: store,
		handler: intercept.NewHandler(store,
			intercept.WithLogFunc(b.logFunc),
			intercept.WithObserver(b.observer),
			intercept.WithNow(b.now),
		),
	}
	return context.WithValue(ctx, ctxKey{}, c), c
}

// FromContext returns the request's Capture, or nil outside a capture
// scope.
func FromContext(ctx context.Context) *Capture {
	c, _ := ctx.Value(ctxKey{}).(*Capture)
	return c
}

// Handle is the error-report callback to register with the host's
// error-reporting mechanism: one handler per request, invoked with the
// severity code, message, and origin site of every raised error. The
// false return means "continue default propagation".
func (c *Capture) Handle(sev Severity, message, file string, line int) bool {
	return c.handler.HandleSkip(1, sev, message, file, line)
}

// Counts returns the current bucket sizes.
func (c *Capture) Counts() capture.Counts {
	return c.store.Counts()
}

// FooterHTML is the page-footer hook body: panels, indicator, and toggle
// script. Renders nothing when nothing was captured.
func (c *Capture) FooterHTML() template.HTML {
	if !c.bar.Enabled() {
		return ""
	}
	return panel.Footer(c.store)
}

// Dump records v in the configured default style, tagged with the
// caller's file and line.
func (c *Capture) Dump(v any) {
	c.record(v, c.bar.defaultStyle(), 1)
}

// DumpStyled records v in the named style (verbose, readable, or
// reconstructable; unrecognized names fall back to verbose).
func (c *Capture) DumpStyled(v any, style string) {
	c.record(v, dump.ParseStyle(style), 1)
}

// Dump serializes v in the Bar's default style and records it as a dump
// event on the request's capture. Outside a capture scope it is a no-op.
func Dump(ctx context.Context, v any) {
	if c := FromContext(ctx); c != nil {
		c.record(v, c.bar.defaultStyle(), 1)
	}
}

// DumpStyled is Dump with an explicit style name.
func DumpStyled(ctx context.Context, v any, style string) {
	if c := FromContext(ctx); c != nil {
		c.record(v, dump.ParseStyle(style), 1)
	}
}

// record serializes v and appends a dumps-category event. skip counts the
// exported wrappers between the user's call site and here.
func (c *Capture) record(v any, style dump.Style, skip int) {
	file, line := dump.CallerSite(skip)
	ev := capture.Event{
		Timestamp: logformat.Timestamp(c.bar.now()),
		Message:   dump.Serialize(v, style),
		File:      file,
		Line:      line,
	}
	c.store.Record(capture.Dumps, ev)
	if c.bar.observer != nil {
		c.bar.observer(capture.Dumps, ev, "")
	}
}
