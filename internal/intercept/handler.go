// Package intercept implements the runtime error interceptor: the single
// handler a host registers with its error-reporting mechanism. The handler
// observes every raised error, warning, and notice, records it into the
// per-request capture store, and forwards a formatted line to the logging
// sink. It never suppresses the host's own fatal handling.
package intercept

import (
	"log"
	"strings"
	"time"

	"github.com/okiba/debugbar/internal/capture"
	"github.com/okiba/debugbar/internal/logformat"
)

// LogFunc is the injected logging sink: it receives one formatted log
// block per intercepted event.
type LogFunc func(line string)

// DefaultLogFunc writes the log block through the standard logger.
func DefaultLogFunc(line string) {
	log.Print(line)
}

// handlerFrameSkip drops the interceptor's own collection frames
// (backtrace + handle) from captured backtraces. Frames above handle —
// Handle itself and any delegating wrappers — are dropped on top of this.
const handlerFrameSkip = 2

// Observer receives every recorded event after classification, alongside
// the formatted log block. Used to fan captures out to the archive.
type Observer func(cat capture.Category, ev capture.Event, line string)

// Handler receives every raised error/warning/notice for one request,
// classifies it, records it, and logs it. Construct with NewHandler; the
// zero value is not usable.
type Handler struct {
	store    *capture.Store
	logFunc  LogFunc
	observer Observer
	now      func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogFunc replaces the default logging sink.
func WithLogFunc(fn LogFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.logFunc = fn
		}
	}
}

// WithObserver registers an observer for recorded events.
func WithObserver(fn Observer) Option {
	return func(h *Handler) {
		h.observer = fn
	}
}

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a handler recording into store.
func NewHandler(store *capture.Store, opts ...Option) *Handler {
	h := &Handler{
		store:   store,
		logFunc: DefaultLogFunc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Store returns the capture store the handler records into, lazily
// creating one if the handler was invoked before explicit setup.
func (h *Handler) Store() *capture.Store {
	if h.store == nil {
		h.store = capture.NewStore(capture.DefaultCapacity)
	}
	return h.store
}

// Handle is the registered error-report callback. It receives the raw
// severity code, message, and origin site from the host runtime, records a
// categorized event, and writes the formatted block to the logging sink.
//
// The return value tells the host whether to run its default propagation:
// always false here, meaning "continue" — the interceptor observes fatal
// errors, it does not recover them.
//
// Handle never panics. Any internal failure degrades to empty fields on
// the recorded event.
func (h *Handler) Handle(sev logformat.Severity, message, file string, line int) bool {
	return h.handle(1, sev, message, file, line)
}

// HandleSkip is Handle for delegating wrappers: extra counts the wrapper
// frames between the raising caller and the wrapper's Handle call, so
// captured stacks still start at the raising caller.
func (h *Handler) HandleSkip(extra int, sev logformat.Severity, message, file string, line int) bool {
	return h.handle(extra+1, sev, message, file, line)
}

// handle records and logs one report. above counts the interceptor-owned
// frames between the raising caller and handle itself.
func (h *Handler) handle(above int, sev logformat.Severity, message, file string, line int) bool {
	defer func() {
		// The error handler must not itself raise.
		_ = recover()
	}()

	store := h.Store()
	label := logformat.TypeName(sev)

	ev := capture.Event{
		Timestamp: logformat.Timestamp(h.now()),
		Message:   message,
		File:      file,
		Line:      line,
		Type:      label,
		Stack:     backtrace(handlerFrameSkip + above),
	}

	cat := Classify(label)
	store.Record(cat, ev)

	block := logformat.FormatLogLine(ev)
	if h.observer != nil {
		h.observer(cat, ev, block)
	}
	h.logFunc(block)
	return false
}

// Classify maps a severity label to its bucket by substring: anything with
// ERROR is an error, anything with WARNING a warning, everything else —
// including unrecognized labels — a notice. Downstream behavior depends on
// this exact policy; keep it string-based.
func Classify(label string) capture.Category {
	switch {
	case strings.Contains(label, "ERROR"):
		return capture.Errors
	case strings.Contains(label, "WARNING"):
		return capture.Warnings
	default:
		return capture.Notices
	}
}

// backtrace formats the current stack, excluding the first skip frames
// (the interceptor's own call chain, backtrace included). A failure while
// collecting degrades to an empty string.
func backtrace(skip int) (trace string) {
	defer func() {
		if recover() != nil {
			trace = ""
		}
	}()
	return logformat.FormatBacktrace(logformat.Frames(0), skip)
}
