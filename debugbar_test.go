package debugbar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okiba/debugbar"
	"github.com/okiba/debugbar/internal/config"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
}

func newTestBar(t *testing.T, logged *[]string) *debugbar.Bar {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Log.Sink = config.SinkNone

	opts := []debugbar.Option{debugbar.WithNow(fixedNow)}
	if logged != nil {
		opts = append(opts, debugbar.WithLogFunc(func(line string) {
			*logged = append(*logged, line)
		}))
	}

	bar, err := debugbar.New(cfg, opts...)
	if err != nil {
		t.Fatalf("creating bar: %v", err)
	}
	t.Cleanup(func() { _ = bar.Close() })
	return bar
}

func TestBegin_FreshCapturePerRequest(t *testing.T) {
	bar := newTestBar(t, nil)

	ctx1, c1 := bar.Begin(t.Context())
	ctx2, c2 := bar.Begin(t.Context())

	if c1 == c2 {
		t.Fatal("expected a distinct capture per request")
	}
	if debugbar.FromContext(ctx1) != c1 || debugbar.FromContext(ctx2) != c2 {
		t.Fatal("expected FromContext to return the request's own capture")
	}
	if debugbar.FromContext(t.Context()) != nil {
		t.Fatal("expected nil capture outside a capture scope")
	}

	c1.Handle(debugbar.SevNotice, "only on one", "a.go", 1)
	if c2.Counts().Total() != 0 {
		t.Fatal("expected captures to be isolated between requests")
	}
}

func TestHandle_RoutesAndLogs(t *testing.T) {
	var logged []string
	bar := newTestBar(t, &logged)
	_, c := bar.Begin(t.Context())

	if cont := c.Handle(debugbar.SevUserError, "it broke", "h.go", 5); cont {
		t.Fatal("expected false (continue default propagation)")
	}

	counts := c.Counts()
	if counts.Errors != 1 || counts.Total() != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "[!] it broke in h.go on line 5") {
		t.Fatalf("unexpected sink output: %v", logged)
	}
}

func TestHandle_StackStartsAtRaisingCaller(t *testing.T) {
	var logged []string
	bar := newTestBar(t, &logged)
	_, c := bar.Begin(t.Context())

	c.Handle(debugbar.SevNotice, "where was this raised", "x.go", 1)

	if len(logged) != 1 {
		t.Fatalf("expected 1 sink write, got %d", len(logged))
	}
	_, stack, ok := strings.Cut(logged[0], "[>] Stack trace:\n")
	if !ok {
		t.Fatalf("sink line missing stack section: %q", logged[0])
	}
	if strings.Contains(stack, "Capture).Handle") {
		t.Errorf("stack should not include facade frames:\n%s", stack)
	}

	first, _, _ := strings.Cut(stack, "\n")
	if !strings.Contains(first, "TestHandle_StackStartsAtRaisingCaller") {
		t.Errorf("expected first frame at the raising caller, got %q", first)
	}
}

func TestDump_RecordsCallerSite(t *testing.T) {
	bar := newTestBar(t, nil)
	ctx, c := bar.Begin(t.Context())

	debugbar.DumpStyled(ctx, map[string]int{"a": 1}, "readable")

	counts := c.Counts()
	if counts.Dumps != 1 || counts.Total() != 1 {
		t.Fatalf("expected exactly one dump event, got %+v", counts)
	}

	footer := string(c.FooterHTML())
	if !strings.Contains(footer, "&#34;a&#34;: 1") {
		t.Errorf("expected readable serialization in panel, got:\n%s", footer)
	}
	if !strings.Contains(footer, "debugbar_test.go") {
		t.Errorf("expected dump tagged with caller file, got:\n%s", footer)
	}
}

func TestFooterHTML_EmptyWhenNothingCaptured(t *testing.T) {
	bar := newTestBar(t, nil)
	_, c := bar.Begin(t.Context())

	if got := c.FooterHTML(); got != "" {
		t.Fatalf("expected empty footer, got %q", got)
	}
	if got := bar.HeadHTML(); got == "" {
		t.Fatal("expected head style block to be emitted regardless")
	}
}

func TestMiddleware_InjectsOverlay(t *testing.T) {
	bar := newTestBar(t, nil)

	handler := bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := debugbar.FromContext(r.Context())
		c.Handle(debugbar.SevUserWarning, "low disk", "h.go", 3)
		debugbar.Dump(r.Context(), []int{1, 2})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title>t</title></head><body>page</body></html>"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `id="debug-container"`) || !strings.Contains(body, `id="debug-errors"`) {
		t.Fatalf("expected overlay markup injected, got:\n%s", body)
	}
	if !strings.Contains(body, "<style>") {
		t.Error("expected style block injected into head")
	}

	// Markup lands inside the document, not after it.
	if strings.Index(body, "debug-container") > strings.Index(body, "</body>") {
		t.Error("expected overlay injected before </body>")
	}
	if !strings.Contains(body, "page") {
		t.Error("expected original response body preserved")
	}
}

func TestMiddleware_CleanRequestUntouched(t *testing.T) {
	bar := newTestBar(t, nil)

	handler := bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>clean</body></html>"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Body.String(); got != "<html><body>clean</body></html>" {
		t.Fatalf("expected untouched response when nothing captured, got %q", got)
	}
}

func TestMiddleware_NonHTMLUntouched(t *testing.T) {
	bar := newTestBar(t, nil)

	handler := bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		debugbar.Dump(r.Context(), "payload")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api", nil))

	if got := rec.Body.String(); got != `{"ok":true}` {
		t.Fatalf("expected JSON response untouched, got %q", got)
	}
}

func TestMiddleware_RecordsAndRepropagatesPanic(t *testing.T) {
	var logged []string
	bar := newTestBar(t, &logged)

	handler := bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected the panic to propagate past the middleware")
		}
		if p != "kaboom" {
			t.Fatalf("expected original panic value, got %v", p)
		}
		if len(logged) != 1 || !strings.Contains(logged[0], "panic: kaboom") {
			t.Errorf("expected panic recorded to the sink first, got %v", logged)
		}

		// The recovery closure's own frame is excluded from the stack.
		_, stack, _ := strings.Cut(logged[0], "[>] Stack trace:\n")
		first, _, _ := strings.Cut(stack, "\n")
		if strings.Contains(first, "Middleware") {
			t.Errorf("expected recovery frame excluded from stack, got %q", first)
		}
		if !strings.Contains(stack, "TestMiddleware_RecordsAndRepropagatesPanic") {
			t.Errorf("expected panicking handler in stack:\n%s", stack)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Sink = config.SinkNone
	cfg.Panel.Enabled = false

	bar, err := debugbar.New(cfg)
	if err != nil {
		t.Fatalf("creating bar: %v", err)
	}
	t.Cleanup(func() { _ = bar.Close() })

	handler := bar.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if debugbar.FromContext(r.Context()) != nil {
			t.Error("expected no capture scope when disabled")
		}
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Body.String() != "ok" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
