package debugbar

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/okiba/debugbar/internal/logformat"
)

// Middleware wires the overlay into a net/http handler chain: it begins a
// capture for each request, records panics as fatal errors, and injects
// the overlay markup into HTML responses. Hosts with their own template
// lifecycle can skip this and call Begin/HeadHTML/FooterHTML directly.
//
// A recovered panic is re-raised after being recorded: the overlay
// observes fatal errors, it does not replace the server's own handling of
// them.
func (b *Bar) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ctx, c := b.Begin(r.Context())
		buf := &responseBuffer{ResponseWriter: w}

		defer func() {
			if p := recover(); p != nil {
				file, line := panicSite()
				c.handler.HandleSkip(1, logformat.SevError, fmt.Sprintf("panic: %v", p), file, line)
				panic(p)
			}
		}()

		next.ServeHTTP(buf, r.WithContext(ctx))
		buf.emit(b, c)
	})
}

// responseBuffer holds the downstream response so overlay markup can be
// injected before anything reaches the client.
type responseBuffer struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (rb *responseBuffer) WriteHeader(status int) {
	rb.status = status
}

func (rb *responseBuffer) Write(p []byte) (int, error) {
	return rb.body.Write(p)
}

// emit writes the buffered response out, injecting the style block before
// </head> and the panels/indicator/script before </body> when the
// response is HTML and something was captured.
func (rb *responseBuffer) emit(b *Bar, c *Capture) {
	body := rb.body.Bytes()

	contentType := rb.Header().Get("Content-Type")
	isHTML := contentType == "" || strings.Contains(contentType, "text/html")
	if isHTML && c.Counts().Total() > 0 {
		body = injectBefore(body, "</head>", string(b.HeadHTML()))
		body = injectBefore(body, "</body>", string(c.FooterHTML()))
		rb.Header().Del("Content-Length")
	}

	if rb.status != 0 {
		rb.ResponseWriter.WriteHeader(rb.status)
	}
	_, _ = rb.ResponseWriter.Write(body)
}

// injectBefore inserts markup ahead of the last occurrence of marker, or
// appends it when the marker is absent.
func injectBefore(body []byte, marker, markup string) []byte {
	if markup == "" {
		return body
	}
	idx := bytes.LastIndex(body, []byte(marker))
	if idx < 0 {
		return append(body, markup...)
	}
	out := make([]byte, 0, len(body)+len(markup))
	out = append(out, body[:idx]...)
	out = append(out, markup...)
	out = append(out, body[idx:]...)
	return out
}

// panicSite walks the current stack for the first frame that belongs to
// neither the runtime nor this package: the site that panicked. Degrades
// to empty values when no such frame exists.
func panicSite() (string, int) {
	for _, f := range logformat.Frames(0) {
		if f.Qualifier == "runtime." || f.Qualifier == "debugbar." {
			continue
		}
		return f.File, f.Line
	}
	return "", 0
}
