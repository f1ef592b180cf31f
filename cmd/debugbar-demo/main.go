// Command debugbar-demo serves a small page with the overlay wired in,
// with routes that raise each capture category.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	"github.com/okiba/debugbar"
	"github.com/okiba/debugbar/internal/config"
)

const page = `<!DOCTYPE html>
<html>
<head><title>debugbar demo</title></head>
<body>
<h1>debugbar demo</h1>
<ul>
<li><a href="/notice">raise a notice</a></li>
<li><a href="/warning">raise a warning</a></li>
<li><a href="/error">raise an error</a></li>
<li><a href="/dump">dump a value</a></li>
<li><a href="/panic">panic</a></li>
<li><a href="/storm">raise one of everything</a></li>
</ul>
</body>
</html>
`

func main() {
	addrFlag := flag.String("addr", "localhost:8080", "Listen address")
	configFlag := flag.String("config", "", "Config file path (default: standard location)")
	flag.Parse()

	var (
		loadResult *config.LoadResult
		err        error
	)
	if *configFlag != "" {
		loadResult, err = config.LoadFrom(*configFlag)
	} else {
		loadResult, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-demo: config error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range loadResult.Warnings {
		fmt.Fprintf(os.Stderr, "debugbar-demo: config warning: %s\n", w)
	}

	bar, err := debugbar.New(loadResult.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-demo: %v\n", err)
		os.Exit(1)
	}
	defer bar.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		serve(w)
	})
	mux.HandleFunc("/notice", func(w http.ResponseWriter, r *http.Request) {
		file, line := here()
		capture(r).Handle(debugbar.SevUserNotice, "something worth noting", file, line)
		serve(w)
	})
	mux.HandleFunc("/warning", func(w http.ResponseWriter, r *http.Request) {
		file, line := here()
		capture(r).Handle(debugbar.SevUserWarning, "something suspicious", file, line)
		serve(w)
	})
	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		file, line := here()
		capture(r).Handle(debugbar.SevUserError, "something broke", file, line)
		serve(w)
	})
	mux.HandleFunc("/dump", func(w http.ResponseWriter, r *http.Request) {
		debugbar.Dump(r.Context(), map[string]any{
			"path":   r.URL.Path,
			"remote": r.RemoteAddr,
			"depth":  []int{1, 2, 3},
		})
		serve(w)
	})
	mux.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("demo panic")
	})
	mux.HandleFunc("/storm", func(w http.ResponseWriter, r *http.Request) {
		c := capture(r)
		file, line := here()
		c.Handle(debugbar.SevUserError, "storm error", file, line)
		c.Handle(debugbar.SevUserWarning, "storm warning", file, line)
		c.Handle(debugbar.SevUserNotice, "storm notice", file, line)
		debugbar.DumpStyled(r.Context(), []string{"storm", "dump"}, "readable")
		serve(w)
	})

	log.Printf("debugbar-demo: listening on http://%s", *addrFlag)
	if err := http.ListenAndServe(*addrFlag, bar.Middleware(mux)); err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-demo: %v\n", err)
		os.Exit(1)
	}
}

func serve(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func capture(r *http.Request) *debugbar.Capture {
	return debugbar.FromContext(r.Context())
}

// here reports the caller's own file and line, standing in for the origin
// site a real host runtime would supply.
func here() (string, int) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "", 0
	}
	return file, line
}
