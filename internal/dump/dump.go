// Package dump serializes arbitrary values for explicit debug capture.
// Three interchangeable styles are supported: a full structural dump, a
// human-oriented pretty print, and a Go-syntax form parseable back into an
// equivalent value.
package dump

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Style selects how a dumped value is serialized.
type Style string

const (
	// Verbose is the full structural dump: every value annotated with its
	// type, lengths on containers, nested fields expanded.
	Verbose Style = "verbose"

	// Readable is a human-oriented pretty print (indented JSON where the
	// value allows it).
	Readable Style = "readable"

	// Reconstructable is Go-syntax output that parses back into an
	// equivalent value.
	Reconstructable Style = "reconstructable"
)

// ParseStyle resolves a style name. Empty or unrecognized names resolve to
// Verbose, the default.
func ParseStyle(name string) Style {
	switch Style(name) {
	case Verbose, Readable, Reconstructable:
		return Style(name)
	}
	return Verbose
}

// Serialize renders v in the given style. Unrecognized styles fall back to
// Verbose.
func Serialize(v any, style Style) string {
	switch style {
	case Readable:
		return readable(v)
	case Reconstructable:
		return fmt.Sprintf("%#v", v)
	default:
		return verbose(v)
	}
}

// readable pretty-prints v as indented JSON. Values JSON cannot express
// (channels, funcs, cycles) fall back to the fmt representation.
func readable(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}

// CallerSite returns the file and line of the caller skip levels above the
// caller of CallerSite. skip=0 is the immediate caller's caller. Unknown
// sites degrade to empty values.
func CallerSite(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip + 2)
	if !ok {
		return "", 0
	}
	return file, line
}
