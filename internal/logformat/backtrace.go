package logformat

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one call-stack entry as the formatter sees it. File, Line, and
// Qualifier may be empty when the runtime could not supply them.
type Frame struct {
	File      string
	Line      int
	Qualifier string // owning package or receiver prefix, including the dot
	Function  string
}

// maxFrames caps backtrace collection. Deep recursion past this point is
// noise in a debug panel.
const maxFrames = 64

// Frames collects the current call stack, nearest caller first, skipping
// skip frames above this function itself.
func Frames(skip int) []Frame {
	pcs := make([]uintptr, maxFrames)
	// +2 skips runtime.Callers and Frames itself.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	iter := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		rf, more := iter.Next()
		qualifier, function := splitFuncName(rf.Function)
		out = append(out, Frame{
			File:      rf.File,
			Line:      rf.Line,
			Qualifier: qualifier,
			Function:  function,
		})
		if !more {
			break
		}
	}
	return out
}

// FormatBacktrace renders frames one per line in the form
//
//	#<index> <file>(<line>): <qualifier><function>()
//
// skipping the first skip frames (they belong to the interceptor's own call
// chain). A frame without file information falls back to
// "[internal function]", and the line parenthetical is omitted when the
// line is unknown.
func FormatBacktrace(frames []Frame, skip int) string {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(frames) {
		return ""
	}

	var b strings.Builder
	for i, f := range frames[skip:] {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#%d %s: %s%s()", i, frameSite(f), f.Qualifier, f.Function)
	}
	return b.String()
}

// frameSite renders the file(line) part of a frame.
func frameSite(f Frame) string {
	if f.File == "" {
		return "[internal function]"
	}
	if f.Line <= 0 {
		return f.File
	}
	return fmt.Sprintf("%s(%d)", f.File, f.Line)
}

// splitFuncName splits a fully qualified runtime function name like
// "github.com/okiba/debugbar/internal/dump.Serialize" into a short
// qualifier ("dump.") and the bare function name (which keeps any method
// receiver, e.g. "(*Store).Record").
func splitFuncName(full string) (qualifier, function string) {
	if full == "" {
		return "", ""
	}
	short := full
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		short = full[idx+1:]
	}
	if idx := strings.IndexByte(short, '.'); idx >= 0 {
		return short[:idx+1], short[idx+1:]
	}
	return "", short
}
