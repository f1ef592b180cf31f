package logformat

import (
	"strconv"
	"strings"
	"time"

	"github.com/okiba/debugbar/internal/capture"
)

// TimestampLayout is the wall-clock format captured on every event:
// second precision, no zone.
const TimestampLayout = "2006-01-02 15:04:05"

// separator is the fixed rule between log line sections: 40 dashes.
var separator = strings.Repeat("-", 40)

// Timestamp formats t in the capture timestamp layout.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatLogLine renders the event as the plain-text block written to the
// logging sink:
//
//	[<timestamp>]
//	[!] <message> in <file> on line <line>
//	----------------------------------------
//	[>] Stack trace:
//	<stack>
//	----------------------------------------
//
// The shape is fixed; log-scraping tooling depends on it byte for byte.
func FormatLogLine(ev capture.Event) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(ev.Timestamp)
	b.WriteString("]\n[!] ")
	b.WriteString(ev.Message)
	b.WriteString(" in ")
	b.WriteString(ev.File)
	b.WriteString(" on line ")
	b.WriteString(strconv.Itoa(ev.Line))
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n[>] Stack trace:\n")
	b.WriteString(ev.Stack)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")
	return b.String()
}
