// Package capture holds the per-request buffer of categorized debug events.
// A Store is created when a request begins, filled by the error interceptor
// and explicit dump calls, read once by the panel renderer, and discarded
// when the request ends. Nothing in this package survives a request.
package capture

// Category identifies which bucket an event is stored and styled under.
type Category string

const (
	Errors   Category = "errors"
	Warnings Category = "warnings"
	Notices  Category = "notices"
	Dumps    Category = "dumps"
)

// Categories returns all categories in their fixed enumeration order.
// Renderers and stores iterate buckets in exactly this order.
func Categories() []Category {
	return []Category{Errors, Warnings, Notices, Dumps}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case Errors, Warnings, Notices, Dumps:
		return true
	}
	return false
}

// Label returns the display heading for the category.
func (c Category) Label() string {
	switch c {
	case Errors:
		return "Errors"
	case Warnings:
		return "Warnings"
	case Notices:
		return "Notices"
	case Dumps:
		return "Dumps"
	}
	return string(c)
}

// Event is a single captured occurrence: a runtime error, warning, notice,
// or an explicit value dump.
type Event struct {
	// Timestamp is a wall-clock string with second precision.
	Timestamp string

	// Message holds the raised error text, or the serialized dump output.
	Message string

	// File and Line identify the origin call site. Either may be empty
	// when the runtime could not supply them.
	File string
	Line int

	// Type is the resolved severity label (e.g. "E_WARNING"). Empty for
	// dumps.
	Type string

	// Stack is the formatted backtrace, nearest caller first. Empty for
	// dumps.
	Stack string
}
