// Package logformat turns captured events into their plain-text log
// representation: the severity label, the backtrace block, and the
// fixed-shape log line handed to the logging sink.
package logformat

// Severity is a runtime error-report severity code. The domain is the
// classic bitmask error-level set, which hosts pass through unchanged.
type Severity int

const (
	SevError Severity = 1 << iota
	SevWarning
	SevParse
	SevNotice
	SevCoreError
	SevCoreWarning
	SevCompileError
	SevCompileWarning
	SevUserError
	SevUserWarning
	SevUserNotice
	SevStrict
	SevRecoverableError
	SevDeprecated
	SevUserDeprecated
)

// severityLabels maps each known severity code to its display label.
var severityLabels = map[Severity]string{
	SevError:            "E_ERROR",
	SevWarning:          "E_WARNING",
	SevParse:            "E_PARSE",
	SevNotice:           "E_NOTICE",
	SevCoreError:        "E_CORE_ERROR",
	SevCoreWarning:      "E_CORE_WARNING",
	SevCompileError:     "E_COMPILE_ERROR",
	SevCompileWarning:   "E_COMPILE_WARNING",
	SevUserError:        "E_USER_ERROR",
	SevUserWarning:      "E_USER_WARNING",
	SevUserNotice:       "E_USER_NOTICE",
	SevStrict:           "E_STRICT",
	SevRecoverableError: "E_RECOVERABLE_ERROR",
	SevDeprecated:       "E_DEPRECATED",
	SevUserDeprecated:   "E_USER_DEPRECATED",
}

// TypeName resolves a severity code to its label. The mapping is total:
// any code outside the known set resolves to "UNKNOWN", never an error.
func TypeName(sev Severity) string {
	if label, ok := severityLabels[sev]; ok {
		return label
	}
	return "UNKNOWN"
}
