package logformat

import "testing"

func TestTypeName_KnownCodes(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SevError, "E_ERROR"},
		{SevWarning, "E_WARNING"},
		{SevParse, "E_PARSE"},
		{SevNotice, "E_NOTICE"},
		{SevCoreError, "E_CORE_ERROR"},
		{SevCoreWarning, "E_CORE_WARNING"},
		{SevCompileError, "E_COMPILE_ERROR"},
		{SevCompileWarning, "E_COMPILE_WARNING"},
		{SevUserError, "E_USER_ERROR"},
		{SevUserWarning, "E_USER_WARNING"},
		{SevUserNotice, "E_USER_NOTICE"},
		{SevStrict, "E_STRICT"},
		{SevRecoverableError, "E_RECOVERABLE_ERROR"},
		{SevDeprecated, "E_DEPRECATED"},
		{SevUserDeprecated, "E_USER_DEPRECATED"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.sev); got != tt.want {
			t.Errorf("TypeName(%d): expected %q, got %q", tt.sev, tt.want, got)
		}
	}
}

func TestTypeName_Total(t *testing.T) {
	// Every known code maps to a non-empty label.
	for sev := range severityLabels {
		if TypeName(sev) == "" {
			t.Errorf("TypeName(%d): expected non-empty label", sev)
		}
	}

	// Anything else maps to UNKNOWN, never fails.
	for _, sev := range []Severity{0, 3, -1, 5, 32768, 1 << 20} {
		if got := TypeName(sev); got != "UNKNOWN" {
			t.Errorf("TypeName(%d): expected UNKNOWN, got %q", sev, got)
		}
	}
}
