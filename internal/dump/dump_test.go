package dump

import (
	"strings"
	"testing"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name string
		want Style
	}{
		{"verbose", Verbose},
		{"readable", Readable},
		{"reconstructable", Reconstructable},
		{"", Verbose},
		{"fancy", Verbose},
	}
	for _, tt := range tests {
		if got := ParseStyle(tt.name); got != tt.want {
			t.Errorf("ParseStyle(%q): expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestSerialize_Readable(t *testing.T) {
	got := Serialize(map[string]int{"a": 1}, Readable)
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Fatalf("readable serialization mismatch:\nexpected %q\ngot      %q", want, got)
	}
}

func TestSerialize_Readable_FallbackForNonJSON(t *testing.T) {
	// Channels cannot be marshaled; the readable style must still produce
	// something rather than fail.
	got := Serialize(map[string]chan int{"c": nil}, Readable)
	if got == "" {
		t.Fatal("expected non-empty fallback output")
	}
}

func TestSerialize_Reconstructable(t *testing.T) {
	got := Serialize([]int{1, 2, 3}, Reconstructable)
	want := "[]int{1, 2, 3}"
	if got != want {
		t.Fatalf("expected Go-syntax output %q, got %q", want, got)
	}

	got = Serialize(map[string]int{"a": 1}, Reconstructable)
	want = `map[string]int{"a":1}`
	if got != want {
		t.Fatalf("expected Go-syntax output %q, got %q", want, got)
	}
}

func TestSerialize_Verbose_Scalars(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{42, "(int) 42"},
		{true, "(bool) true"},
		{1.5, "(float64) 1.5"},
		{"hi", `(string) (len=2) "hi"`},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := Serialize(tt.in, Verbose); got != tt.want {
			t.Errorf("verbose %v: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSerialize_Verbose_Containers(t *testing.T) {
	got := Serialize(map[string]int{"b": 2, "a": 1}, Verbose)
	want := "(map[string]int) (len=2) {\n" +
		"  (string) (len=1) \"a\": (int) 1\n" +
		"  (string) (len=1) \"b\": (int) 2\n" +
		"}"
	if got != want {
		t.Fatalf("verbose map mismatch:\nexpected:\n%s\ngot:\n%s", want, got)
	}

	got = Serialize([]string{"x"}, Verbose)
	want = "([]string) (len=1) {\n" +
		"  (string) (len=1) \"x\"\n" +
		"}"
	if got != want {
		t.Fatalf("verbose slice mismatch:\nexpected:\n%s\ngot:\n%s", want, got)
	}
}

func TestSerialize_Verbose_Struct(t *testing.T) {
	type point struct {
		X int
		Y int
	}
	got := Serialize(point{X: 3, Y: 4}, Verbose)
	if !strings.Contains(got, "X: (int) 3") || !strings.Contains(got, "Y: (int) 4") {
		t.Fatalf("expected expanded struct fields, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "(dump.point) {") {
		t.Fatalf("expected type annotation on struct, got:\n%s", got)
	}
}

func TestSerialize_Verbose_PointerAndCycle(t *testing.T) {
	type node struct {
		Next *node
	}
	n := &node{}
	n.Next = n

	got := Serialize(n, Verbose)
	if !strings.Contains(got, "<cycle>") {
		t.Fatalf("expected cycle cutoff, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "&(dump.node)") {
		t.Fatalf("expected pointer prefix, got:\n%s", got)
	}

	var nilPtr *node
	if got := Serialize(nilPtr, Verbose); got != "(*dump.node) <nil>" {
		t.Fatalf("expected nil pointer rendering, got %q", got)
	}
}

func TestSerialize_UnknownStyleFallsBackToVerbose(t *testing.T) {
	if got := Serialize(7, Style("fancy")); got != "(int) 7" {
		t.Fatalf("expected verbose fallback, got %q", got)
	}
}

func TestCallerSite(t *testing.T) {
	file, line := callerSiteHelper()
	if !strings.HasSuffix(file, "dump_test.go") {
		t.Errorf("expected caller file dump_test.go, got %q", file)
	}
	if line == 0 {
		t.Error("expected non-zero caller line")
	}
}

// callerSiteHelper reports its own caller's site, one level up.
func callerSiteHelper() (string, int) {
	return CallerSite(0)
}
