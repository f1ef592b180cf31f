package dump

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// maxDepth bounds recursion into nested values; anything deeper renders as
// an ellipsis.
const maxDepth = 8

// verbose renders the full structural dump: types on every value, lengths
// on containers, struct fields expanded, map keys in sorted order so the
// output is deterministic.
func verbose(v any) string {
	if v == nil {
		return "<nil>"
	}
	var b strings.Builder
	d := &dumper{seen: make(map[uintptr]bool)}
	d.value(&b, reflect.ValueOf(v), "", 0)
	return b.String()
}

type dumper struct {
	seen map[uintptr]bool // visited pointers, for cycle cutoff
}

func (d *dumper) value(b *strings.Builder, v reflect.Value, indent string, depth int) {
	if !v.IsValid() {
		b.WriteString("<nil>")
		return
	}
	if depth > maxDepth {
		b.WriteString("...")
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		fmt.Fprintf(b, "(%s) %t", v.Type(), v.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fmt.Fprintf(b, "(%s) %d", v.Type(), v.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		fmt.Fprintf(b, "(%s) %d", v.Type(), v.Uint())

	case reflect.Float32, reflect.Float64:
		fmt.Fprintf(b, "(%s) %g", v.Type(), v.Float())

	case reflect.Complex64, reflect.Complex128:
		fmt.Fprintf(b, "(%s) %v", v.Type(), v.Complex())

	case reflect.String:
		fmt.Fprintf(b, "(%s) (len=%d) %q", v.Type(), v.Len(), v.String())

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			fmt.Fprintf(b, "(%s) <nil>", v.Type())
			return
		}
		fmt.Fprintf(b, "(%s) (len=%d) {", v.Type(), v.Len())
		d.elements(b, v, indent, depth)
		b.WriteString("\n" + indent + "}")

	case reflect.Map:
		if v.IsNil() {
			fmt.Fprintf(b, "(%s) <nil>", v.Type())
			return
		}
		fmt.Fprintf(b, "(%s) (len=%d) {", v.Type(), v.Len())
		d.mapEntries(b, v, indent, depth)
		b.WriteString("\n" + indent + "}")

	case reflect.Struct:
		fmt.Fprintf(b, "(%s) {", v.Type())
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			b.WriteString("\n" + indent + "  " + t.Field(i).Name + ": ")
			d.value(b, v.Field(i), indent+"  ", depth+1)
		}
		b.WriteString("\n" + indent + "}")

	case reflect.Ptr:
		if v.IsNil() {
			fmt.Fprintf(b, "(%s) <nil>", v.Type())
			return
		}
		ptr := v.Pointer()
		if d.seen[ptr] {
			fmt.Fprintf(b, "(%s) <cycle>", v.Type())
			return
		}
		d.seen[ptr] = true
		b.WriteString("&")
		d.value(b, v.Elem(), indent, depth+1)
		delete(d.seen, ptr)

	case reflect.Interface:
		if v.IsNil() {
			fmt.Fprintf(b, "(%s) <nil>", v.Type())
			return
		}
		d.value(b, v.Elem(), indent, depth)

	default:
		// Chan, Func, UnsafePointer.
		fmt.Fprintf(b, "(%s) %v", v.Type(), v)
	}
}

func (d *dumper) elements(b *strings.Builder, v reflect.Value, indent string, depth int) {
	for i := 0; i < v.Len(); i++ {
		b.WriteString("\n" + indent + "  ")
		d.value(b, v.Index(i), indent+"  ", depth+1)
	}
}

func (d *dumper) mapEntries(b *strings.Builder, v reflect.Value, indent string, depth int) {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		b.WriteString("\n" + indent + "  ")
		d.value(b, k, indent+"  ", depth+1)
		b.WriteString(": ")
		d.value(b, v.MapIndex(k), indent+"  ", depth+1)
	}
}
