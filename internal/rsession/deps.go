package rsession

import (
	"fmt"
	"reflect"
	"strings"
)

// IdentityToken wraps an arbitrary value so its deps-token encoding is
// based purely on object identity (pointer/slice/map/chan/func address)
// rather than the value-based or collision-prone fallback encodings below.
// Callers needing correctness-critical memoization over types with no
// natural primitive encoding should wrap them with IdentityToken.
type IdentityToken struct{ obj any }

// Identity builds an IdentityToken wrapping obj.
func Identity(obj any) IdentityToken { return IdentityToken{obj} }

// EncodeDeps computes the stable textual token for a dependency array:
// nil means "no memoization, always rerun" (signalled by alwaysRerun); an
// empty (non-nil) slice means "compute once" (a fixed token); a non-empty
// slice produces an escaped, "|"-joined encoding of each element.
func EncodeDeps(deps []any) (token string, alwaysRerun bool) {
	if deps == nil {
		return "", true
	}
	if len(deps) == 0 {
		return "()", false
	}
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = encodeDep(d)
	}
	return strings.Join(parts, "|"), false
}

func encodeDep(v any) string {
	switch t := v.(type) {
	case IdentityToken:
		return "identity=" + escape(identityOf(t.obj))
	case bool:
		return fmt.Sprintf("bool=%t", t)
	case int:
		return fmt.Sprintf("int=%d", t)
	case int64:
		return fmt.Sprintf("int64=%d", t)
	case float64:
		return fmt.Sprintf("float64=%v", t)
	case string:
		return "string=" + escape(t)
	default:
		// Fallback: type-name + description. This can collide for distinct
		// values of the same type whose %v representation happens to
		// match; correctness-critical callers should wrap with Identity.
		return fmt.Sprintf("%T#%s", v, escape(fmt.Sprintf("%v", v)))
	}
}

func identityOf(obj any) string {
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		return fmt.Sprintf("%#x", rv.Pointer())
	default:
		return fmt.Sprintf("%T#%v", obj, obj)
	}
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '|', '=':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
