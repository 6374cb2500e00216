package capture

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// AbsentMarker is the type of Absent.
type AbsentMarker struct{}

// Absent marks a group that did not participate in the match. It is distinct
// from a key missing from the result. A nil value inside a result is treated
// as Absent.
var Absent = AbsentMarker{}

func (AbsentMarker) String() string { return "<absent>" }

// IsAbsent reports whether v is the absent marker (Absent or nil).
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(AbsentMarker)
	return ok
}

// Pair is the offset-capture shape: the captured value (a string or Absent)
// and the byte offset of the capture in the subject, -1 for unmatched groups.
type Pair struct {
	Value  any
	Offset int
}

// At returns the pair for text captured at offset.
func At(text string, offset int) Pair {
	return Pair{Value: text, Offset: offset}
}

// UnmatchedAt returns the pair for a group that did not participate.
func UnmatchedAt(offset int) Pair {
	return Pair{Value: Absent, Offset: offset}
}

func (p Pair) String() string {
	return fmt.Sprintf("[%s, %d]", formatScalar(p.Value), p.Offset)
}

// SplitPair returns the two elements of a pair-like value: a Pair, or a
// slice or array of exactly two elements. Element types are not checked.
func SplitPair(v any) (first, second any, ok bool) {
	if p, isPair := v.(Pair); isPair {
		return p.Value, p.Offset, true
	}
	if v == nil {
		return nil, nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() != 2 {
			return nil, nil, false
		}
		return rv.Index(0).Interface(), rv.Index(1).Interface(), true
	default:
		return nil, nil, false
	}
}

// IntValue converts any Go integer kind, or a json.Number holding an
// integer, to int. Floats, booleans and strings are not integers.
func IntValue(v any) (int, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := strconv.ParseInt(string(n), 10, 0)
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
}

// Canonical converts a well-formed capture value to its canonical Go form:
// strings stay strings, nil becomes Absent and pair-like values become Pair.
// Other values are returned unchanged.
func Canonical(v any) any {
	if IsAbsent(v) {
		return Absent
	}
	if s, ok := v.(string); ok {
		return s
	}
	first, second, ok := SplitPair(v)
	if !ok {
		return v
	}
	offset, ok := IntValue(second)
	if !ok {
		return v
	}
	if IsAbsent(first) {
		return UnmatchedAt(offset)
	}
	return Pair{Value: first, Offset: offset}
}

// Format renders a capture value the way diagnostics print it.
func Format(v any) string {
	v = Canonical(v)
	if p, ok := v.(Pair); ok {
		return p.String()
	}
	return formatScalar(v)
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case AbsentMarker, nil:
		return "null"
	default:
		return fmt.Sprintf("%v", x)
	}
}
