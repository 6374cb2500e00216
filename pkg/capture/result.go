package capture

import (
	"reflect"
)

// Result maps group keys to raw capture values.
type Result map[Key]any

// Keys returns the keys of r in Key order.
func (r Result) Keys() []Key {
	keys := make([]Key, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Captured reports whether group k participated in the match: false when k
// is missing, when its value is the absent marker, or when it is a pair whose
// first element is the absent marker. An empty string is captured.
func (r Result) Captured(k Key) bool {
	v, ok := r[k]
	if !ok || IsAbsent(v) {
		return false
	}
	if first, _, isPair := SplitPair(v); isPair {
		return !IsAbsent(first)
	}
	return true
}

// Normalize converts v to a Result. Maps keyed by integers or strings
// (including map[any]any holding such keys) are converted key by key;
// top-level slices and arrays of strings or interfaces are keyed by index.
// Anything else is not a mapping and reports false, as is a map where two
// keys denote the same group, such as 0 and "0". Values are not touched.
func Normalize(v any) (Result, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case Result:
		return x, true
	case map[Key]any:
		return Result(x), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(Result, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, ok := keyOf(iter.Key())
			if !ok {
				return nil, false
			}
			if _, dup := out[k]; dup {
				return nil, false
			}
			out[k] = iter.Value().Interface()
		}
		return out, true
	case reflect.Slice, reflect.Array:
		switch rv.Type().Elem().Kind() {
		case reflect.String, reflect.Interface:
		default:
			return nil, false
		}
		out := make(Result, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[Index(i)] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

func keyOf(rv reflect.Value) (Key, bool) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Key{}, false
		}
		rv = rv.Elem()
	}
	if rv.Type() == reflect.TypeOf(Key{}) {
		return rv.Interface().(Key), true
	}
	if rv.Kind() == reflect.String {
		return Name(rv.String()), true
	}
	if i, ok := IntValue(rv.Interface()); ok {
		return Index(i), true
	}
	return Key{}, false
}
