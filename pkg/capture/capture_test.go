package capture

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_CanonicalIndex(t *testing.T) {
	tests := []struct {
		in    string
		named bool
		index int
	}{
		{"0", false, 0},
		{"12", false, 12},
		{"-3", false, -3},
		{"012", true, -1},
		{"-0", true, -1},
		{"", true, -1},
		{"1a", true, -1},
		{"foo", true, -1},
		{"99999999999999999999999", true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k := Name(tt.in)
			assert.Equal(t, tt.named, k.IsNamed())
			assert.Equal(t, tt.index, k.Index())
		})
	}
}

func TestKey_Quoted(t *testing.T) {
	assert.Equal(t, "'foo'", Name("foo").Quoted())
	assert.Equal(t, `'it\'s'`, Name("it's").Quoted())
	assert.Equal(t, `'a\\b'`, Name(`a\b`).Quoted())
	assert.Equal(t, "3", Index(3).Quoted())
	assert.Equal(t, "foo", Name("foo").String())
}

func TestSortKeys(t *testing.T) {
	keys := []Key{Name("b"), Index(2), Name("a"), Index(0)}
	SortKeys(keys)
	assert.Equal(t, []Key{Index(0), Index(2), Name("a"), Name("b")}, keys)
}

func TestNormalize(t *testing.T) {
	t.Run("string keyed map", func(t *testing.T) {
		res, ok := Normalize(map[string]any{"foo": "x", "0": "y"})
		require.True(t, ok)
		assert.Equal(t, Result{Name("foo"): "x", Index(0): "y"}, res)
	})

	t.Run("int keyed map", func(t *testing.T) {
		res, ok := Normalize(map[int]string{1: "x"})
		require.True(t, ok)
		assert.Equal(t, Result{Index(1): "x"}, res)
	})

	t.Run("mixed interface keys", func(t *testing.T) {
		res, ok := Normalize(map[any]any{"foo": nil, 2: "y"})
		require.True(t, ok)
		assert.Equal(t, Result{Name("foo"): nil, Index(2): "y"}, res)
	})

	t.Run("slice", func(t *testing.T) {
		res, ok := Normalize([]string{"ab", "a"})
		require.True(t, ok)
		assert.Equal(t, Result{Index(0): "ab", Index(1): "a"}, res)
	})

	t.Run("typed nil map is empty", func(t *testing.T) {
		var m map[string]any
		res, ok := Normalize(m)
		require.True(t, ok)
		assert.Empty(t, res)
	})

	notMappings := map[string]any{
		"nil":         nil,
		"string":      "foo",
		"int":         42,
		"float keys":  map[float64]string{1.5: "x"},
		"bool keys":   map[any]any{true: "x"},
		"byte slice":  []byte("abc"),
		"struct":      struct{ A string }{"x"},
		"int slice":   []int{1, 2},
		"nil key any": map[any]any{nil: "x"},
		"same group":  map[any]any{0: "a", "0": "b"},
	}
	for name, v := range notMappings {
		t.Run("not a mapping: "+name, func(t *testing.T) {
			_, ok := Normalize(v)
			assert.False(t, ok)
		})
	}

	t.Run("same group rejected on every iteration order", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			_, ok := Normalize(map[any]any{0: "a", "0": "b", "foo": "c", 1: "d"})
			require.False(t, ok)
		}
	})
}

func TestResult_Captured(t *testing.T) {
	res := Result{
		Name("empty"):     "",
		Name("text"):      "x",
		Name("absent"):    Absent,
		Name("nil"):       nil,
		Name("pair"):      []any{"x", 3},
		Name("nilpair"):   []any{nil, -1},
		Name("typedpair"): UnmatchedAt(-1),
	}

	assert.True(t, res.Captured(Name("empty")))
	assert.True(t, res.Captured(Name("text")))
	assert.True(t, res.Captured(Name("pair")))
	assert.False(t, res.Captured(Name("absent")))
	assert.False(t, res.Captured(Name("nil")))
	assert.False(t, res.Captured(Name("nilpair")))
	assert.False(t, res.Captured(Name("typedpair")))
	assert.False(t, res.Captured(Name("missing")))
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "x", Canonical("x"))
	assert.Equal(t, Absent, Canonical(nil))
	assert.Equal(t, At("x", 3), Canonical([]any{"x", int64(3)}))
	assert.Equal(t, UnmatchedAt(-1), Canonical([]any{nil, -1}))
	assert.Equal(t, 1.5, Canonical(1.5))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, `"x"`, Format("x"))
	assert.Equal(t, "null", Format(nil))
	assert.Equal(t, `["x", 3]`, Format([]any{"x", 3}))
	assert.Equal(t, "[null, -1]", Format(UnmatchedAt(-1)))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		in     string
		expect Flags
	}{
		{"", 0},
		{"none", 0},
		{"offset_capture", OffsetCapture},
		{"OFFSET_CAPTURE|unmatched_as_absent", DefaultFlags},
		{"PREG_OFFSET_CAPTURE, PREG_UNMATCHED_AS_NULL", DefaultFlags},
		{"unmatched_as_null", UnmatchedAsAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFlags(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, f)
		})
	}

	_, err := ParseFlags("offset_capture|bogus")
	assert.True(t, errors.Is(err, ErrUnknownFlag))
}

func TestFlags_String(t *testing.T) {
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "offset_capture|unmatched_as_absent", DefaultFlags.String())
	assert.Equal(t, "unmatched_as_absent", UnmatchedAsAbsent.String())
	assert.True(t, DefaultFlags.Valid())
	assert.False(t, Flags(0x10).Valid())
}

func TestMatch(t *testing.T) {
	re := regexp.MustCompile(`(?P<word>[a-w]+)(?:-(?P<num>\d+))?(x)?`)

	t.Run("no match", func(t *testing.T) {
		res, ok := Match(re, "123", DefaultFlags)
		assert.False(t, ok)
		assert.Nil(t, res)
	})

	t.Run("default flags", func(t *testing.T) {
		res, ok := Match(re, "  abc-12", DefaultFlags)
		require.True(t, ok)
		assert.Equal(t, Result{
			Index(0):     At("abc-12", 2),
			Index(1):     At("abc", 2),
			Name("word"): At("abc", 2),
			Index(2):     At("12", 6),
			Name("num"):  At("12", 6),
			Index(3):     UnmatchedAt(-1),
		}, res)
	})

	t.Run("unmatched as absent", func(t *testing.T) {
		res := MustMatch(re, "abc", UnmatchedAsAbsent)
		assert.Equal(t, Result{
			Index(0):     "abc",
			Index(1):     "abc",
			Name("word"): "abc",
			Index(2):     Absent,
			Name("num"):  Absent,
			Index(3):     Absent,
		}, res)
	})

	t.Run("trailing unmatched groups dropped", func(t *testing.T) {
		res := MustMatch(re, "abc", 0)
		assert.Equal(t, Result{
			Index(0):     "abc",
			Index(1):     "abc",
			Name("word"): "abc",
		}, res)
	})

	t.Run("inner unmatched group is empty", func(t *testing.T) {
		res := MustMatch(re, "abcx", OffsetCapture)
		assert.Equal(t, At("", -1), res[Name("num")])
		assert.Equal(t, At("x", 3), res[Index(3)])
	})

	t.Run("results pass the filter", func(t *testing.T) {
		for _, flags := range []Flags{0, OffsetCapture, UnmatchedAsAbsent, DefaultFlags} {
			res := MustMatch(re, "abc", flags)
			assert.Equal(t, res, NewFilter(flags).Filter(res), flags.String())
		}
	})

	assert.Panics(t, func() { MustMatch(re, "", 0) })
}
