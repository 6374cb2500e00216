package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/capmatch/pkg/capture"
)

func TestParseExpectation(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Expectation
		ok    bool
	}{
		{"false", false, NotCaptured(), true},
		{"true", true, Captured(), true},
		{"string", "FOO", Equals("FOO"), true},
		{"empty string", "", Equals(""), true},
		{"nil", nil, Unmatched(), true},
		{"absent", capture.Absent, Unmatched(), true},
		{"slice pair", []any{"X", 3}, EqualsPair("X", 3), true},
		{"array pair", [2]any{"X", 3}, EqualsPair("X", 3), true},
		{"typed pair", capture.At("X", 3), EqualsPair("X", 3), true},
		{"unmatched pair", []any{nil, -1}, UnmatchedPair(-1), true},
		{"json number offset", []any{"X", json.Number("3")}, EqualsPair("X", 3), true},
		{"expectation", Equals("x"), Equals("x"), true},

		{"zero expectation", Expectation{}, Expectation{}, false},
		{"float", 3.14, Expectation{}, false},
		{"int", 1, Expectation{}, false},
		{"json number", json.Number("1"), Expectation{}, false},
		{"struct", struct{}{}, Expectation{}, false},
		{"three elements", []any{"", 1, ""}, Expectation{}, false},
		{"bool in pair", []any{false, 1}, Expectation{}, false},
		{"float offset", []any{"", 123.456}, Expectation{}, false},
		{"string offset", []string{"", "1"}, Expectation{}, false},
		{"map", map[string]any{}, Expectation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseExpectation(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpectation_Value(t *testing.T) {
	assert.Equal(t, false, NotCaptured().Value())
	assert.Equal(t, true, Captured().Value())
	assert.Equal(t, "x", Equals("x").Value())
	assert.Equal(t, capture.At("x", 2), EqualsPair("x", 2).Value())
	assert.Equal(t, capture.UnmatchedAt(-1), UnmatchedPair(-1).Value())
	assert.Equal(t, capture.Absent, Unmatched().Value())
	assert.Nil(t, Expectation{}.Value())
}

func TestExpectation_String(t *testing.T) {
	assert.Equal(t, "false", NotCaptured().String())
	assert.Equal(t, "true", Captured().String())
	assert.Equal(t, `"x"`, Equals("x").String())
	assert.Equal(t, `["x", 2]`, EqualsPair("x", 2).String())
	assert.Equal(t, "[null, -1]", UnmatchedPair(-1).String())
	assert.Equal(t, "null", Unmatched().String())
	assert.Equal(t, "invalid", Expectation{}.String())
	assert.Equal(t, "equals-pair", KindEqualsPair.String())
}

func TestExpectation_Accessors(t *testing.T) {
	e := EqualsPair("x", 7)
	assert.Equal(t, KindEqualsPair, e.Kind())
	assert.Equal(t, "x", e.Text())
	assert.Equal(t, 7, e.Offset())
	assert.False(t, e.IsUnmatchedPair())
	assert.True(t, UnmatchedPair(0).IsUnmatchedPair())
	assert.True(t, Captured().IsPresence())
	assert.False(t, Equals("").IsPresence())

	assert.Panics(t, func() { MustParseExpectation(1.5) })
	assert.Equal(t, Captured(), MustParseExpectation(true))
}

func TestMatcher_Breakdown(t *testing.T) {
	m := MustNew(map[string]any{
		"a": true,
		"b": false,
		"c": "x",
		"d": []any{"y", 1},
		"e": true,
	})

	got := m.Breakdown(map[string]any{
		"a": []any{nil, -1},
		"b": []any{"B", 0},
		"c": []any{"x", 2},
		"e": []any{"E", 4},
	})

	reasons := make(map[string]string, len(got))
	var order []string
	for _, kr := range got {
		reasons[kr.Key.String()] = kr.Reason
		order = append(order, kr.Key.String())
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, order)
	assert.Equal(t, map[string]string{
		"a": ReasonNotCaptured,
		"b": ReasonCaptured,
		"c": ReasonValueMismatch,
		"d": ReasonMissing,
		"e": ReasonOK,
	}, reasons)

	e := got[4]
	assert.True(t, e.Matched)
	assert.True(t, e.Present)
	assert.True(t, e.Captured)
	assert.Equal(t, capture.At("E", 4), e.Actual)
	assert.Equal(t, capture.At("E", 4), e.Expected)

	c := got[2]
	assert.Equal(t, "x", c.Expected)
	assert.Equal(t, capture.At("x", 2), c.Actual)
}

func TestMatcher_BreakdownNotMapping(t *testing.T) {
	m := MustNew(map[string]any{"a": true, "b": "x"})
	got := m.Breakdown(42)

	if assert.Len(t, got, 2) {
		for _, kr := range got {
			assert.False(t, kr.Matched)
			assert.Equal(t, ReasonNotMapping, kr.Reason)
		}
		assert.Equal(t, true, got[0].Expected)
		assert.Equal(t, "x", got[1].Expected)
	}
}
