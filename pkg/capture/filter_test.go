package capture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagFilter_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		value  any
		expect bool
	}{
		// typical scalar values
		{"nil without flags", 0, nil, false},
		{"absent without flags", 0, Absent, false},
		{"nil with unmatched", UnmatchedAsAbsent, nil, true},
		{"absent with unmatched", UnmatchedAsAbsent, Absent, true},
		{"empty string", 0, "", true},
		{"string with all flags", DefaultFlags, "foo", true},

		// typical pairs
		{"pair without offset flag", 0, []any{"", 0}, false},
		{"pair with offset flag", OffsetCapture, []any{"", 0}, true},
		{"typed pair", OffsetCapture, At("x", 3), true},
		{"unmatched pair without unmatched flag", OffsetCapture, []any{nil, 0}, false},
		{"unmatched pair", DefaultFlags, []any{nil, 0}, true},
		{"unmatched typed pair", DefaultFlags, UnmatchedAt(-1), true},
		{"pair with unmatched flag only", UnmatchedAsAbsent, []any{nil, 0}, false},
		{"array pair", OffsetCapture, [2]any{"a", 1}, true},
		{"int64 offset", OffsetCapture, []any{"a", int64(1)}, true},
		{"json number offset", OffsetCapture, []any{"a", json.Number("7")}, true},

		// abnormal scalars
		{"int", DefaultFlags, 123, false},
		{"float", DefaultFlags, 123.456, false},
		{"true", DefaultFlags, true, false},
		{"false", DefaultFlags, false, false},
		{"struct", DefaultFlags, struct{}{}, false},

		// abnormal pairs
		{"empty slice", OffsetCapture, []any{}, false},
		{"one element", OffsetCapture, []any{""}, false},
		{"one nil element", DefaultFlags, []any{nil}, false},
		{"string offset", OffsetCapture, []any{"", ""}, false},
		{"true offset", OffsetCapture, []any{"", true}, false},
		{"false offset", OffsetCapture, []any{"", false}, false},
		{"float offset", OffsetCapture, []any{"", 1.5}, false},
		{"fractional json number", OffsetCapture, []any{"", json.Number("1.5")}, false},
		{"three elements", OffsetCapture, []any{"", 0, nil}, false},
		{"bool value", DefaultFlags, []any{false, 0}, false},
		{"string slice", DefaultFlags, []string{"a", "b"}, false},
		{"typed pair with bad value", DefaultFlags, Pair{Value: 1, Offset: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.flags)
			assert.Equal(t, tt.expect, f.Accepts(tt.value))
		})
	}
}

func TestFlagFilter_Filter(t *testing.T) {
	raw := Result{
		Name(`""`):        "",
		Name("null"):      nil,
		Name(`"foo"`):     "foo",
		Name(`["",-1]`):   []any{"", -1},
		Name(`[""]`):      []any{""},
		Name("[null,0]"):  []any{nil, -1},
		Name(`["",0,""]`): []any{"", 0, ""},
		Name("object"):    struct{}{},
	}

	tests := []struct {
		name   string
		flags  Flags
		expect Result
	}{
		{
			name:  "no flags",
			flags: 0,
			expect: Result{
				Name(`""`):    "",
				Name(`"foo"`): "foo",
			},
		},
		{
			name:  "unmatched as absent",
			flags: UnmatchedAsAbsent,
			expect: Result{
				Name(`""`):    "",
				Name("null"):  nil,
				Name(`"foo"`): "foo",
			},
		},
		{
			name:  "offset capture",
			flags: OffsetCapture,
			expect: Result{
				Name(`""`):      "",
				Name(`"foo"`):   "foo",
				Name(`["",-1]`): []any{"", -1},
			},
		},
		{
			name:  "offset capture and unmatched as absent",
			flags: DefaultFlags,
			expect: Result{
				Name(`""`):       "",
				Name("null"):     nil,
				Name(`"foo"`):    "foo",
				Name(`["",-1]`):  []any{"", -1},
				Name("[null,0]"): []any{nil, -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.flags)
			got := f.Filter(raw)
			assert.Equal(t, tt.expect, got)
			assert.Equal(t, got, f.Filter(got), "filtering twice changes the result")
		})
	}

	assert.Len(t, raw, 8, "input was modified")
}

func TestFlagFilter_Flags(t *testing.T) {
	assert.Equal(t, DefaultFlags, NewFilter(DefaultFlags).Flags())
}
