package capture

// Filter decides which entries of a raw result are well-formed capture
// entries.
type Filter interface {
	// Accepts reports whether v is a well-formed capture value.
	Accepts(v any) bool
	// Filter returns a new Result holding only the accepted entries of r.
	Filter(r Result) Result
}

// FlagFilter is the Filter driven by Flags.
type FlagFilter struct {
	flags Flags
}

var _ Filter = (*FlagFilter)(nil)

// NewFilter returns a filter licensing the value shapes enabled by flags.
func NewFilter(flags Flags) *FlagFilter {
	return &FlagFilter{flags: flags}
}

// Flags returns the flags the filter was built with.
func (f *FlagFilter) Flags() Flags {
	return f.flags
}

// Accepts returns true when
//
//   - v is a string, or v is the absent marker and UnmatchedAsAbsent is set,
//   - OffsetCapture is set and v is a two-element pair whose first element
//     passes the rule above and whose second element is an integer.
//
// Every other shape is rejected.
func (f *FlagFilter) Accepts(v any) bool {
	return f.isScalarCapture(v) || f.isPairCapture(v)
}

// Filter returns the entries of r accepted by Accepts. r is not modified.
func (f *FlagFilter) Filter(r Result) Result {
	out := make(Result, len(r))
	for k, v := range r {
		if f.Accepts(v) {
			out[k] = v
		}
	}
	return out
}

func (f *FlagFilter) isScalarCapture(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}
	return f.flags.Has(UnmatchedAsAbsent) && IsAbsent(v)
}

func (f *FlagFilter) isPairCapture(v any) bool {
	if !f.flags.Has(OffsetCapture) {
		return false
	}
	first, second, ok := SplitPair(v)
	if !ok || !f.isScalarCapture(first) {
		return false
	}
	_, ok = IntValue(second)
	return ok
}
