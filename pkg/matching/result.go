package matching

import (
	"github.com/google/go-cmp/cmp"

	"github.com/getmockd/capmatch/pkg/capture"
)

// MatchResult is the outcome of one evaluation.
type MatchResult struct {
	// Verdict is true when the actual value satisfies every expectation.
	Verdict bool

	// Expected and Actual are the projections that were compared. Both are
	// nil when the actual value was not a mapping.
	Expected capture.Result
	Actual   capture.Result

	// ActualKind describes the type of the actual value.
	ActualKind string
}

// HasProjections reports whether the projections are available for a diff.
func (r MatchResult) HasProjections() bool {
	return r.Expected != nil && r.Actual != nil
}

// Diff renders the differences between the projections ("-" expected,
// "+" actual). It returns "" when they are equal or unavailable.
func (r MatchResult) Diff() string {
	if !r.HasProjections() {
		return ""
	}
	return cmp.Diff(diffView(r.Expected), diffView(r.Actual))
}

// pair mirrors capture.Pair without its String method, so diffs print the
// value and offset as fields instead of one formatted string.
type pair struct {
	Value  any
	Offset int
}

func diffView(r capture.Result) map[capture.Key]any {
	out := make(map[capture.Key]any, len(r))
	for k, v := range r {
		if p, ok := v.(capture.Pair); ok {
			v = pair(p)
		}
		out[k] = v
	}
	return out
}

// KeyResult explains the outcome for one expectation key.
type KeyResult struct {
	Key         capture.Key
	Expectation Expectation

	// Expected and Actual are the projected values; Present tells whether
	// the key survived filtering.
	Expected any
	Actual   any
	Present  bool
	Captured bool

	Matched bool
	Reason  string
}

// Reasons reported by Breakdown.
const (
	ReasonOK            = "ok"
	ReasonNotCaptured   = "not captured"
	ReasonCaptured      = "captured"
	ReasonMissing       = "missing"
	ReasonValueMismatch = "value mismatch"
	ReasonNotMapping    = "not a mapping"
)

// Breakdown evaluates every expectation key separately, in key order, and
// explains the failing ones. For values that are not mappings every key
// fails with ReasonNotMapping.
func (m *Matcher) Breakdown(actual any) []KeyResult {
	out := make([]KeyResult, 0, len(m.keys))

	raw, ok := capture.Normalize(actual)
	if !ok {
		for _, k := range m.keys {
			e := m.expected[k]
			out = append(out, KeyResult{
				Key:         k,
				Expectation: e,
				Expected:    e.Value(),
				Reason:      ReasonNotMapping,
			})
		}
		return out
	}

	filtered := m.filter.Filter(raw)
	for _, k := range m.keys {
		e := m.expected[k]
		p := m.project(filtered, k)
		kr := KeyResult{
			Key:         k,
			Expectation: e,
			Expected:    p.expected,
			Actual:      p.actual,
			Present:     p.hasActual,
			Captured:    p.captured,
			Matched:     p.matched(),
		}
		switch {
		case kr.Matched:
			kr.Reason = ReasonOK
		case e.Kind() == KindCaptured:
			kr.Reason = ReasonNotCaptured
		case e.Kind() == KindNotCaptured:
			kr.Reason = ReasonCaptured
		case !p.hasActual:
			kr.Reason = ReasonMissing
		default:
			kr.Reason = ReasonValueMismatch
		}
		out = append(out, kr)
	}
	return out
}
