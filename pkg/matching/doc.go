// Package matching decides whether a capture result satisfies a partial
// expectation.
//
// An expectation maps group keys to one of:
//
//   - false: the group must not be captured,
//   - true: the group must be captured, with any value,
//   - a string: the group must be captured with exactly this value,
//   - a pair of string (or capture.Absent) and int: the group must hold
//     exactly this value and offset,
//   - capture.Absent (or nil): the group must be present as unmatched.
//
// Only keys listed in the expectation are checked, so an empty expectation
// accepts every mapping.
//
// # Usage
//
//	m, err := matching.New(map[string]any{"year": true, "month": []any{"05", 5}})
//	if err != nil {
//	    return err // *ValidationError lists every invalid key
//	}
//	res := m.Evaluate(actual)
//	if !res.Verdict {
//	    fmt.Println(res.Diff())
//	}
//
// # How results are compared
//
// Evaluate filters the actual result with a capture.Filter and builds two
// projections keyed by the expectation keys. A presence expectation (true or
// false) that holds projects the real captured value on both sides, so the
// comparison sees the actual data; one that fails projects the boolean
// literal on the expected side, which forces a mismatch that shows up in the
// diff. Value expectations project the expected value itself. The verdict is
// structural equality of the two projections.
//
// A Matcher is immutable after New and safe for concurrent use.
package matching
