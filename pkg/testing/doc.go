// Package testing provides assertions for checking regexp capture results in
// Go tests.
//
// Import it under another name to keep the standard testing package usable:
//
//	import captest "github.com/getmockd/capmatch/pkg/testing"
//
// # Basic Usage
//
//	func TestDateParser(t *testing.T) {
//	    re := regexp.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?`)
//	    res, _ := capture.Match(re, "2024-05", capture.DefaultFlags)
//
//	    captest.AssertHasCaptures(t, map[string]any{
//	        "year":  true,           // captured, any value
//	        "month": []any{"05", 5}, // exact value and offset
//	        "day":   false,          // not captured
//	    }, res)
//	}
//
// Failures read "Failed asserting that <type> has expected PCRE capture
// groups." followed by a diff of the compared projections.
//
// # Reusable matchers
//
// HasCaptures validates expectations once and returns a *matching.Matcher
// that can be passed to Assert and AssertNot, or used wherever a
// gomock-style Matches/String predicate is accepted:
//
//	m := captest.HasCaptures(t, map[string]any{"year": true}, matching.WithFlags(capture.UnmatchedAsAbsent))
//	captest.Assert(t, m, res)
//
// The fluent builder avoids untyped maps:
//
//	m := captest.Expect().Captured("year").At("month", "05", 5).NotCaptured("day").Matcher(t)
//
// Invalid expectations are reported as an ArgumentError naming every
// offending key.
package testing
