// Package capture models the capture group results produced by regular
// expression matching and decides which entries of such a result are
// well-formed capture entries.
//
// A result maps group keys to values. A key is either a group index or a
// group name. A value is one of:
//
//   - a string: the group matched and this is the captured text,
//   - Absent: the group did not participate in the match (only meaningful
//     with UnmatchedAsAbsent),
//   - a Pair of value and byte offset (only meaningful with OffsetCapture).
//
// # Filtering
//
// A Filter configured with Flags keeps only the entries whose shape is
// licensed by those flags:
//
//	f := capture.NewFilter(capture.OffsetCapture | capture.UnmatchedAsAbsent)
//	clean := f.Filter(raw)
//
// # Producing results
//
// Match adapts the output of Go's regexp package to the same shape, so that
// results from FindStringSubmatchIndex can be checked with package matching:
//
//	re := regexp.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})`)
//	res, ok := capture.Match(re, "2024-05", capture.DefaultFlags)
package capture
