package capture

import "regexp"

// Match runs re against subject and returns the captures in the shape of a
// preg-style match result: every group is keyed by its index and named
// groups are keyed by their name as well.
//
// Without UnmatchedAsAbsent, groups that did not participate are "" and
// trailing ones are left out; with it they are Absent. With OffsetCapture
// every value is a Pair carrying the byte offset, -1 for unmatched groups.
// It returns (nil, false) when re does not match.
func Match(re *regexp.Regexp, subject string, flags Flags) (Result, bool) {
	loc := re.FindStringSubmatchIndex(subject)
	if loc == nil {
		return nil, false
	}
	names := re.SubexpNames()

	last := len(loc)/2 - 1
	if !flags.Has(UnmatchedAsAbsent) {
		for last > 0 && loc[2*last] < 0 {
			last--
		}
	}

	res := make(Result, 2*(last+1))
	for i := 0; i <= last; i++ {
		start, end := loc[2*i], loc[2*i+1]

		var v any
		switch {
		case start >= 0:
			v = subject[start:end]
		case flags.Has(UnmatchedAsAbsent):
			v = Absent
		default:
			v = ""
		}
		if flags.Has(OffsetCapture) {
			v = Pair{Value: v, Offset: start}
		}

		res[Index(i)] = v
		if i < len(names) && names[i] != "" {
			res[Name(names[i])] = v
		}
	}
	return res, true
}

// MustMatch is like Match but panics when re does not match subject.
// It simplifies fixtures in tests.
func MustMatch(re *regexp.Regexp, subject string, flags Flags) Result {
	res, ok := Match(re, subject, flags)
	if !ok {
		panic("capture: " + re.String() + " does not match " + subject)
	}
	return res
}
