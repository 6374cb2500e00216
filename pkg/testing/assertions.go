package testing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/capmatch/pkg/matching"
)

const pkgPrefix = "testing."

// HasCaptures returns a matcher for expected, failing the test immediately
// when expected holds invalid expectations.
func HasCaptures(t testing.TB, expected any, opts ...matching.Option) *matching.Matcher {
	t.Helper()

	m, err := matching.New(expected, opts...)
	if err != nil {
		t.Fatal(expectationsArgument(pkgPrefix+"HasCaptures()", 1, expected, err).Error())
		return nil
	}
	return m
}

// AssertHasCaptures asserts that actual, a capture result, has the capture
// groups described by expected. Only keys present in expected are checked,
// with the default capture flags.
func AssertHasCaptures(t testing.TB, expected, actual any, msgAndArgs ...any) bool {
	t.Helper()

	m, err := matching.New(expected)
	if err != nil {
		return assert.Fail(t, expectationsArgument(pkgPrefix+"AssertHasCaptures()", 1, expected, err).Error(), msgAndArgs...)
	}
	return Assert(t, m, actual, msgAndArgs...)
}

// AssertNotHasCaptures asserts the opposite of AssertHasCaptures.
func AssertNotHasCaptures(t testing.TB, expected, actual any, msgAndArgs ...any) bool {
	t.Helper()

	m, err := matching.New(expected)
	if err != nil {
		return assert.Fail(t, expectationsArgument(pkgPrefix+"AssertNotHasCaptures()", 1, expected, err).Error(), msgAndArgs...)
	}
	return AssertNot(t, m, actual, msgAndArgs...)
}

// RequireHasCaptures is AssertHasCaptures followed by t.FailNow on failure.
func RequireHasCaptures(t testing.TB, expected, actual any, msgAndArgs ...any) {
	t.Helper()

	if !AssertHasCaptures(t, expected, actual, msgAndArgs...) {
		t.FailNow()
	}
}

// Assert asserts that m accepts actual.
func Assert(t testing.TB, m *matching.Matcher, actual any, msgAndArgs ...any) bool {
	t.Helper()

	res := m.Evaluate(actual)
	if res.Verdict {
		return true
	}
	return assert.Fail(t, FailureMessage(res, false), msgAndArgs...)
}

// AssertNot asserts that m rejects actual.
func AssertNot(t testing.TB, m *matching.Matcher, actual any, msgAndArgs ...any) bool {
	t.Helper()

	res := m.Evaluate(actual)
	if !res.Verdict {
		return true
	}
	return assert.Fail(t, FailureMessage(res, true), msgAndArgs...)
}

// FailureMessage renders the failure of res, with the projection diff when
// one is available.
func FailureMessage(res matching.MatchResult, negated bool) string {
	description := matching.Description
	if negated {
		description = matching.NegatedDescription
	}

	var b strings.Builder
	b.WriteString("Failed asserting that ")
	b.WriteString(res.ActualKind)
	b.WriteString(" ")
	b.WriteString(description)
	b.WriteString(".")

	if diff := res.Diff(); diff != "" {
		b.WriteString("\n--- Expected\n+++ Actual\n")
		b.WriteString(diff)
	}
	return b.String()
}
