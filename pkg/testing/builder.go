package testing

import (
	"fmt"
	"testing"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/matching"
)

// ExpectationBuilder builds capture expectations using a fluent API.
// Keys are group names (string), group indices (int) or capture.Key values.
type ExpectationBuilder struct {
	expected map[capture.Key]matching.Expectation
	err      error // First error encountered during building
}

// Expect starts an empty set of expectations.
func Expect() *ExpectationBuilder {
	return &ExpectationBuilder{expected: make(map[capture.Key]matching.Expectation)}
}

// setError records the first error encountered during building.
func (b *ExpectationBuilder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns any error encountered during building.
func (b *ExpectationBuilder) Err() error {
	return b.err
}

func (b *ExpectationBuilder) set(key any, e matching.Expectation) *ExpectationBuilder {
	switch k := key.(type) {
	case capture.Key:
		b.expected[k] = e
	case string:
		b.expected[capture.Name(k)] = e
	case int:
		b.expected[capture.Index(k)] = e
	default:
		b.setError(fmt.Errorf("unsupported group key %v (%T)", key, key))
	}
	return b
}

// Captured expects every group in keys to be captured.
func (b *ExpectationBuilder) Captured(keys ...any) *ExpectationBuilder {
	for _, k := range keys {
		b.set(k, matching.Captured())
	}
	return b
}

// NotCaptured expects every group in keys not to be captured.
func (b *ExpectationBuilder) NotCaptured(keys ...any) *ExpectationBuilder {
	for _, k := range keys {
		b.set(k, matching.NotCaptured())
	}
	return b
}

// Equals expects the group value to be exactly s.
// With offset capture enabled use At instead.
func (b *ExpectationBuilder) Equals(key any, s string) *ExpectationBuilder {
	return b.set(key, matching.Equals(s))
}

// At expects the group to hold s at offset.
func (b *ExpectationBuilder) At(key any, s string, offset int) *ExpectationBuilder {
	return b.set(key, matching.EqualsPair(s, offset))
}

// UnmatchedAt expects the group to hold the unmatched pair with offset.
func (b *ExpectationBuilder) UnmatchedAt(key any, offset int) *ExpectationBuilder {
	return b.set(key, matching.UnmatchedPair(offset))
}

// Unmatched expects the group to be present as the absent marker.
func (b *ExpectationBuilder) Unmatched(key any) *ExpectationBuilder {
	return b.set(key, matching.Unmatched())
}

// Build returns the expectations.
func (b *ExpectationBuilder) Build() (map[capture.Key]matching.Expectation, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make(map[capture.Key]matching.Expectation, len(b.expected))
	for k, e := range b.expected {
		out[k] = e
	}
	return out, nil
}

// Matcher builds the expectations into a matcher, failing the test
// immediately on a builder error.
func (b *ExpectationBuilder) Matcher(t testing.TB, opts ...matching.Option) *matching.Matcher {
	t.Helper()

	expected, err := b.Build()
	if err != nil {
		t.Fatalf("invalid capture expectations: %v", err)
		return nil
	}
	return HasCaptures(t, expected, opts...)
}
