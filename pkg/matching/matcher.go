package matching

import (
	"fmt"
	"log/slog"

	"github.com/google/go-cmp/cmp"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/logging"
)

// Description completes "Failed asserting that <actual> ..." for a failed match.
const Description = "has expected PCRE capture groups"

// NegatedDescription is Description for the negated assertion.
const NegatedDescription = "does not have expected PCRE capture groups"

// Predicate is the reusable check consumed by assertion layers. It has the
// shape of gomock's Matcher.
type Predicate interface {
	Matches(x any) bool
	String() string
}

// Option configures a Matcher.
type Option func(*options)

type options struct {
	flags  capture.Flags
	filter capture.Filter
	logger *slog.Logger
}

// WithFlags sets the flags of the filter applied to actual results.
// The default is capture.DefaultFlags.
func WithFlags(flags capture.Flags) Option {
	return func(o *options) {
		o.flags = flags
		o.filter = nil
	}
}

// WithFilter replaces the flag-driven filter.
func WithFilter(f capture.Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Matcher checks capture results against a validated expectation mapping.
type Matcher struct {
	expected map[capture.Key]Expectation
	keys     []capture.Key
	filter   capture.Filter
	log      *slog.Logger
}

var _ Predicate = (*Matcher)(nil)

// New validates expected and returns a Matcher bound to it.
//
// expected may be any mapping accepted by capture.Normalize; values must be
// valid expectations (see ParseExpectation). When some are not, New returns
// a *ValidationError naming every offending key.
func New(expected any, opts ...Option) (*Matcher, error) {
	o := options{flags: capture.DefaultFlags}
	for _, opt := range opts {
		opt(&o)
	}
	if o.filter == nil {
		o.filter = capture.NewFilter(o.flags)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}

	raw, ok := capture.Normalize(expected)
	if !ok {
		o.logger.Debug("expectations rejected", "kind", KindOf(expected))
		return nil, fmt.Errorf("%w, %s given", ErrNotMapping, KindOf(expected))
	}

	m := &Matcher{
		expected: make(map[capture.Key]Expectation, len(raw)),
		keys:     raw.Keys(),
		filter:   o.filter,
		log:      o.logger,
	}

	var invalid []capture.Key
	for _, k := range m.keys {
		e, ok := ParseExpectation(raw[k])
		if !ok {
			invalid = append(invalid, k)
			continue
		}
		m.expected[k] = e
	}
	if len(invalid) > 0 {
		err := &ValidationError{Keys: invalid}
		o.logger.Debug("expectations rejected", "error", err.Error())
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew(expected any, opts ...Option) *Matcher {
	m, err := New(expected, opts...)
	if err != nil {
		panic("matching: " + err.Error())
	}
	return m
}

// Expectations returns a copy of the validated expectations.
func (m *Matcher) Expectations() map[capture.Key]Expectation {
	out := make(map[capture.Key]Expectation, len(m.expected))
	for k, e := range m.expected {
		out[k] = e
	}
	return out
}

// Keys returns the expectation keys in key order.
func (m *Matcher) Keys() []capture.Key {
	return append([]capture.Key(nil), m.keys...)
}

// Matches reports whether actual satisfies the expectations.
func (m *Matcher) Matches(actual any) bool {
	return m.Evaluate(actual).Verdict
}

// String describes what the matcher accepts.
func (m *Matcher) String() string {
	return Description
}

// FailureDescription completes "Failed asserting that ..." for actual.
func (m *Matcher) FailureDescription(actual any) string {
	return KindOf(actual) + " " + Description
}

// Evaluate checks actual against the expectations.
//
// Values that are not mappings fail without projections; ActualKind names
// their type. Evaluate never fails for malformed actual values.
func (m *Matcher) Evaluate(actual any) MatchResult {
	res := MatchResult{ActualKind: KindOf(actual)}

	raw, ok := capture.Normalize(actual)
	if !ok {
		m.log.Debug("capture result is not a mapping", "kind", res.ActualKind)
		return res
	}
	filtered := m.filter.Filter(raw)

	res.Expected = make(capture.Result, len(m.keys))
	res.Actual = make(capture.Result, len(m.keys))
	for _, k := range m.keys {
		p := m.project(filtered, k)
		if p.hasExpected {
			res.Expected[k] = p.expected
		}
		if p.hasActual {
			res.Actual[k] = p.actual
		}
	}
	res.Verdict = cmp.Equal(res.Expected, res.Actual)

	if !res.Verdict {
		m.log.Debug("capture expectations not met", "keys", len(m.keys))
	}
	return res
}

// projection is one key's contribution to both sides of the comparison.
type projection struct {
	expected    any
	actual      any
	hasExpected bool
	hasActual   bool
	captured    bool
}

func (p projection) matched() bool {
	if p.hasExpected != p.hasActual {
		return false
	}
	return !p.hasExpected || cmp.Equal(p.expected, p.actual)
}

func (m *Matcher) project(filtered capture.Result, k capture.Key) projection {
	e := m.expected[k]
	v, present := filtered[k]

	p := projection{captured: filtered.Captured(k)}
	if present {
		p.actual, p.hasActual = capture.Canonical(v), true
	}

	if e.IsPresence() && (e.Kind() == KindCaptured) == p.captured {
		// Presence holds; project the real value so other differences stay visible.
		p.expected, p.hasExpected = p.actual, p.hasActual
		return p
	}
	p.expected, p.hasExpected = e.Value(), true
	return p
}

// KindOf describes the type of v for diagnostics.
func KindOf(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
