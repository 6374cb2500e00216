package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/logging"
	"github.com/getmockd/capmatch/pkg/matching"
)

// ErrInvalidPattern is returned by Run when the case pattern does not compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Outcome is the result of running one case.
type Outcome struct {
	Case  *Case
	Flags capture.Flags

	// Matched reports whether the pattern matched the subject.
	Matched bool
	// Actual is the capture result the expectations were evaluated against.
	Actual capture.Result

	Result    matching.MatchResult
	Breakdown []matching.KeyResult

	// Passed is the verdict, inverted for negated cases.
	Passed bool
	// Reason explains a failure not covered by Result, if any.
	Reason string
}

// Run compiles the case pattern, matches the subject and evaluates the
// expectations. defaults are used when the case sets no flags.
//
// A subject that does not match is evaluated as an empty result unless the
// case sets match: required. Errors are returned for unusable cases only;
// a failing case is reported through Outcome.Passed.
func (c *Case) Run(defaults capture.Flags, log *slog.Logger) (*Outcome, error) {
	if log == nil {
		log = logging.Nop()
	}

	flags, err := c.FlagsOr(defaults)
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	re, err := compilePattern(c.Pattern)
	if err != nil {
		return nil, err
	}
	m, err := matching.New(c.Expect, matching.WithFlags(flags), matching.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("expect: %w", err)
	}

	out := &Outcome{Case: c, Flags: flags}
	actual, ok := capture.Match(re, c.Subject, flags)
	out.Matched = ok
	if !ok {
		if c.MatchRequired() {
			out.Reason = "pattern does not match subject"
			log.Debug("case failed", "case", c.Label(), "reason", out.Reason)
			return out, nil
		}
		actual = capture.Result{}
	}
	out.Actual = actual

	out.Result = m.Evaluate(actual)
	out.Passed = out.Result.Verdict != c.Negate
	if !out.Passed {
		out.Breakdown = m.Breakdown(actual)
		if c.Negate {
			out.Reason = "expectations hold"
		}
	}

	log.Debug("case evaluated",
		"case", c.Label(),
		"flags", flags.String(),
		"matched", ok,
		"verdict", out.Result.Verdict,
		"passed", out.Passed,
	)
	return out, nil
}

// Run runs every case of the file with the file level flags as defaults.
// It stops at the first unusable case.
func (f *CaseFile) Run(log *slog.Logger) ([]*Outcome, error) {
	return f.RunUntil(log, nil)
}

// RunUntil is Run, also stopping after the first outcome for which stop
// returns true. A nil stop never stops.
func (f *CaseFile) RunUntil(log *slog.Logger, stop func(*Outcome) bool) ([]*Outcome, error) {
	defaults, err := f.DefaultFlags()
	if err != nil {
		return nil, err
	}
	outcomes := make([]*Outcome, 0, len(f.Cases))
	for i, c := range f.Cases {
		o, err := c.Run(defaults, log)
		if err != nil {
			return outcomes, fmt.Errorf("cases[%d] (%s): %w", i, c.Label(), err)
		}
		outcomes = append(outcomes, o)
		if stop != nil && stop(o) {
			break
		}
	}
	return outcomes, nil
}

// Failed is a RunUntil stop condition for fail-fast runs.
func Failed(o *Outcome) bool {
	return !o.Passed
}
