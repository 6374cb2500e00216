package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/cli/internal/output"
	"github.com/getmockd/capmatch/pkg/config"
	"github.com/getmockd/capmatch/pkg/matching"
)

// Report is the JSON form of a check run.
type Report struct {
	RunID  string       `json:"runId"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Errors int          `json:"errors"`
	Files  []FileReport `json:"files"`
}

// FileReport describes one case file.
type FileReport struct {
	Path  string       `json:"path"`
	Error string       `json:"error,omitempty"`
	Cases []CaseReport `json:"cases,omitempty"`
}

// CaseReport describes one case.
type CaseReport struct {
	Name    string      `json:"name"`
	Passed  bool        `json:"passed"`
	Verdict bool        `json:"verdict"`
	Negate  bool        `json:"negate,omitempty"`
	Matched bool        `json:"matched"`
	Flags   string      `json:"flags"`
	Message string      `json:"message,omitempty"`
	Keys    []KeyReport `json:"keys,omitempty"`
}

// KeyReport describes a failing expectation key.
type KeyReport struct {
	Key      string `json:"key"`
	Reason   string `json:"reason"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
}

func newCaseReport(o *config.Outcome) CaseReport {
	r := CaseReport{
		Name:    o.Case.Label(),
		Passed:  o.Passed,
		Verdict: o.Result.Verdict,
		Negate:  o.Case.Negate,
		Matched: o.Matched,
		Flags:   o.Flags.String(),
	}
	if !o.Passed {
		r.Message = failureMessage(o)
		for _, kr := range o.Breakdown {
			if kr.Matched {
				continue
			}
			r.Keys = append(r.Keys, newKeyReport(kr))
		}
	}
	return r
}

func newKeyReport(kr matching.KeyResult) KeyReport {
	k := KeyReport{
		Key:      kr.Key.String(),
		Reason:   kr.Reason,
		Expected: kr.Expectation.String(),
	}
	if kr.Present {
		k.Actual = capture.Format(kr.Actual)
	}
	return k
}

// failureMessage explains why o failed.
func failureMessage(o *config.Outcome) string {
	if !o.Matched && o.Case.MatchRequired() {
		return o.Reason
	}
	description := matching.Description
	if o.Case.Negate {
		description = matching.NegatedDescription
	}
	return fmt.Sprintf("Failed asserting that %s %s.", o.Result.ActualKind, description)
}

// printOutcome writes the human readable result of one case.
func printOutcome(w io.Writer, p output.Palette, prefix string, o *config.Outcome) {
	if o.Passed {
		fmt.Fprintf(w, "%s %s%s\n", p.Pass("PASS"), prefix, o.Case.Label())
		return
	}
	fmt.Fprintf(w, "%s %s%s\n", p.Fail("FAIL"), prefix, o.Case.Label())
	fmt.Fprintln(w, output.Indent(failureMessage(o), "    "))

	for _, kr := range o.Breakdown {
		if kr.Matched {
			continue
		}
		k := newKeyReport(kr)
		line := fmt.Sprintf("%s: %s (expected %s", k.Key, k.Reason, k.Expected)
		if kr.Present {
			line += ", actual " + k.Actual
		}
		fmt.Fprintln(w, output.Indent(line+")", "    "))
	}
	if diff := o.Result.Diff(); diff != "" {
		fmt.Fprintln(w, output.Indent(p.Dim(strings.TrimRight(diff, "\n")), "    "))
	}
}
