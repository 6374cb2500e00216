package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/getmockd/capmatch/pkg/cli/internal/output"
	"github.com/getmockd/capmatch/pkg/config"
)

// caseFileGlob selects case files below a directory argument.
const caseFileGlob = "**/*.{yaml,yml,json}"

func newCheckCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		failFast   bool
	)

	cmd := &cobra.Command{
		Use:   "check PATTERN...",
		Short: "Run the cases of one or more case files",
		Long: `Run the cases of one or more case files.

Each argument is a case file, a directory (searched for *.yaml, *.yml and *.json
files recursively) or a glob pattern; '**' matches any number of directories.

Every case compiles its pattern, matches the subject and checks the capture groups
against the expectations. Cases with 'negate: true' pass when the expectations do
not hold. A subject that does not match is checked as an empty result unless the
case sets 'match: required'.`,
		Example: `  capmatch check cases.yaml
  capmatch check 'testdata/**/*.yaml'
  capmatch check --json --fail-fast testdata/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			a.log.Debug("expanded case files", "patterns", args, "files", len(paths))

			report := runCheck(a, paths, failFast)

			w := cmd.OutOrStdout()
			if jsonOutput {
				if err := output.JSON(w, report.Report); err != nil {
					return err
				}
			} else {
				printReport(w, a, report)
			}

			switch {
			case report.Errors > 0:
				return &ExitError{Code: ExitInvalid, Err: fmt.Errorf("%d case file(s) could not be used", report.Errors)}
			case report.Failed > 0:
				return &ExitError{Code: ExitFailure, Err: ErrCasesFailed}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output a JSON report")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing case or unusable file")
	return cmd
}

// checkRun pairs the report with the outcomes needed for text output.
type checkRun struct {
	Report
	outcomes map[string][]*config.Outcome
}

func runCheck(a *app, paths []string, failFast bool) *checkRun {
	run := &checkRun{
		Report:   Report{RunID: uuid.NewString(), Files: []FileReport{}},
		outcomes: make(map[string][]*config.Outcome),
	}
	log := a.log.With("run", run.RunID)

	for _, path := range paths {
		fr := FileReport{Path: path}

		outcomes, err := runFile(path, failFast, log)
		for _, o := range outcomes {
			fr.Cases = append(fr.Cases, newCaseReport(o))
			if o.Passed {
				run.Passed++
			} else {
				run.Failed++
			}
		}
		run.outcomes[path] = outcomes
		if err != nil {
			fr.Error = err.Error()
			run.Errors++
			log.Warn("case file unusable", "path", path, "error", err)
		}
		run.Files = append(run.Files, fr)

		if failFast && (run.Failed > 0 || run.Errors > 0) {
			break
		}
	}
	return run
}

// runFile loads path and runs its cases. With failFast it stops after the
// first failing case.
func runFile(path string, failFast bool, log *slog.Logger) ([]*config.Outcome, error) {
	cf, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded case file", "path", path, "cases", len(cf.Cases))

	var stop func(*config.Outcome) bool
	if failFast {
		stop = config.Failed
	}
	return cf.RunUntil(log, stop)
}

func printReport(w io.Writer, a *app, run *checkRun) {
	p := a.palette
	for _, fr := range run.Files {
		prefix := fr.Path + ": "
		for _, o := range run.outcomes[fr.Path] {
			printOutcome(w, p, prefix, o)
		}
		if fr.Error != "" {
			fmt.Fprintf(w, "%s %s\n", p.Warn("ERROR"), fr.Error)
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed", run.Passed, run.Failed)
	if run.Errors > 0 {
		summary += fmt.Sprintf(", %d file error(s)", run.Errors)
	}
	fmt.Fprintln(w, summary)
}

// expandPatterns resolves files, directories and glob patterns to a sorted,
// de-duplicated list of case files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			info, err := os.Stat(pattern)
			if err == nil && info.IsDir() {
				matches, err := doublestar.FilepathGlob(filepath.Join(pattern, caseFileGlob))
				if err != nil {
					return nil, err
				}
				if len(matches) == 0 {
					return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
				}
				sort.Strings(matches)
				for _, m := range matches {
					add(m)
				}
				continue
			}
			// Missing files are reported by the loader.
			add(pattern)
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
