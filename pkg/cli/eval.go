package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/cli/internal/output"
	"github.com/getmockd/capmatch/pkg/config"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		c          config.Case
		flags      string
		expect     string
		showGroups bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Check one pattern, subject and expectation set",
		Long: `Check one pattern, subject and expectation set.

--expect takes a YAML (or JSON) mapping of group names or indices to
expectations: true (captured), false (not captured), a string (exact value),
["value", offset] or null.`,
		Example: `  capmatch eval --pattern '(?P<year>\d{4})-(?P<month>\d{2})' --subject 2024-05 \
    --expect '{year: true, month: ["05", 5]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.ParseExpectations(expect)
			if err != nil {
				return fmt.Errorf("--expect: %w", err)
			}
			c.Expect = v
			c.Flags = flags

			o, err := c.Run(capture.DefaultFlags, a.log)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				if err := output.JSON(w, newCaseReport(o)); err != nil {
					return err
				}
			} else {
				if showGroups {
					printGroups(cmd, o.Actual)
				}
				printOutcome(w, a.palette, "", o)
			}

			if !o.Passed {
				return failed("case failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&c.Pattern, "pattern", "p", "", "Regular expression (Go RE2 syntax)")
	cmd.Flags().StringVarP(&c.Subject, "subject", "s", "", "Subject string")
	cmd.Flags().StringVarP(&expect, "expect", "e", "", "Expectations as a YAML mapping")
	cmd.Flags().StringVarP(&flags, "flags", "f", capture.DefaultFlags.String(), "Capture flags (offset_capture, unmatched_as_absent, none)")
	cmd.Flags().StringVar(&c.Name, "name", "", "Case name used in output")
	cmd.Flags().BoolVar(&c.Negate, "negate", false, "Expect the expectations not to hold")
	cmd.Flags().StringVar(&c.Match, "match", config.MatchOptional, "Policy for subjects that do not match (optional, required)")
	cmd.Flags().BoolVar(&showGroups, "groups", false, "Print the capture groups")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("expect")

	return cmd
}

func printGroups(cmd *cobra.Command, r capture.Result) {
	tw := output.Table(cmd.OutOrStdout())
	for _, k := range r.Keys() {
		fmt.Fprintf(tw, "%s\t%s\n", k, capture.Format(r[k]))
	}
	_ = tw.Flush()
}
