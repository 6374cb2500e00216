package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/capmatch/pkg/cli/internal/output"
	"github.com/getmockd/capmatch/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	logLevel  string
	logFormat string
	noColor   bool

	log      *slog.Logger
	closeLog func() error
	palette  output.Palette
}

// NewRootCmd returns the capmatch command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.Nop(), palette: output.NewPalette(true)}

	rootCmd := &cobra.Command{
		Use:   "capmatch",
		Short: "capmatch checks regexp capture groups against expectations",
		Long: `capmatch checks the capture groups of regular expression matches against
expectations: whether a group captured, or the exact value and offset it captured.

Cases are read from YAML or JSON case files. See 'capmatch check --help'.`,
		// No Run function here means 'capmatch' with no args will print help text by default.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newEvalCmd(a),
		newGenCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := logging.FromEnv(logging.DefaultConfig())
	cfg.Output = cmd.ErrOrStderr()
	if a.logLevel != "" {
		cfg.Level = logging.ParseLevel(a.logLevel)
	}
	if a.logFormat != "" {
		cfg.Format = logging.ParseFormat(a.logFormat)
	}

	log, closeLog, err := logging.New(cfg)
	if err != nil {
		return err
	}
	a.log = log.With("cmd", cmd.Name())
	a.closeLog = closeLog
	a.palette = output.NewPalette(a.noColor)
	return nil
}

// Execute runs the command tree with args and returns the exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// Main runs capmatch with the process arguments. It is called by main.main().
func Main() int {
	return Execute(os.Args[1:], os.Stdout, os.Stderr)
}

// isReported reports whether err was already printed as part of a report.
func isReported(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.Code == ExitFailure
}
