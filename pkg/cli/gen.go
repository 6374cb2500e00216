package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/cobra"

	"github.com/getmockd/capmatch/pkg/capture"
	"github.com/getmockd/capmatch/pkg/config"
	"github.com/getmockd/capmatch/pkg/matching"
)

const (
	capturePkg  = "github.com/getmockd/capmatch/pkg/capture"
	matchingPkg = "github.com/getmockd/capmatch/pkg/matching"
	captestPkg  = "github.com/getmockd/capmatch/pkg/testing"
)

// GenOptions configures test generation.
type GenOptions struct {
	Package  string
	FuncName string
}

func newGenCmd(a *app) *cobra.Command {
	var (
		opts   GenOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "gen FILE...",
		Short: "Generate a Go table test from case files",
		Long: `Generate a Go table test from case files.

The generated test runs every case with the capture assertions of
github.com/getmockd/capmatch/pkg/testing, so the checks can live next to the
code that builds the patterns.`,
		Example: `  capmatch gen --package dates -o dates_captures_test.go testdata/dates.yaml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}

			var files []*config.CaseFile
			for _, p := range paths {
				cf, err := config.LoadFromFile(p)
				if err != nil {
					return err
				}
				files = append(files, cf)
			}

			var buf bytes.Buffer
			if err := GenerateTest(&buf, opts, files...); err != nil {
				return err
			}
			a.log.Debug("generated test", "files", len(files), "bytes", buf.Len())

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}
			return os.WriteFile(output, buf.Bytes(), 0o644)
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name of the generated file")
	cmd.Flags().StringVar(&opts.FuncName, "func", "TestCaptures", "Name of the generated test function")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

// GenerateTest writes a Go test file running every case of files.
// Cases are validated first; an unusable case aborts generation.
func GenerateTest(w io.Writer, opts GenOptions, files ...*config.CaseFile) error {
	if opts.Package == "" {
		return errors.New("package name is required")
	}
	if opts.FuncName == "" {
		opts.FuncName = "TestCaptures"
	}
	if !strings.HasPrefix(opts.FuncName, "Test") {
		return fmt.Errorf("test function name must start with Test: %s", opts.FuncName)
	}

	var entries []jen.Code
	for _, cf := range files {
		defaults, err := cf.DefaultFlags()
		if err != nil {
			return fmt.Errorf("%s: %w", cf.Path, err)
		}
		for i, c := range cf.Cases {
			entry, err := caseEntry(c, defaults)
			if err != nil {
				return fmt.Errorf("%s: cases[%d] (%s): %w", cf.Path, i, c.Label(), err)
			}
			entries = append(entries, entry)
		}
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by capmatch gen. DO NOT EDIT.")
	f.ImportAlias(captestPkg, "captest")

	f.Func().Id(opts.FuncName).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("name").String(),
			jen.Id("pattern").String(),
			jen.Id("subject").String(),
			jen.Id("flags").Qual(capturePkg, "Flags"),
			jen.Id("expect").Map(jen.Interface()).Interface(),
			jen.Id("negate").Bool(),
			jen.Id("required").Bool(),
		).Values(entries...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.Id("t").Dot("Run").Call(
				jen.Id("tt").Dot("name"),
				jen.Func().Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
					jen.Id("re").Op(":=").Qual("regexp", "MustCompile").Call(jen.Id("tt").Dot("pattern")),
					jen.List(jen.Id("actual"), jen.Id("ok")).Op(":=").Qual(capturePkg, "Match").Call(
						jen.Id("re"), jen.Id("tt").Dot("subject"), jen.Id("tt").Dot("flags"),
					),
					jen.If(jen.Op("!").Id("ok")).Block(
						jen.If(jen.Id("tt").Dot("required")).Block(
							jen.Id("t").Dot("Fatalf").Call(jen.Lit("%q does not match %q"), jen.Id("tt").Dot("pattern"), jen.Id("tt").Dot("subject")),
						),
						jen.Id("actual").Op("=").Qual(capturePkg, "Result").Values(),
					),
					jen.Line(),
					jen.Id("m").Op(":=").Qual(captestPkg, "HasCaptures").Call(
						jen.Id("t"), jen.Id("tt").Dot("expect"),
						jen.Qual(matchingPkg, "WithFlags").Call(jen.Id("tt").Dot("flags")),
					),
					jen.If(jen.Id("tt").Dot("negate")).Block(
						jen.Qual(captestPkg, "AssertNot").Call(jen.Id("t"), jen.Id("m"), jen.Id("actual")),
					).Else().Block(
						jen.Qual(captestPkg, "Assert").Call(jen.Id("t"), jen.Id("m"), jen.Id("actual")),
					),
				),
			),
		),
	)

	return f.Render(w)
}

func caseEntry(c *config.Case, defaults capture.Flags) (jen.Code, error) {
	flags, err := c.FlagsOr(defaults)
	if err != nil {
		return nil, err
	}
	m, err := matching.New(c.Expect, matching.WithFlags(flags))
	if err != nil {
		return nil, err
	}

	expected := m.Expectations()
	expect := jen.DictFunc(func(d jen.Dict) {
		for _, k := range m.Keys() {
			d[keyCode(k)] = expectationCode(expected[k])
		}
	})

	fields := jen.Dict{
		jen.Id("name"):    jen.Lit(c.Label()),
		jen.Id("pattern"): jen.Lit(c.Pattern),
		jen.Id("subject"): jen.Lit(c.Subject),
		jen.Id("flags"):   flagsCode(flags),
		jen.Id("expect"):  jen.Map(jen.Interface()).Interface().Values(expect),
	}
	if c.Negate {
		fields[jen.Id("negate")] = jen.True()
	}
	if c.MatchRequired() {
		fields[jen.Id("required")] = jen.True()
	}
	return jen.Values(fields), nil
}

func keyCode(k capture.Key) jen.Code {
	if k.IsNamed() {
		return jen.Lit(k.Name())
	}
	return jen.Lit(k.Index())
}

func expectationCode(e matching.Expectation) jen.Code {
	switch e.Kind() {
	case matching.KindCaptured:
		return jen.True()
	case matching.KindNotCaptured:
		return jen.False()
	case matching.KindEquals:
		return jen.Lit(e.Text())
	case matching.KindEqualsPair:
		first := jen.Lit(e.Text())
		if e.IsUnmatchedPair() {
			first = jen.Nil()
		}
		return jen.Index().Interface().Values(first, jen.Lit(e.Offset()))
	default:
		return jen.Nil()
	}
}

func flagsCode(f capture.Flags) jen.Code {
	var names []string
	if f.Has(capture.OffsetCapture) {
		names = append(names, "OffsetCapture")
	}
	if f.Has(capture.UnmatchedAsAbsent) {
		names = append(names, "UnmatchedAsAbsent")
	}
	if len(names) == 0 {
		return jen.Qual(capturePkg, "Flags").Call(jen.Lit(0))
	}
	code := jen.Qual(capturePkg, names[0])
	for _, n := range names[1:] {
		code = code.Op("|").Qual(capturePkg, n)
	}
	return code
}
