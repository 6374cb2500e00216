// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table creates an aligned table writer for w.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Palette colours status words.
type Palette struct {
	Pass func(a ...any) string
	Fail func(a ...any) string
	Warn func(a ...any) string
	Dim  func(a ...any) string
}

// NewPalette returns a palette, without colours when disabled is set.
// Colours are also off when stdout is not a terminal or NO_COLOR is set.
func NewPalette(disabled bool) Palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if disabled {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return Palette{
		Pass: mk(color.FgGreen, color.Bold),
		Fail: mk(color.FgRed, color.Bold),
		Warn: mk(color.FgYellow),
		Dim:  mk(color.Faint),
	}
}
