package config

import (
	"fmt"
	"strings"

	"github.com/getmockd/capmatch/pkg/capture"
)

// SupportedVersion is the case file format version understood by Load.
const SupportedVersion = "1"

// Match policies for subjects the pattern does not match.
const (
	// MatchOptional evaluates the expectations against an empty result.
	MatchOptional = "optional"
	// MatchRequired fails the case.
	MatchRequired = "required"
)

// CaseFile is a decoded case file.
type CaseFile struct {
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Flags   any     `json:"flags,omitempty" yaml:"flags,omitempty"`
	Cases   []*Case `json:"cases" yaml:"cases"`

	// Path is the file the cases were loaded from, if any.
	Path string `json:"-" yaml:"-"`
}

// Case is one capture check.
type Case struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Subject string `json:"subject" yaml:"subject"`
	Flags   any    `json:"flags,omitempty" yaml:"flags,omitempty"`
	Expect  any    `json:"expect" yaml:"expect"`

	// Negate expects the expectations not to hold.
	Negate bool `json:"negate,omitempty" yaml:"negate,omitempty"`

	// Match is MatchOptional (default) or MatchRequired.
	Match string `json:"match,omitempty" yaml:"match,omitempty"`
}

// DefaultFlags returns the file level flags, or capture.DefaultFlags when
// the file sets none.
func (f *CaseFile) DefaultFlags() (capture.Flags, error) {
	if f.Flags == nil {
		return capture.DefaultFlags, nil
	}
	flags, err := ParseFlagValue(f.Flags)
	if err != nil {
		return 0, fmt.Errorf("flags: %w", err)
	}
	return flags, nil
}

// FlagsOr returns the case flags, or defaults when the case sets none.
func (c *Case) FlagsOr(defaults capture.Flags) (capture.Flags, error) {
	if c.Flags == nil {
		return defaults, nil
	}
	return ParseFlagValue(c.Flags)
}

// Label returns the case name, or the pattern and subject when unnamed.
func (c *Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("/%s/ on %q", c.Pattern, c.Subject)
}

// MatchRequired reports whether a subject that does not match fails the case.
func (c *Case) MatchRequired() bool {
	return strings.EqualFold(c.Match, MatchRequired)
}

// Validate checks the decoded file beyond what the schema covers.
func (f *CaseFile) Validate() error {
	if f.Version != "" && f.Version != SupportedVersion {
		return fmt.Errorf("version: unsupported version %q, expected %q", f.Version, SupportedVersion)
	}
	if _, err := f.DefaultFlags(); err != nil {
		return err
	}
	for i, c := range f.Cases {
		if c == nil {
			return fmt.Errorf("cases[%d]: case is empty", i)
		}
		if c.Flags != nil {
			if _, err := ParseFlagValue(c.Flags); err != nil {
				return fmt.Errorf("cases[%d].flags: %w", i, err)
			}
		}
	}
	return nil
}
