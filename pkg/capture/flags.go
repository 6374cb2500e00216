package capture

import (
	"errors"
	"fmt"
	"strings"
)

// Flags configures which value shapes a result may carry.
type Flags uint8

const (
	// UnmatchedAsAbsent reports groups that did not participate as Absent
	// instead of omitting them or using "".
	UnmatchedAsAbsent Flags = 1 << iota
	// OffsetCapture wraps every value in a Pair with its byte offset.
	OffsetCapture

	// DefaultFlags matches the usual calling convention for capture checks.
	DefaultFlags = OffsetCapture | UnmatchedAsAbsent

	allFlags = OffsetCapture | UnmatchedAsAbsent
)

// ErrUnknownFlag is returned by ParseFlags for unrecognized flag names.
var ErrUnknownFlag = errors.New("unknown capture flag")

var flagNames = map[string]Flags{
	"offset_capture":         OffsetCapture,
	"preg_offset_capture":    OffsetCapture,
	"unmatched_as_absent":    UnmatchedAsAbsent,
	"unmatched_as_null":      UnmatchedAsAbsent,
	"preg_unmatched_as_null": UnmatchedAsAbsent,
	"none":                   0,
}

// Has reports whether all bits of other are set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// Valid reports whether f only carries known bits.
func (f Flags) Valid() bool {
	return f&^allFlags == 0
}

// String renders f as a "|"-joined list of flag names, or "none".
func (f Flags) String() string {
	var parts []string
	if f.Has(OffsetCapture) {
		parts = append(parts, "offset_capture")
	}
	if f.Has(UnmatchedAsAbsent) {
		parts = append(parts, "unmatched_as_absent")
	}
	if rest := f &^ allFlags; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a list of flag names separated by "|", "," or spaces.
// Names are case-insensitive; the PREG_ spellings are accepted as aliases.
// An empty string yields zero flags.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '\t'
	})
	for _, field := range fields {
		bit, ok := flagNames[strings.ToLower(field)]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, field)
		}
		f |= bit
	}
	return f, nil
}
