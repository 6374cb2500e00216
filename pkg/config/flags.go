package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/getmockd/capmatch/pkg/capture"
)

// ParseFlagValue converts a decoded flags value to capture.Flags.
//
// Accepted forms are a flag list string ("offset_capture|unmatched_as_absent"),
// a list of flag names, or an integer bit mask. Bit masks must only carry
// known flags.
func ParseFlagValue(v any) (capture.Flags, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case capture.Flags:
		if !t.Valid() {
			return 0, fmt.Errorf("%w: %s", capture.ErrUnknownFlag, t)
		}
		return t, nil
	case string:
		return capture.ParseFlags(t)
	case []any, []string:
		names, err := cast.ToStringSliceE(t)
		if err != nil {
			return 0, fmt.Errorf("invalid flag list: %w", err)
		}
		return capture.ParseFlags(strings.Join(names, "|"))
	case bool:
		return 0, fmt.Errorf("invalid flags value %v", t)
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid flags value %v (%T)", v, v)
	}
	if n < 0 || n > 0xff || !capture.Flags(n).Valid() {
		return 0, fmt.Errorf("%w: bit mask %d", capture.ErrUnknownFlag, n)
	}
	return capture.Flags(n), nil
}
