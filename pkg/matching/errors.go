package matching

import (
	"errors"
	"strings"

	"github.com/getmockd/capmatch/pkg/capture"
)

// ErrNotMapping is returned by New when the expectations are not a mapping
// of group keys.
var ErrNotMapping = errors.New("expectations must be a mapping of capture group keys")

// ValidationError lists every expectation key whose value is not a valid
// expectation.
type ValidationError struct {
	// Keys holds the offending keys in key order.
	Keys []capture.Key
}

// Tokens returns the diagnostic tokens of the offending keys.
func (e *ValidationError) Tokens() []string {
	tokens := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		tokens[i] = k.Quoted()
	}
	return tokens
}

// Error reads "invalid expectation at key 'foo'" or
// "invalid expectations at keys 0, 2".
func (e *ValidationError) Error() string {
	what, where := "expectation", "key"
	if len(e.Keys) > 1 {
		what, where = "expectations", "keys"
	}
	return "invalid " + what + " at " + where + " " + strings.Join(e.Tokens(), ", ")
}
