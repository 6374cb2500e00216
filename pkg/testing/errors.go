package testing

import (
	"errors"
	"fmt"

	"github.com/getmockd/capmatch/pkg/matching"
)

// ArgumentError reports an invalid argument passed to an assertion.
type ArgumentError struct {
	// Position is the 1-based position of the argument.
	Position int
	// Function names the called function, e.g. "testing.HasCaptures()".
	Function string
	// Expected describes what the argument must be.
	Expected string
	// Given describes what was passed instead.
	Given string
	// Err is the underlying error.
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("Argument %d passed to %s must be %s, %s given.",
		e.Position, e.Function, e.Expected, e.Given)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// expectationsArgument wraps a matching.New error for argument pos of fn.
func expectationsArgument(fn string, pos int, expected any, err error) *ArgumentError {
	given := matching.KindOf(expected)
	var verr *matching.ValidationError
	if errors.As(err, &verr) {
		given = verr.Error()
	}
	return &ArgumentError{
		Position: pos,
		Function: fn,
		Expected: "an array of valid expectations",
		Given:    given,
		Err:      err,
	}
}
