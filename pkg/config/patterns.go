package config

import (
	"fmt"
	"regexp"

	"github.com/patrickmn/go-cache"
)

// patterns holds compiled case patterns. Case files tend to repeat a pattern
// across many cases; entries never expire.
var patterns = cache.New(cache.NoExpiration, 0)

// compilePattern returns the compiled form of expr, compiling it on first use.
func compilePattern(expr string) (*regexp.Regexp, error) {
	if v, ok := patterns.Get(expr); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	patterns.SetDefault(expr, re)
	return re, nil
}
