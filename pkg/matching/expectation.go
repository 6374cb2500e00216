package matching

import (
	"fmt"
	"strconv"

	"github.com/getmockd/capmatch/pkg/capture"
)

// Kind tells what an Expectation requires of its group.
type Kind uint8

// Expectation kinds.
const (
	kindInvalid Kind = iota
	// KindNotCaptured requires the group not to be captured.
	KindNotCaptured
	// KindCaptured requires the group to be captured, with any value.
	KindCaptured
	// KindEquals requires the group value to equal a string.
	KindEquals
	// KindEqualsPair requires the group value to equal a value/offset pair.
	KindEqualsPair
	// KindUnmatched requires the group to be present as the absent marker.
	KindUnmatched
)

func (k Kind) String() string {
	switch k {
	case KindNotCaptured:
		return "not-captured"
	case KindCaptured:
		return "captured"
	case KindEquals:
		return "equals"
	case KindEqualsPair:
		return "equals-pair"
	case KindUnmatched:
		return "unmatched"
	default:
		return "invalid"
	}
}

// Expectation is a validated requirement on one capture group.
type Expectation struct {
	kind      Kind
	text      string
	unmatched bool
	offset    int
}

// NotCaptured expects the group not to be captured (false).
func NotCaptured() Expectation {
	return Expectation{kind: KindNotCaptured}
}

// Captured expects the group to be captured with any value (true).
func Captured() Expectation {
	return Expectation{kind: KindCaptured}
}

// Equals expects the group value to be exactly s.
//
// The comparison is against the value as stored in the result. With
// capture.OffsetCapture the stored value is a pair, so Equals("X") does not
// match capture.At("X", 3); use EqualsPair or Captured there.
func Equals(s string) Expectation {
	return Expectation{kind: KindEquals, text: s}
}

// EqualsPair expects the group to hold the pair (s, offset).
func EqualsPair(s string, offset int) Expectation {
	return Expectation{kind: KindEqualsPair, text: s, offset: offset}
}

// UnmatchedPair expects the group to hold the pair (capture.Absent, offset).
func UnmatchedPair(offset int) Expectation {
	return Expectation{kind: KindEqualsPair, unmatched: true, offset: offset}
}

// Unmatched expects the group to be present with the absent marker.
func Unmatched() Expectation {
	return Expectation{kind: KindUnmatched}
}

// Kind returns the expectation kind.
func (e Expectation) Kind() Kind { return e.kind }

// Text returns the expected string of Equals and EqualsPair expectations.
func (e Expectation) Text() string { return e.text }

// Offset returns the expected offset of pair expectations.
func (e Expectation) Offset() int { return e.offset }

// IsUnmatchedPair reports whether a pair expectation carries the absent
// marker instead of a string.
func (e Expectation) IsUnmatchedPair() bool { return e.kind == KindEqualsPair && e.unmatched }

// IsPresence reports whether e only speaks about presence (true or false).
func (e Expectation) IsPresence() bool {
	return e.kind == KindNotCaptured || e.kind == KindCaptured
}

// Value returns the value e stands for in a projection: a bool for presence
// expectations, otherwise the canonical capture value.
func (e Expectation) Value() any {
	switch e.kind {
	case KindNotCaptured:
		return false
	case KindCaptured:
		return true
	case KindEquals:
		return e.text
	case KindEqualsPair:
		if e.unmatched {
			return capture.UnmatchedAt(e.offset)
		}
		return capture.At(e.text, e.offset)
	case KindUnmatched:
		return capture.Absent
	default:
		return nil
	}
}

func (e Expectation) String() string {
	switch e.kind {
	case KindNotCaptured, KindCaptured:
		return strconv.FormatBool(e.kind == KindCaptured)
	case kindInvalid:
		return "invalid"
	default:
		return capture.Format(e.Value())
	}
}

// ParseExpectation converts a dynamic expectation value. Accepted forms are
// bool, string, nil or capture.Absent, an Expectation, a capture.Pair and
// any two-element slice or array holding a string (or the absent marker) and
// an integer. Anything else reports false.
func ParseExpectation(v any) (Expectation, bool) {
	switch x := v.(type) {
	case Expectation:
		return x, x.kind != kindInvalid
	case bool:
		if x {
			return Captured(), true
		}
		return NotCaptured(), true
	case string:
		return Equals(x), true
	}
	if capture.IsAbsent(v) {
		return Unmatched(), true
	}

	first, second, ok := capture.SplitPair(v)
	if !ok {
		return Expectation{}, false
	}
	offset, ok := capture.IntValue(second)
	if !ok {
		return Expectation{}, false
	}
	if capture.IsAbsent(first) {
		return UnmatchedPair(offset), true
	}
	if s, isString := first.(string); isString {
		return EqualsPair(s, offset), true
	}
	return Expectation{}, false
}

// MustParseExpectation is like ParseExpectation but panics on invalid input.
func MustParseExpectation(v any) Expectation {
	e, ok := ParseExpectation(v)
	if !ok {
		panic(fmt.Sprintf("matching: invalid expectation %#v", v))
	}
	return e
}
