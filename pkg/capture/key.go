package capture

import (
	"sort"
	"strconv"
	"strings"
)

// Key identifies a capture group, either by index or by name.
// The zero Key is the whole-match group 0.
type Key struct {
	name  string
	index int
	named bool
}

// Index returns the key of the numbered group i.
func Index(i int) Key {
	return Key{index: i}
}

// Name returns the key of a named group.
// Names that are canonical decimal integers ("0", "12", "-3") address the
// numbered group instead, so keys decoded from JSON objects line up with
// keys decoded from YAML or built with Index.
func Name(s string) Key {
	if i, ok := canonicalIndex(s); ok {
		return Index(i)
	}
	return Key{name: s, named: true}
}

// IsNamed reports whether k refers to a named group.
func (k Key) IsNamed() bool {
	return k.named
}

// Name returns the group name, or "" for numbered groups.
func (k Key) Name() string {
	return k.name
}

// Index returns the group index, or -1 for named groups.
func (k Key) Index() int {
	if k.named {
		return -1
	}
	return k.index
}

// String returns the bare key token.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// Quoted returns the key token used in diagnostics: names are single-quoted
// with quotes, backslashes and NUL escaped; indices are left bare.
func (k Key) Quoted() string {
	if !k.named {
		return strconv.Itoa(k.index)
	}
	return "'" + slashEscaper.Replace(k.name) + "'"
}

var slashEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)

// Less orders numbered groups before named ones, indices ascending and
// names lexicographically.
func (k Key) Less(other Key) bool {
	if k.named != other.named {
		return !k.named
	}
	if k.named {
		return k.name < other.name
	}
	return k.index < other.index
}

// SortKeys sorts keys in place using Key.Less.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// canonicalIndex reports whether s is a decimal integer without leading
// zeros, sign-only or "-0" forms.
func canonicalIndex(s string) (int, bool) {
	if s == "" || s == "-" || s == "-0" {
		return 0, false
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
