package substitution

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/toolchaingo/internal/builderr"
)

// List is an ordered list of patterns, as used by "outputs".
type List struct {
	patterns []Pattern
	kinds    []Kind
}

// ParseList parses each element of raw. It fails fast on the first element
// error and fails with EmptyList when raw is empty.
func ParseList(raw []string) (List, error) {
	if len(raw) == 0 {
		return List{}, builderr.New(builderr.EmptyList, "List is empty.")
	}
	var (
		l    List
		bits Bits
	)
	l.patterns = make([]Pattern, 0, len(raw))
	for i, s := range raw {
		p, err := Parse(s)
		if err != nil {
			if be, ok := err.(*builderr.Error); ok && be.Detail != "" {
				be.Detail = be.Detail + " (list element " + strconv.Itoa(i) + ")"
			}
			return List{}, err
		}
		bits.Add(p.kinds...)
		l.patterns = append(l.patterns, p)
	}
	l.kinds = bits.Kinds()
	return l, nil
}

// Patterns returns a copy of the list.
func (l List) Patterns() []Pattern {
	return append([]Pattern(nil), l.patterns...)
}

// Len returns the number of patterns.
func (l List) Len() int {
	return len(l.patterns)
}

// RequiredKinds is the union of every element's placeholders.
func (l List) RequiredKinds() []Kind {
	return append([]Kind(nil), l.kinds...)
}

// Contains reports whether some element is structurally equal to p.
func (l List) Contains(p Pattern) bool {
	for _, e := range l.patterns {
		if e.Equal(p) {
			return true
		}
	}
	return false
}

// Strings renders each element back to its template.
func (l List) Strings() []string {
	out := make([]string, len(l.patterns))
	for i, p := range l.patterns {
		out[i] = p.String()
	}
	return out
}

func (l List) String() string {
	return "[" + strings.Join(l.Strings(), ", ") + "]"
}
