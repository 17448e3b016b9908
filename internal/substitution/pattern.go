// Package substitution parses {{placeholder}} templates used by tool
// commands, descriptions and output declarations, and decides which
// placeholders are legal in which tool field.
package substitution

import (
	"strings"

	"github.com/specialistvlad/toolchaingo/internal/builderr"
)

const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// Segment is one piece of a Pattern: literal text or a placeholder.
type Segment struct {
	Kind    Kind
	Literal string
}

// Pattern is a parsed template.
type Pattern struct {
	segments []Segment
	kinds    []Kind
}

// Parse compiles raw into a Pattern. Every "{{" must begin a known
// placeholder; anything else fails with UnknownPlaceholder.
func Parse(raw string) (Pattern, error) {
	var p Pattern
	cur := 0
	for {
		next := strings.Index(raw[cur:], openMarker)
		if next < 0 {
			break
		}
		next += cur
		if next > cur {
			p.segments = append(p.segments, Segment{Kind: Literal, Literal: raw[cur:next]})
		}

		kind, width := matchPlaceholder(raw[next:])
		if kind == Literal {
			return Pattern{}, builderr.New(builderr.UnknownPlaceholder, "Unknown substitution pattern").
				WithDetail("Found a {{ at offset %d and did not find a known substitution following it.", next)
		}
		p.segments = append(p.segments, Segment{Kind: kind})
		cur = next + width
	}
	if cur < len(raw) {
		p.segments = append(p.segments, Segment{Kind: Literal, Literal: raw[cur:]})
	}
	p.kinds = requiredKinds(p.segments)
	return p, nil
}

// MustParse is Parse for patterns known to be valid. It panics on error.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// matchPlaceholder reports the kind of the placeholder that s starts with and
// the number of bytes it spans, or Literal if s does not start with one.
func matchPlaceholder(s string) (Kind, int) {
	end := strings.Index(s, closeMarker)
	if end < 0 {
		return Literal, 0
	}
	kind, ok := KindByName(s[len(openMarker):end])
	if !ok {
		return Literal, 0
	}
	return kind, end + len(closeMarker)
}

func requiredKinds(segments []Segment) []Kind {
	var bits Bits
	for _, s := range segments {
		bits.Add(s.Kind)
	}
	return bits.Kinds()
}

// Segments returns a copy of the parsed segments.
func (p Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// RequiredKinds returns the distinct placeholders referenced by p, in
// declaration order of the Kind enum.
func (p Pattern) RequiredKinds() []Kind {
	return append([]Kind(nil), p.kinds...)
}

// Empty reports whether p has no segments. An empty pattern means the field
// was not configured.
func (p Pattern) Empty() bool {
	return len(p.segments) == 0
}

// Equal compares the segment sequences of p and other.
func (p Pattern) Equal(other Pattern) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// String reconstructs the source template.
func (p Pattern) String() string {
	var sb strings.Builder
	for _, s := range p.segments {
		if s.Kind == Literal {
			sb.WriteString(s.Literal)
			continue
		}
		sb.WriteString(s.Kind.String())
	}
	return sb.String()
}
