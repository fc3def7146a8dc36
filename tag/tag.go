package tag

import (
	"errors"
	"fmt"
	"strings"
)

// Reserved tag names with built-in behavior.
const (
	// Default is synthesized for emissions that carry no tags.
	Default = "default"
	// Trace marks an emission for call-site capture. It participates in
	// matching like any other tag.
	Trace = "trace"

	// NameDelimiter separates tokens in a name-derived tag set, as in
	// "blog_sql_warning".
	NameDelimiter = "_"
)

// ErrInvalidTag indicates a malformed tag token.
var ErrInvalidTag = errors.New("invalid tag")

// Set is an immutable, case-normalized, deduplicated collection of tag
// tokens. Identity and matching ignore order and case; the original call
// order is preserved for rendering.
//
// The zero value is the empty set, which matches nothing.
type Set struct {
	ordered []string
	index   map[string]struct{}
}

// New creates a [Set] from the given tokens. Tokens are lowercased, trimmed
// of surrounding whitespace, and deduplicated. A token that is empty or
// contains interior whitespace is rejected with [ErrInvalidTag].
func New(tags ...string) (Set, error) {
	s := Set{
		ordered: make([]string, 0, len(tags)),
		index:   make(map[string]struct{}, len(tags)),
	}

	for _, t := range tags {
		norm := strings.ToLower(strings.TrimSpace(t))
		if norm == "" {
			return Set{}, fmt.Errorf("%w: empty token", ErrInvalidTag)
		}

		if strings.ContainsFunc(norm, isSpace) {
			return Set{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidTag, t)
		}

		if _, ok := s.index[norm]; ok {
			continue
		}

		s.index[norm] = struct{}{}
		s.ordered = append(s.ordered, norm)
	}

	return s, nil
}

// MustNew is like [New] but panics on a malformed token. Intended for
// statically known tag sets.
func MustNew(tags ...string) Set {
	s, err := New(tags...)
	if err != nil {
		panic(err)
	}

	return s
}

// ParseName derives a [Set] from a method-name-like identifier by splitting
// on [NameDelimiter]: "blog_sql_warning" yields {blog, sql, warning}. Empty
// tokens produced by leading, trailing, or doubled delimiters are dropped;
// a name with no usable tokens is rejected with [ErrInvalidTag].
func ParseName(name string) (Set, error) {
	var tokens []string

	for _, t := range strings.Split(name, NameDelimiter) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 0 {
		return Set{}, fmt.Errorf("%w: name %q has no tokens", ErrInvalidTag, name)
	}

	return New(tokens...)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

// Matches reports whether s and other share at least one tag. Matching is
// symmetric and never fails; the empty set matches nothing.
func (s Set) Matches(other Set) bool {
	// Probe with the smaller index.
	a, b := s, other
	if len(b.index) < len(a.index) {
		a, b = b, a
	}

	for t := range a.index {
		if _, ok := b.index[t]; ok {
			return true
		}
	}

	return false
}

// Has reports whether s contains the given tag, compared case-insensitively.
func (s Set) Has(t string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(t))]

	return ok
}

// IsEmpty reports whether s contains no tags.
func (s Set) IsEmpty() bool {
	return len(s.ordered) == 0
}

// Len returns the number of distinct tags in s.
func (s Set) Len() int {
	return len(s.ordered)
}

// Tags returns the normalized tags in original call order. The returned
// slice is a copy.
func (s Set) Tags() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)

	return out
}

// String renders the set for diagnostics, e.g. "{blog, sql, warning}".
func (s Set) String() string {
	return "{" + strings.Join(s.ordered, ", ") + "}"
}
