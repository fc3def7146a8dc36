package format

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// TagFormatter transforms a single tag before it is rendered through the
// tag template. Transforms run synchronously per tag and must be pure.
type TagFormatter func(string) string

// Uppercase trims surrounding whitespace and uppercases the tag. This is the
// default transform.
func Uppercase(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// Identity returns the tag unchanged.
func Identity(t string) string {
	return t
}

// Styled renders the tag through the given lipgloss style. Combine with
// other transforms via [Chain]:
//
//	format.WithTagFormatter(format.Chain(format.Uppercase, format.Styled(style)))
func Styled(style lipgloss.Style) TagFormatter {
	return func(t string) string {
		return style.Render(t)
	}
}

// Chain composes transforms left to right.
func Chain(fs ...TagFormatter) TagFormatter {
	return func(t string) string {
		for _, f := range fs {
			t = f(t)
		}

		return t
	}
}
