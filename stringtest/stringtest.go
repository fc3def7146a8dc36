// Package stringtest provides helpers for constructing expected multi-line
// test output, such as rendered log lines and YAML configuration documents,
// with explicit line endings.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected log output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"[DEBUG] : first",
//		"[DEBUG] : second",
//	) // -> "[DEBUG] : first\n[DEBUG] : second"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Input dedents a raw-string literal: one leading and one trailing newline
// are dropped and the common leading whitespace of the remaining lines is
// stripped. Use this to embed configuration documents in tests without
// fighting Go's raw-string indentation.
//
// Example:
//
//	doc := stringtest.Input(`
//	    handlers:
//	      - name: sql
//	        tags: [sql]`)
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := commonIndent(lines)
	if indent == "" {
		return s
	}

	for i, line := range lines {
		trimmed := strings.TrimPrefix(line, indent)
		if strings.TrimSpace(trimmed) == "" {
			trimmed = strings.TrimRight(trimmed, " \t")
		}

		lines[i] = trimmed
	}

	return strings.Join(lines, "\n")
}

// commonIndent returns the longest whitespace prefix shared by every
// non-blank line.
func commonIndent(lines []string) string {
	indent := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		ws := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if first {
			indent = ws
			first = false

			continue
		}

		for !strings.HasPrefix(line, indent) {
			indent = indent[:len(indent)-1]
		}
	}

	return indent
}
