package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTemplate indicates a malformed template string or a placeholder that
// does not name a known item or group.
var ErrTemplate = errors.New("invalid template")

// expand substitutes named placeholders of the form {name} with entries from
// values. Literal braces are written as {{ and }}. Every placeholder must
// name a key in values; optional contributions are handled by the caller
// supplying an empty string rather than omitting the key.
func expand(tmpl string, values map[string]string) (string, error) {
	var sb strings.Builder

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]

		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')

				i++

				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrTemplate, tmpl)
			}

			name := tmpl[i+1 : i+1+end]

			val, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: unknown placeholder %q in %q", ErrTemplate, name, tmpl)
			}

			sb.WriteString(val)

			i += end + 1

		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')

				i++

				continue
			}

			return "", fmt.Errorf("%w: unmatched %q in %q", ErrTemplate, "}", tmpl)

		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}
