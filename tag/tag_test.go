package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipperlog/chipper/tag"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       []string
		expected    []string
		expectError bool
	}{
		"single tag": {
			input:    []string{"debug"},
			expected: []string{"debug"},
		},
		"case normalized": {
			input:    []string{"DEBUG", "Sql"},
			expected: []string{"debug", "sql"},
		},
		"deduplicated preserving first position": {
			input:    []string{"sql", "blog", "SQL"},
			expected: []string{"sql", "blog"},
		},
		"surrounding whitespace trimmed": {
			input:    []string{"  debug  "},
			expected: []string{"debug"},
		},
		"empty token rejected": {
			input:       []string{"debug", ""},
			expectError: true,
		},
		"whitespace-only token rejected": {
			input:       []string{"   "},
			expectError: true,
		},
		"interior whitespace rejected": {
			input:       []string{"two words"},
			expectError: true,
		},
		"no tokens yields empty set": {
			input:    nil,
			expected: []string{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := tag.New(tc.input...)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, tag.ErrInvalidTag)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, s.Tags())
		})
	}
}

func TestParseName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    []string
		expectError bool
	}{
		"multi token name": {
			input:    "blog_sql_warning",
			expected: []string{"blog", "sql", "warning"},
		},
		"single token name": {
			input:    "debug",
			expected: []string{"debug"},
		},
		"doubled delimiter dropped": {
			input:    "general__info",
			expected: []string{"general", "info"},
		},
		"leading and trailing delimiters dropped": {
			input:    "_sql_",
			expected: []string{"sql"},
		},
		"empty name rejected": {
			input:       "",
			expectError: true,
		},
		"delimiters only rejected": {
			input:       "___",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := tag.ParseName(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, tag.ErrInvalidTag)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, s.Tags())
		})
	}
}

func TestParseNameMatchesExplicit(t *testing.T) {
	t.Parallel()

	parsed, err := tag.ParseName("general_info")
	require.NoError(t, err)

	explicit, err := tag.New("general", "info")
	require.NoError(t, err)

	assert.Equal(t, explicit.Tags(), parsed.Tags())
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		a        []string
		b        []string
		expected bool
	}{
		"identical sets": {
			a:        []string{"debug"},
			b:        []string{"debug"},
			expected: true,
		},
		"single shared tag": {
			a:        []string{"sql", "blog"},
			b:        []string{"blog", "warning"},
			expected: true,
		},
		"case insensitive intersection": {
			a:        []string{"SQL"},
			b:        []string{"sql"},
			expected: true,
		},
		"order insensitive": {
			a:        []string{"sql", "blog", "warning"},
			b:        []string{"warning", "blog", "sql"},
			expected: true,
		},
		"disjoint sets": {
			a:        []string{"sql"},
			b:        []string{"http"},
			expected: false,
		},
		"empty subscription matches nothing": {
			a:        []string{"debug"},
			b:        nil,
			expected: false,
		},
		"two empty sets": {
			a:        nil,
			b:        nil,
			expected: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a, err := tag.New(tc.a...)
			require.NoError(t, err)

			b, err := tag.New(tc.b...)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, a.Matches(b))
			// Matching is symmetric.
			assert.Equal(t, tc.expected, b.Matches(a))
		})
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	s := tag.MustNew("sql", "blog")

	assert.True(t, s.Has("sql"))
	assert.True(t, s.Has("SQL"))
	assert.True(t, s.Has(" blog "))
	assert.False(t, s.Has("warning"))
	assert.False(t, s.Has(""))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{blog, sql}", tag.MustNew("Blog", "SQL").String())
	assert.Equal(t, "{}", tag.Set{}.String())
}
