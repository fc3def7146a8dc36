package trace_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipperlog/chipper/trace"
)

func TestRuntimeCapture(t *testing.T) {
	t.Parallel()

	frame, ok := trace.Runtime{}.Capture(0)
	require.True(t, ok)

	assert.Equal(t, "trace_test.go", frame.File)
	assert.Positive(t, frame.Line)
	assert.Contains(t, frame.Function, "TestRuntimeCapture")
	assert.False(t, frame.IsZero())
}

func TestNoneCapture(t *testing.T) {
	t.Parallel()

	frame, ok := trace.None{}.Capture(0)
	assert.False(t, ok)
	assert.True(t, frame.IsZero())
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err          error
		expected     string
		expectStack  bool
		expectedText string
	}{
		"nil error": {
			err:      nil,
			expected: "",
		},
		"plain error": {
			err:      errors.New("sink closed"),
			expected: "sink closed",
		},
		"stack carrying error": {
			err:          pkgerrors.New("query failed"),
			expectStack:  true,
			expectedText: "query failed",
		},
		"wrapped stack carrying error": {
			err:          fmt.Errorf("emit: %w", pkgerrors.New("query failed")),
			expectStack:  true,
			expectedText: "emit: query failed",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out := trace.FormatError(tc.err)

			if !tc.expectStack {
				assert.Equal(t, tc.expected, out)

				return
			}

			assert.Contains(t, out, tc.expectedText)
			// The stack lists this test file.
			assert.Contains(t, out, "trace_test.go")
		})
	}
}
