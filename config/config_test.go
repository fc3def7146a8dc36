package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipperlog/chipper"
	"github.com/chipperlog/chipper/config"
	"github.com/chipperlog/chipper/stringtest"
	"github.com/chipperlog/chipper/tag"
	"github.com/chipperlog/chipper/target"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expectError bool
		check       func(*testing.T, *config.Config)
	}{
		"full document": {
			input: stringtest.Input(`
				handlers:
				  - name: sql
				    tags: [sql, query]
				    target:
				      filename: sql.log
				      stderr: true
				    formatter:
				      tag_delimiter: "|"
				default:
				  target:
				    stdout: true
				delivery: unmatched`),
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				require.Len(t, cfg.Handlers, 1)
				assert.Equal(t, "sql", cfg.Handlers[0].Name)
				assert.Equal(t, []string{"sql", "query"}, cfg.Handlers[0].Tags)
				assert.Equal(t, "sql.log", cfg.Handlers[0].Target.Filename)
				assert.True(t, cfg.Handlers[0].Target.Stderr)
				require.NotNil(t, cfg.Handlers[0].Formatter)
				require.NotNil(t, cfg.Handlers[0].Formatter.TagDelimiter)
				assert.Equal(t, "|", *cfg.Handlers[0].Formatter.TagDelimiter)
				require.NotNil(t, cfg.Default)
				assert.True(t, cfg.Default.Target.Stdout)
				assert.Equal(t, "unmatched", cfg.Delivery)
			},
		},
		"empty document": {
			input: "",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				assert.Empty(t, cfg.Handlers)
				assert.Nil(t, cfg.Default)
			},
		},
		"unknown field rejected": {
			input: stringtest.JoinLF(
				"handlers: []",
				"severity: debug",
			),
			expectError: true,
		},
		"malformed yaml rejected": {
			input:       "handlers: [",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Parse([]byte(tc.input))
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, config.ErrConfig)

				return
			}

			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chipper.yaml")
	doc := stringtest.Input(`
		handlers:
		  - name: debug
		    tags: [debug]`)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Handlers, 1)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("builds configured handlers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfg := &config.Config{
			Handlers: []config.Handler{
				{
					Name: "sql",
					Tags: []string{"sql", "query"},
					Target: target.Spec{
						Filename: filepath.Join(dir, "sql.log"),
					},
				},
			},
		}

		logger, err := cfg.Build()
		require.NoError(t, err)

		handlers := logger.Handlers()
		require.Len(t, handlers, 1)
		assert.Equal(t, "sql", handlers[0].Name())
		assert.Equal(t, []string{"sql", "query"}, handlers[0].Tags().Tags())

		// The built logger routes as configured.
		require.NoError(t, logger.Emit("select 1", "sql"))

		data, err := os.ReadFile(filepath.Join(dir, "sql.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "select 1")
	})

	t.Run("empty document builds a default logger", func(t *testing.T) {
		t.Parallel()

		logger, err := (&config.Config{}).Build()
		require.NoError(t, err)
		assert.Empty(t, logger.Handlers())
	})
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg *config.Config
	}{
		"handler without name": {
			cfg: &config.Config{
				Handlers: []config.Handler{{Tags: []string{"sql"}}},
			},
		},
		"handler without tags": {
			cfg: &config.Config{
				Handlers: []config.Handler{{Name: "sql"}},
			},
		},
		"handler with malformed tag": {
			cfg: &config.Config{
				Handlers: []config.Handler{{Name: "sql", Tags: []string{"two words"}}},
			},
		},
		"handler with bad template": {
			cfg: &config.Config{
				Handlers: []config.Handler{{
					Name:      "sql",
					Tags:      []string{"sql"},
					Formatter: &config.Formatter{Template: ptr("{bogus}")},
				}},
			},
		},
		"bad default formatter": {
			cfg: &config.Config{
				Default: &config.Default{
					Formatter: &config.Formatter{TraceTemplate: ptr("{oops")},
				},
			},
		},
		"unknown delivery policy": {
			cfg: &config.Config{Delivery: "sometimes"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.cfg.Build()
			require.Error(t, err)
			require.ErrorIs(t, err, config.ErrConfig)
		})
	}
}

func TestParseDelivery(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    chipper.DeliveryPolicy
		expectError bool
	}{
		"empty defaults to always": {input: "", expected: chipper.DeliverAlways},
		"always":                   {input: "always", expected: chipper.DeliverAlways},
		"unmatched":                {input: "unmatched", expected: chipper.DeliverUnmatched},
		"case insensitive":         {input: "UNMATCHED", expected: chipper.DeliverUnmatched},
		"unknown":                  {input: "sometimes", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			policy, err := config.ParseDelivery(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, config.ErrConfig)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, policy)
		})
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := config.Schema()

	out, err := json.Marshal(schema)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "handlers")
	assert.Contains(t, got, "tag_delimiter")
	assert.Contains(t, got, "unmatched")
	assert.Contains(t, got, "draft-07")
}

func TestTagNormalizationSurvivesBuild(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Handlers: []config.Handler{
			{Name: "warn", Tags: []string{"Warning", "WARNING", "sql"}},
		},
	}

	logger, err := cfg.Build()
	require.NoError(t, err)

	subscription := logger.Handlers()[0].Tags()
	assert.Equal(t, []string{"warning", "sql"}, subscription.Tags())
	assert.True(t, subscription.Matches(tag.MustNew("SQL")))
}

func ptr(s string) *string {
	return &s
}
