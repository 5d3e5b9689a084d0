package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tallysheet/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")

	assert.Contains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "debug message")
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSource(ctx, "registry")
	ctx = logging.WithPath(ctx, "/data/membership.csv")

	logging.FromContext(ctx).Info().Msg("loaded")

	tl.AssertContains(t, `"source":"registry"`)
	tl.AssertContains(t, "/data/membership.csv")
	tl.AssertContains(t, "loaded")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled on purpose
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestWithRunID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	ctx = logging.WithRunID(ctx, "")
	id := logging.RunID(ctx)
	require.NotEmpty(t, id)

	logging.Ctx(ctx).Info().Msg("run started")
	tl.AssertContains(t, id)

	fixed := logging.WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", logging.RunID(fixed))
}

func TestWithFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFields(ctx, map[string]any{"rows": 3, "dry_run": true})

	logging.FromContext(ctx).Info().Msg("summary")

	tl.AssertContains(t, `"rows":3`)
	tl.AssertContains(t, `"dry_run":true`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name  string
		level string
		check func(t *testing.T, output string)
	}{
		{
			name:  "debug level",
			level: "debug",
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"level":"debug"`)
			},
		},
		{
			name:  "error level only",
			level: "error",
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"info"`)
				assert.Contains(t, output, `"level":"error"`)
			},
		},
		{
			name:  "unknown level falls back to info",
			level: "chatty",
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"debug"`)
				assert.Contains(t, output, `"level":"info"`)
			},
		},
	}

	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			}).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tt.check(t, buf.String())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("membership", "100").Msg("duplicate")

	tl.AssertContains(t, "duplicate")
	assert.Equal(t, 1, tl.Count())
	assert.True(t, strings.Contains(tl.Lines()[0], `"membership":"100"`))

	tl.Clear()
	assert.Zero(t, tl.Count())
}
