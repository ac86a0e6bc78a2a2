package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New()
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name, level, format string
		wantLevel           zerolog.Level
		wantJSON            bool
	}{
		{"defaults", "", "", zerolog.InfoLevel, false},
		{"debug text", "debug", "text", zerolog.DebugLevel, false},
		{"upper case", "WARN", "JSON", zerolog.WarnLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log, err := Configure(buf, tt.level, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())

			log.Error().Str("file", "incoming-2025").Msg("boom")
			out := buf.String()
			assert.Contains(t, out, "boom")
			if tt.wantJSON {
				assert.Contains(t, out, `"file":"incoming-2025"`)
			} else {
				assert.Contains(t, out, "file=incoming-2025")
			}
		})
	}
}

func TestConfigure_Filters(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := Configure(buf, "error", "json")
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestConfigure_Invalid(t *testing.T) {
	_, err := Configure(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = Configure(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	l := FromContext(ctx)
	l.Info().Msg("test")

	assert.NotZero(t, buf.Len())
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf), map[string]any{
		"dir":     "ledger",
		"records": 12,
	})
	log.Info().Msg("loaded")

	assert.Contains(t, buf.String(), `"dir":"ledger"`)
	assert.Contains(t, buf.String(), `"records":12`)
}
