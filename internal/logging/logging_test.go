package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug().Msg("hidden")
	logger.Info().Int("steps", 3).Msg("frame")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "frame", event["message"])
	assert.EqualValues(t, 3, event["steps"])
	assert.Contains(t, event, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "console")

	logger.Debug().Str("channel", "rotation").Msg("reset")

	out := buf.String()
	assert.Contains(t, out, "reset")
	assert.Contains(t, out, "channel")
	assert.Contains(t, out, "rotation")
	assert.NotContains(t, out, "{")
}

func TestSampled(t *testing.T) {
	var buf bytes.Buffer
	logger := Sampled(New(&buf, "debug", "json"))

	for range 50 {
		logger.Debug().Msg("teleport")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Less(t, len(lines), 50)
	assert.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], `"sampled":true`)
}
