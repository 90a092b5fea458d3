package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestZapLogger_WithMergesFieldsAndApp(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core, "pets-api")

	l.With(map[string]any{"request_id": "r-1", "": "ignored"}).
		Info("pet created", map[string]any{"pet_id": "p-1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "pet created", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "pets-api", ctx["app"])
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.Equal(t, "p-1", ctx["pet_id"])
	assert.NotContains(t, ctx, "")
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewWithCore(core, "")

	l.Debug("nope", nil)
	l.Info("nope", nil)
	l.Error("boom", map[string]any{"err": errors.New("db down")})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "db down", logs.All()[0].ContextMap()["err"])
}
