package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	l.Info("hello",
		String("s", "v"),
		Int("i", 7),
		Int64("i64", 8),
		Float64("f", 1.5),
		Bool("b", true),
		Duration("d", time.Second),
		Err(errors.New("boom")),
		Any("a", []int{1, 2}),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "v", fields["s"])
	assert.Equal(t, int64(7), fields["i"])
	assert.Equal(t, int64(8), fields["i64"])
	assert.Equal(t, 1.5, fields["f"])
	assert.Equal(t, true, fields["b"])
	assert.Equal(t, "boom", fields["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).With(String("component", "resolver")).Named("entity")

	l.Warn("careful")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "entity", entries[0].LoggerName)
	assert.Equal(t, "resolver", entries[0].ContextMap()["component"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	// Must not panic and must keep returning a usable logger.
	l.Debug("a")
	l.Info("b", Int("x", 1))
	l.Error("c")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("sub"))
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("via default")
	require.Len(t, logs.All(), 1)

	SetDefault(nil)
	assert.NotNil(t, Default())
}
