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

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("message processed",
		String("outcome", "matched"),
		Int("symptoms", 2),
		Float64("confidence", 0.75),
		Bool("emergency", false),
		Duration("elapsed", 3*time.Millisecond),
		Strings("tags", []string{"fever", "headache"}),
	)
	log.Warn("keyword store unavailable", Err(errors.New("connection refused")))

	entries := observed.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "message processed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "matched", fields["outcome"])
	assert.EqualValues(t, 2, fields["symptoms"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "connection refused", entries[1].ContextMap()["error"])
}

func TestWithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core).Named("triage").With(String("session", "abc"))

	log.Debug("extractor pass complete")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "triage", entries[0].LoggerName)
	assert.Equal(t, "abc", entries[0].ContextMap()["session"])
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must not panic and must return usable children.
	log.Info("ignored")
	log.With(String("k", "v")).Named("child").Error("also ignored")
}
