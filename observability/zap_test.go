package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLoggerNil(t *testing.T) {
	t.Parallel()

	logger := NewZapLogger(nil)
	require.NotNil(t, logger)

	// Nil zap logger degrades to the noop implementation.
	assert.IsType(t, &noopLogger{}, logger)
}

func TestZapLoggerFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("request started",
		Field{Key: "method", Value: "GET"},
		Field{Key: "status", Value: 200},
	)
	logger.Error("request failed", Field{Key: "error", Value: "boom"})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "request started", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.EqualValues(t, 200, fields["status"])

	assert.Equal(t, "request failed", entries[1].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestZapLoggerWith(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	scoped := logger.With(Field{Key: "company_id", Value: 42})
	scoped.Info("asset created", Field{Key: "asset_id", Value: 7})

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 42, fields["company_id"])
	assert.EqualValues(t, 7, fields["asset_id"])
}

func TestNoopLoggerWith(t *testing.T) {
	t.Parallel()

	logger := NoopLogger()
	assert.Same(t, logger, logger.With(Field{Key: "k", Value: "v"}))
}
