package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("organization", "acme").Info("created")

	entry := logLine(t, &buf)
	assert.Equal(t, "created", entry["msg"])
	assert.Equal(t, "acme", entry["organization"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WarnLevel, &buf)

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Warn("emitted")
	assert.NotZero(t, buf.Len())
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ErrorLevel, &buf)

	logger.WithError(errors.New("boom")).Error("failed")

	entry := logLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])

	// nil errors add nothing
	assert.Same(t, logger, logger.WithError(nil))
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithFields(map[string]interface{}{
		"a": 1,
		"b": "two",
	}).Info("multi")

	entry := logLine(t, &buf)
	assert.Equal(t, float64(1), entry["a"])
	assert.Equal(t, "two", entry["b"])
}

func TestContextPlumbing(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithAdminID(ctx, "admin-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "admin-1", GetAdminID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))

	var buf bytes.Buffer
	ctx = WithLogger(ctx, NewLogger(InfoLevel, &buf))
	FromContext(ctx).Info("traced")

	entry := logLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "admin-1", entry["admin_id"])
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
}
