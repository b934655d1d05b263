package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aboagye/studyflow/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(logger.WARN),
		logger.WithColors(false),
	)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestFieldsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	derived := log.WithPrefix("planner").WithFields(map[string]any{
		"request_id": "abc123",
		"attempt":    2,
	})
	derived.Info("ranked %d courses", 3)

	out := buf.String()
	assert.Contains(t, out, "[planner]")
	assert.Contains(t, out, "ranked 3 courses")
	assert.Contains(t, out, "attempt=2 request_id=abc123")

	// Deriving must not mutate the parent.
	buf.Reset()
	log.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
	assert.NotContains(t, buf.String(), "[planner]")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, logger.Default(), logger.FromContext(ctx))

	var buf bytes.Buffer
	scoped := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	ctx = logger.NewContext(ctx, scoped)
	assert.Same(t, scoped, logger.FromContext(ctx))
}
