package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsEmbeddedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Debug("hello", "k", "v")

	require.Same(t, logger, FromContext(ctx))
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestFromContext_MissingLoggerDiscards(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("nobody is listening") })
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(WithLogger(context.Background(), logger), "session", "s1")
	FromContext(ctx).Info("tick")

	assert.Contains(t, buf.String(), "session=s1")
}
