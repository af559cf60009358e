package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := SetupLogger(Config{Output: &buf, Level: slog.LevelInfo})
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("rendered", "table", "people")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=rendered")
	require.Contains(t, buf.String(), "table=people")
}

func TestMultiHandler(t *testing.T) {
	var info, debug bytes.Buffer
	handler := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}
	require.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	require.False(t, handler.Enabled(context.Background(), slog.LevelDebug-1))

	logger := slog.New(handler).With("component", "test").WithGroup("event")
	logger.Debug("debug only", "type", "sort")
	logger.Info("both", "type", "selectAll")

	require.NotContains(t, info.String(), "debug only")
	require.Contains(t, info.String(), "component=test")
	require.Contains(t, info.String(), "event.type=selectAll")
	require.Contains(t, debug.String(), "debug only")
	require.Contains(t, debug.String(), "event.type=sort")
}
