package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestInitZapRoutesSlogIntoZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	InitZap(zap.New(core), "debug")
	t.Cleanup(func() { InitSlog("info") })

	adapter := NewSlogAdapter().With("component", "test")
	adapter.Warn("something happened", "asset_id", "a")

	entries := logs.FilterMessage("something happened").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "test", fields["component"])
	require.Equal(t, "a", fields["asset_id"])
}
