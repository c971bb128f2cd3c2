package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInitialize_ProductionWritesToLogDir(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	dir := t.TempDir()
	require.NoError(t, Initialize(Config{
		Level:       "debug",
		LogDir:      dir,
		Environment: "production",
		ServiceName: "deptsite-test",
	}))

	Info("hello", zap.String("k", "v"))
	Sync()

	assert.FileExists(t, dir+"/app.log")
}

func TestHelpersAreSafeBeforeInitialize(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })
	Log = zap.NewNop()

	assert.NotPanics(t, func() {
		Info("info")
		Debug("debug")
		Warn("warn")
		Error("error")
		LogHTTPRequest(context.Background(), "GET", "/", 200, 0.01)
		LogAPICall(context.Background(), "db", "op", "error", 0.1)
		With(zap.Int("n", 1)).Info("child")
	})
}
