package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithFields_MergesIntoContextLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	ctx := WithFields(context.Background(), zap.String("session_id", "abc"))
	ctx = WithFields(ctx, zap.String("contract", "0x1"))

	InfoCtx(ctx, "probing")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["session_id"])
	assert.Equal(t, "0x1", fields["contract"])
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	parent := WithFields(context.Background(), zap.String("session_id", "abc"))
	_ = WithFields(parent, zap.String("token_id", "7"))

	DebugCtx(parent, "parent only")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["session_id"])
	_, ok := fields["token_id"]
	assert.False(t, ok)
}

func TestInitialize_WithoutSentry(t *testing.T) {
	previous := log
	t.Cleanup(func() { log = previous })

	require.NoError(t, Initialize(Config{Debug: true}))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContext_NilContextFallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	//nolint:staticcheck // nil context is tolerated
	FromContext(nil).Info("no context")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "no context", logs.All()[0].Message)
}

func TestErrorCtx(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	ctx := WithFields(context.Background(), zap.String("request_id", "r1"))
	ErrorCtx(ctx, errors.New("boom"))
	ErrorCtx(ctx, nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].Message)
	assert.Equal(t, "error occurred", logs.All()[1].Message)
	assert.Equal(t, "r1", logs.All()[1].ContextMap()["request_id"])
}
