package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core)).With("service", "fantasy-admin")

	logger.Info("points recomputed", "fixture_id", "fx-1", "points", 13, "error", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "fantasy-admin", fields["service"])
	assert.Equal(t, "fx-1", fields["fixture_id"])
	assert.EqualValues(t, 13, fields["points"])
	assert.Equal(t, "boom", fields["error"])
	assert.Contains(t, fields, "dangling")
}

func TestLogger_NilUsesDefault(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Warn("fallback")

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "fallback", logs.All()[0].Message)
}
