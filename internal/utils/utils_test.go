package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogFor(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	assert.False(t, LogFor(log, nil, "send"))
	assert.Equal(t, 0, logs.Len())

	assert.True(t, LogFor(log, errors.New("timeout"), "send", zap.Int64("chat", 5)))
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "send", entries[0].Message)
		assert.Equal(t, int64(5), entries[0].ContextMap()["chat"])
		assert.Equal(t, "timeout", entries[0].ContextMap()["error"])
	}
}
