// Package base
package base

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/bassosimone/slogstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCapturingLogger 返回一个记录所有日志的 Logger
func newCapturingLogger() (*Logger, func() []slog.Record) {
	var mu sync.Mutex
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			mu.Lock()
			defer mu.Unlock()
			records = append(records, record)
			return nil
		},
	}
	return NewLoggerWithHandler(handler), func() []slog.Record {
		mu.Lock()
		defer mu.Unlock()
		return append([]slog.Record(nil), records...)
	}
}

func TestLoggerLevels(t *testing.T) {
	logger, records := newCapturingLogger()
	logger.Init(true)

	logger.DebugF("debug %d", 1)
	logger.InfoF("info %s", "two")
	logger.Warn("warn", "key", "value")
	logger.ErrorF("error %v", 3.5)
	logger.FatalF("fatal %t", true)

	got := records()
	require.Len(t, got, 5)
	assert.Equal(t, slog.LevelDebug, got[0].Level)
	assert.Equal(t, "debug 1", got[0].Message)
	assert.Equal(t, slog.LevelInfo, got[1].Level)
	assert.Equal(t, "info two", got[1].Message)
	assert.Equal(t, slog.LevelWarn, got[2].Level)
	assert.Equal(t, 1, got[2].NumAttrs())
	assert.Equal(t, slog.LevelError, got[3].Level)
	assert.Equal(t, LevelFatal, got[4].Level)
}

func TestColorLevel(t *testing.T) {
	attr := colorLevel(nil, slog.Any(slog.LevelKey, LevelFatal))
	assert.Contains(t, attr.Value.String(), "FATAL")

	attr = plainLevel(nil, slog.Any(slog.LevelKey, slog.LevelWarn))
	assert.Equal(t, "WARN", attr.Value.String())

	other := slog.String("msg", "hello")
	assert.Equal(t, other, colorLevel(nil, other))
}

func TestLoggerShutdownWithoutFile(t *testing.T) {
	logger, _ := newCapturingLogger()
	logger.Init(false)
	assert.NoError(t, logger.ShutdownCallback().Invoke(context.Background()))
}
