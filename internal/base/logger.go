// Package base
package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

const LevelFatal = slog.Level(12)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
	LevelFatal:      color.New(color.FgHiRed, color.Bold),
}

func levelName(level slog.Level) string {
	if level >= LevelFatal {
		return "FATAL"
	}
	return level.String()
}

// colorLevel 控制台输出时为等级标签着色
func colorLevel(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	level, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}
	name := levelName(level)
	if c, ok := levelColors[level]; ok {
		name = c.Sprint(name)
	}
	attr.Value = slog.StringValue(name)
	return attr
}

func plainLevel(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok {
		attr.Value = slog.StringValue(levelName(level))
	}
	return attr
}

// fanoutHandler 同时写入多个 handler
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithAttrs(attrs))
	}
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithGroup(name))
	}
	return &fanoutHandler{handlers: handlers}
}

type Logger struct {
	level    *slog.LevelVar
	logger   *slog.Logger
	console  io.Writer
	filePath string
	file     *os.File
	injected bool
}

func NewLogger() *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &Logger{
		level:    level,
		console:  color.Output,
		filePath: filepath.Join("logs", "fsd-client.log"),
		logger: slog.New(slog.NewTextHandler(color.Output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: colorLevel,
		})),
	}
}

// NewLoggerWithHandler 使用外部 handler, 测试中用于捕获日志
func NewLoggerWithHandler(handler slog.Handler) *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelDebug)
	return &Logger{
		level:    level,
		logger:   slog.New(handler),
		injected: true,
	}
}

func (l *Logger) Init(debug bool) {
	if debug {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
	if l.injected {
		return
	}
	consoleHandler := slog.NewTextHandler(l.console, &slog.HandlerOptions{Level: l.level, ReplaceAttr: colorLevel})
	if err := os.MkdirAll(filepath.Dir(l.filePath), global.DefaultDirectoryPermission); err != nil {
		l.logger = slog.New(consoleHandler)
		l.WarnF("Fail to create log directory, file logging disabled: %v", err)
		return
	}
	file, err := os.OpenFile(l.filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, global.DefaultFilePermissions)
	if err != nil {
		l.logger = slog.New(consoleHandler)
		l.WarnF("Fail to open log file, file logging disabled: %v", err)
		return
	}
	l.file = file
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: l.level, ReplaceAttr: plainLevel})
	l.logger = slog.New(&fanoutHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}

func (l *Logger) ShutdownCallback() global.Callable {
	return global.CallableFunc(func(_ context.Context) error {
		if l.file == nil {
			return nil
		}
		if err := l.file.Sync(); err != nil {
			return err
		}
		err := l.file.Close()
		l.file = nil
		return err
	})
}

func (l *Logger) Debug(msg string, v ...interface{}) { l.logger.Debug(msg, v...) }

func (l *Logger) DebugF(msg string, v ...interface{}) { l.logger.Debug(fmt.Sprintf(msg, v...)) }

func (l *Logger) Info(msg string, v ...interface{}) { l.logger.Info(msg, v...) }

func (l *Logger) InfoF(msg string, v ...interface{}) { l.logger.Info(fmt.Sprintf(msg, v...)) }

func (l *Logger) Warn(msg string, v ...interface{}) { l.logger.Warn(msg, v...) }

func (l *Logger) WarnF(msg string, v ...interface{}) { l.logger.Warn(fmt.Sprintf(msg, v...)) }

func (l *Logger) Error(msg string, v ...interface{}) { l.logger.Error(msg, v...) }

func (l *Logger) ErrorF(msg string, v ...interface{}) { l.logger.Error(fmt.Sprintf(msg, v...)) }

func (l *Logger) Fatal(msg string, v ...interface{}) {
	l.logger.Log(context.Background(), LevelFatal, msg, v...)
}

func (l *Logger) FatalF(msg string, v ...interface{}) {
	l.logger.Log(context.Background(), LevelFatal, fmt.Sprintf(msg, v...))
}

var _ log.LoggerInterface = (*Logger)(nil)
