package fsd_client

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
)

const rawLogBaseName = "rawfsdmessages"

// rawLogWriter 原始报文文件, 只在工作协程中写入
type rawLogWriter struct {
	file   *os.File
	writer *bufio.Writer
	path   string
}

// openRawLog 模式为 none 时返回 nil
func openRawLog(cfg *config.RawLogConfig, now time.Time) (*rawLogWriter, error) {
	if cfg == nil || cfg.LogMode == config.RawLogNone || cfg.LogMode == "" {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.Directory, global.DefaultDirectoryPermission); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	name := rawLogBaseName + ".log"
	switch cfg.LogMode {
	case config.RawLogTruncate:
		flags |= os.O_TRUNC
	case config.RawLogAppend:
		flags |= os.O_APPEND
	case config.RawLogTimestamped:
		flags |= os.O_TRUNC
		name = fmt.Sprintf("%s_%s.log", rawLogBaseName, now.Format("060102150405"))
	default:
		return nil, fmt.Errorf("unknown raw log mode %s", cfg.LogMode)
	}

	path := filepath.Join(cfg.Directory, name)
	file, err := os.OpenFile(path, flags, global.DefaultFilePermissions)
	if err != nil {
		return nil, err
	}
	return &rawLogWriter{file: file, writer: bufio.NewWriter(file), path: path}, nil
}

func (w *rawLogWriter) Write(line string) error {
	if _, err := w.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return w.writer.Flush()
}

func (w *rawLogWriter) Path() string { return w.path }

func (w *rawLogWriter) Close() {
	_ = w.writer.Flush()
	_ = w.file.Close()
}

// SetRawLogConfig 关闭当前文件并按新配置重新打开
func (client *Client) SetRawLogConfig(cfg *config.RawLogConfig) error {
	var openErr error
	if err := client.call(func() {
		if client.rawLog != nil {
			client.rawLog.Close()
			client.rawLog = nil
		}
		client.rawLog, openErr = openRawLog(cfg, client.timeNow())
	}); err != nil {
		return err
	}
	return openErr
}

// maskPassword 登录报文中的密码替换为占位符, 不修改过滤状态
func (client *Client) maskPassword(line string) string {
	if !client.filterPassword || !strings.HasPrefix(line, "#AP") {
		return line
	}
	return client.passwordMask.ReplaceAllString(line, "${1}<password>${2}")
}

// emitRawMessage 外发的 line 需已经过 maskPassword, 首个登录报文之后停止过滤
func (client *Client) emitRawMessage(line string, outbound bool) {
	if outbound && client.filterPassword && strings.HasPrefix(line, "#AP") {
		client.filterPassword = false
	}
	message := &fsd.RawMessage{Outbound: outbound, Line: line, Time: client.timeNow()}
	if client.rawLog != nil {
		if err := client.rawLog.Write(message.Prefixed()); err != nil {
			client.logger.WarnF("Failed to write raw message log %s, %v", client.rawLog.Path(), err)
		}
	}
	for _, sink := range client.rawSinks {
		sink.WriteRawMessage(message)
	}
	client.emit(message)
}
