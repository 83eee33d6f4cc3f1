// Package publisher 把原始报文转发到 NATS, 供外部记录或分析
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type publishConn interface {
	Publish(subject string, data []byte) error
	Drain() error
	IsClosed() bool
}

// RawRecord 发布到 NATS 的报文格式
type RawRecord struct {
	Server    string    `json:"server"`
	SessionId string    `json:"session_id,omitempty"`
	Outbound  bool      `json:"outbound"`
	Line      string    `json:"line"`
	Time      time.Time `json:"time"`
}

type RawMessagePublisher struct {
	logger    log.LoggerInterface
	conn      publishConn
	subject   string
	server    string
	sessionId func() string
}

func NewRawMessagePublisher(logger log.LoggerInterface, cfg *config.PublisherConfig, server string) (*RawMessagePublisher, error) {
	conn, err := nats.Connect(cfg.Url,
		nats.Name("fsd-client"),
		nats.Timeout(cfg.ConnectDuration),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.WarnF("NATS publisher disconnected, %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.InfoF("NATS publisher reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.InfoF("Raw message publisher connected to %s, subject %s", cfg.Url, cfg.Subject)
	return newRawMessagePublisher(logger, conn, cfg.Subject, server), nil
}

func newRawMessagePublisher(logger log.LoggerInterface, conn publishConn, subject string, server string) *RawMessagePublisher {
	return &RawMessagePublisher{
		logger:    logger,
		conn:      conn,
		subject:   subject,
		server:    server,
		sessionId: func() string { return "" },
	}
}

// SetSessionSource 设置当前会话 id 的来源
func (publisher *RawMessagePublisher) SetSessionSource(source func() string) {
	if source != nil {
		publisher.sessionId = source
	}
}

func (publisher *RawMessagePublisher) WriteRawMessage(message *fsd.RawMessage) {
	if publisher.conn.IsClosed() {
		return
	}
	data, err := json.Marshal(&RawRecord{
		Server:    publisher.server,
		SessionId: publisher.sessionId(),
		Outbound:  message.Outbound,
		Line:      message.Line,
		Time:      message.Time,
	})
	if err != nil {
		publisher.logger.ErrorF("Failed to marshal raw message, %v", err)
		return
	}
	if err := publisher.conn.Publish(publisher.subject, data); err != nil {
		publisher.logger.WarnF("Failed to publish raw message, %v", err)
	}
}

type PublisherCloseCallback struct {
	publisher *RawMessagePublisher
}

func (pc *PublisherCloseCallback) Invoke(ctx context.Context) error {
	pc.publisher.logger.Info("Draining raw message publisher")
	done := make(chan error, 1)
	go func() {
		done <- pc.publisher.conn.Drain()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (publisher *RawMessagePublisher) ShutdownCallback() global.Callable {
	return &PublisherCloseCallback{publisher: publisher}
}
