package fsd_client

import (
	"context"

	"github.com/half-nothing/fsd-client/internal/interfaces/global"
)

// ClientCloseCallback 程序退出时断开连接并停止工作协程
type ClientCloseCallback struct {
	client *Client
}

func NewClientCloseCallback(client *Client) *ClientCloseCallback {
	return &ClientCloseCallback{client: client}
}

func (cc *ClientCloseCallback) Invoke(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, global.ShutdownTimeout)
	defer cancel()
	return cc.client.Shutdown(timeoutCtx)
}
