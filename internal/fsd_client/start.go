package fsd_client

import (
	"github.com/half-nothing/fsd-client/internal/interfaces"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// StartClient 由应用上下文创建客户端, 并把关闭回调注册到 Cleaner
func StartClient(applicationContent *interfaces.ApplicationContent, sinks ...fsd.RawMessageSinkInterface) (*Client, error) {
	options := &Options{
		Logger:   applicationContent.Logger(),
		Config:   applicationContent.ConfigManager().Config(),
		RawSinks: sinks,
	}
	if operations := applicationContent.Operations(); operations != nil {
		options.Statistics = operations.StatisticsOperation()
		options.History = operations.HistoryOperation()
	}

	client, err := NewClient(options)
	if err != nil {
		return nil, err
	}
	applicationContent.Cleaner().Add(NewClientCloseCallback(client))
	return client, nil
}
