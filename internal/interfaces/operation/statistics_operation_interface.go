// Package operation
package operation

// StatisticsOperationInterface 网络统计操作接口定义
type StatisticsOperationInterface interface {
	// SaveNetworkStatistics 保存一次会话的全部计数, 空计数不写入
	SaveNetworkStatistics(server string, sessionId string, counters map[string]int) (err error)
	// GetSessionStatistics 获取会话的计数, 按次数降序
	GetSessionStatistics(sessionId string) (statistics []*NetworkStatistic, err error)
}
