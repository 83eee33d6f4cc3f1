// Package operation
package operation

import "errors"

var ErrHistoryNotFound = errors.New("history not found")

// HistoryOperationInterface 会话记录操作接口定义
type HistoryOperationInterface interface {
	// NewHistory 创建新会话记录(不提交数据库)
	NewHistory(sessionId string, server string, cid string, callsign string, isObserver bool) (history *History)
	// SaveHistory 保存会话记录到数据库, 当err为nil时保存成功
	SaveHistory(history *History) (err error)
	// EndRecordAndSaveHistory 结束会话记录并保存到数据库, 当err为nil时保存成功
	EndRecordAndSaveHistory(history *History) (err error)
	// GetHistoryBySession 通过会话id获取记录, 当err为nil时返回值history有效
	GetHistoryBySession(sessionId string) (history *History, err error)
	// GetUserHistory 获取用户最近 limit 次的连线记录, 新的在前
	GetUserHistory(cid string, limit int) (histories []*History, err error)
}
