// Package atis 汇总以普通私聊方式返回的 ATIS, 以及结构化的 $CR ATIS 回复
package atis

import (
	"regexp"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

var DefaultLogoffPattern = regexp.MustCompile(`^\d{0,4}z$`)

type Outcome int

const (
	// Buffered 行已缓存, 继续等待
	Buffered Outcome = iota
	// Flushed 超时, 缓存作为普通文本消息输出
	Flushed
	// Completed 收到下线时间行, 作为 ATIS 输出
	Completed
)

type Result struct {
	Outcome    Outcome
	Sender     string
	Text       string
	LogoffTime string
}

type PendingQuery struct {
	Sender    string
	QueryTime time.Time
	Lines     []string
}

// Consolidator 只在客户端事件循环中使用
type Consolidator struct {
	pending map[string]*PendingQuery
	timeout time.Duration
	logoff  *regexp.Regexp
	TimeNow func() time.Time
}

func NewConsolidator(timeout time.Duration, logoff *regexp.Regexp) *Consolidator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logoff == nil {
		logoff = DefaultLogoffPattern
	}
	return &Consolidator{
		pending: make(map[string]*PendingQuery),
		timeout: timeout,
		logoff:  logoff,
		TimeNow: time.Now,
	}
}

// Begin 发出 ATIS 查询时调用, 重复查询会重置缓存
func (consolidator *Consolidator) Begin(sender string) {
	consolidator.pending[sender] = &PendingQuery{Sender: sender, QueryTime: consolidator.TimeNow()}
}

func (consolidator *Consolidator) IsPending(sender string) bool {
	_, ok := consolidator.pending[sender]
	return ok
}

// Append 处理来自 sender 的私聊行, 没有挂起查询时返回 false
func (consolidator *Consolidator) Append(sender, line string) (*Result, bool) {
	query, ok := consolidator.pending[sender]
	if !ok {
		return nil, false
	}
	query.Lines = append(query.Lines, line)

	if consolidator.TimeNow().Sub(query.QueryTime) > consolidator.timeout {
		delete(consolidator.pending, sender)
		return &Result{Outcome: Flushed, Sender: sender, Text: strings.Join(query.Lines, "\n")}, true
	}

	if consolidator.logoff.MatchString(line) {
		delete(consolidator.pending, sender)
		return &Result{
			Outcome:    Completed,
			Sender:     sender,
			Text:       strings.Join(query.Lines, "\n"),
			LogoffTime: line,
		}, true
	}
	return &Result{Outcome: Buffered, Sender: sender}, true
}

func (consolidator *Consolidator) Remove(sender string) {
	delete(consolidator.pending, sender)
}

func (consolidator *Consolidator) Clear() {
	clear(consolidator.pending)
}

func (consolidator *Consolidator) Len() int {
	return len(consolidator.pending)
}
