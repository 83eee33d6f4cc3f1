package fsd_client

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const maxCallsByTime = 50

type timedCall struct {
	time time.Time
	key  string
}

// Statistics 报文收发计数, 外部协程可以随时读取
type Statistics struct {
	mu       sync.Mutex
	enabled  bool
	counters map[string]int
	// 新的在前
	callByTime []timedCall
	timeNow    func() time.Time
}

func NewStatistics(timeNow func() time.Time) *Statistics {
	if timeNow == nil {
		timeNow = time.Now
	}
	return &Statistics{
		enabled:    true,
		counters:   make(map[string]int),
		callByTime: make([]timedCall, 0, maxCallsByTime),
		timeNow:    timeNow,
	}
}

func (s *Statistics) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Increase 计数键为 identifier 或 identifier.appendix, 未启用时返回 -1
func (s *Statistics) Increase(identifier string, appendix string) int {
	if identifier == "" {
		return -1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return -1
	}
	key := identifier
	if appendix != "" {
		key += "." + appendix
	}
	s.counters[key]++

	s.callByTime = slices.Insert(s.callByTime, 0, timedCall{time: s.timeNow(), key: key})
	if len(s.callByTime) > maxCallsByTime {
		s.callByTime = s.callByTime[:maxCallsByTime]
	}
	return s.counters[key]
}

func (s *Statistics) Get(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}

// Snapshot 计数的副本
func (s *Statistics) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.counters)
}

func (s *Statistics) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.counters)
	s.callByTime = s.callByTime[:0]
}

// Text 按次数降序列出计数, 之后是最近调用距最新一次的毫秒差
func (s *Statistics) Text(reset bool, separator string) string {
	s.mu.Lock()
	counters := maps.Clone(s.counters)
	calls := slices.Clone(s.callByTime)
	s.mu.Unlock()

	if len(counters) == 0 {
		return ""
	}

	keys := slices.Collect(maps.Keys(counters))
	slices.SortFunc(keys, func(a, b string) int {
		if counters[a] != counters[b] {
			return counters[b] - counters[a]
		}
		return strings.Compare(b, a)
	})

	lines := make([]string, 0, len(keys)+len(calls))
	for _, key := range keys {
		lines = append(lines, key+": "+humanize.Comma(int64(counters[key])))
	}
	if len(calls) > 0 {
		last := calls[0].time
		for _, call := range calls {
			lines = append(lines, fmt.Sprintf("%05d: %s", last.Sub(call.time).Milliseconds(), call.key))
		}
	}

	if reset {
		s.Clear()
	}
	return strings.Join(lines, separator)
}

// saveNetworkStatistics 会话结束时写入数据库, 在后台协程中完成
func (client *Client) saveNetworkStatistics() {
	if client.statisticsDb == nil || client.sessionId == "" {
		return
	}
	counters := client.statistics.Snapshot()
	if len(counters) == 0 {
		return
	}
	server := client.session.server.Name
	sessionId := client.sessionId
	logger := client.logger
	store := client.statisticsDb
	go func() {
		if err := store.SaveNetworkStatistics(server, sessionId, counters); err != nil {
			logger.ErrorF("[%s] save network statistics fail, %v", sessionId, err)
			return
		}
		logger.DebugF("[%s] saved %d network statistics", sessionId, len(counters))
	}()
}

// startHistory 会话记录在结束时一次写入
func (client *Client) startHistory() {
	if client.historyDb == nil {
		return
	}
	client.history = client.historyDb.NewHistory(client.sessionId, client.session.server.Name, client.session.cid,
		client.session.callsign, client.session.loginMode.IsObserver())
}

func (client *Client) endHistory() {
	if client.historyDb == nil || client.history == nil {
		return
	}
	history := client.history
	client.history = nil
	store := client.historyDb
	logger := client.logger
	go func() {
		if err := store.EndRecordAndSaveHistory(history); err != nil {
			logger.ErrorF("[%s] save history fail, %v", history.SessionId, err)
		}
	}()
}
