// Package debounce 合并短时间内的连续事件, 静默期或最长等待到期后一次性输出
package debounce

import (
	"sync"
	"time"
)

type Buffer[T any] struct {
	mu      sync.Mutex
	items   []T
	quiet   time.Duration
	maxWait time.Duration
	first   time.Time
	timer   *time.Timer
	stopped bool
	flush   func(items []T)
	post    func(task func())
	TimeNow func() time.Time
}

// NewBuffer post 用于把输出投递到调用方的事件循环, 为 nil 时在定时器协程中直接输出
func NewBuffer[T any](quiet, maxWait time.Duration, flush func(items []T), post func(task func())) *Buffer[T] {
	if maxWait < quiet {
		maxWait = quiet
	}
	if post == nil {
		post = func(task func()) { task() }
	}
	return &Buffer[T]{
		quiet:   quiet,
		maxWait: maxWait,
		flush:   flush,
		post:    post,
		TimeNow: time.Now,
	}
}

func (buffer *Buffer[T]) Add(item T) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.stopped {
		return
	}
	now := buffer.TimeNow()
	if len(buffer.items) == 0 {
		buffer.first = now
	}
	buffer.items = append(buffer.items, item)

	delay := buffer.quiet
	if remaining := buffer.first.Add(buffer.maxWait).Sub(now); remaining < delay {
		delay = max(remaining, 0)
	}
	if buffer.timer != nil {
		buffer.timer.Stop()
	}
	buffer.timer = time.AfterFunc(delay, func() {
		buffer.post(buffer.Flush)
	})
}

// Flush 立即输出缓存内容, 缓存为空时不调用回调
func (buffer *Buffer[T]) Flush() {
	buffer.mu.Lock()
	if buffer.timer != nil {
		buffer.timer.Stop()
		buffer.timer = nil
	}
	items := buffer.items
	buffer.items = nil
	buffer.mu.Unlock()

	if len(items) > 0 {
		buffer.flush(items)
	}
}

func (buffer *Buffer[T]) Len() int {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return len(buffer.items)
}

// Clear 丢弃缓存内容
func (buffer *Buffer[T]) Clear() {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.timer != nil {
		buffer.timer.Stop()
		buffer.timer = nil
	}
	buffer.items = nil
}

// Stop 丢弃缓存内容, 之后的 Add 被忽略
func (buffer *Buffer[T]) Stop() {
	buffer.Clear()
	buffer.mu.Lock()
	buffer.stopped = true
	buffer.mu.Unlock()
}
