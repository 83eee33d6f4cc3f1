// Package utils
package utils

import (
	"sync"
	"time"

	"github.com/bassosimone/runtimex"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
)

// TokenBucket 惰性补充的令牌桶, 没有后台定时器
type TokenBucket struct {
	mu                sync.Mutex
	capacity          int
	available         int
	interval          time.Duration
	tokensPerInterval int
	lastReplenish     time.Time
	TimeNow           func() time.Time
}

func NewTokenBucket(capacity int, interval time.Duration, tokensPerInterval int) *TokenBucket {
	return &TokenBucket{
		capacity:          capacity,
		available:         capacity,
		interval:          interval,
		tokensPerInterval: tokensPerInterval,
		lastReplenish:     time.Now(),
		TimeNow:           time.Now,
	}
}

// TryConsume 尝试取出 n 个令牌, 令牌不足时不产生任何副作用
// n 必须满足 0 < n < capacity
func (bucket *TokenBucket) TryConsume(n int) bool {
	if n <= 0 || n >= bucket.capacity {
		runtimex.Assert(!*global.DebugMode)
		return false
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.replenish()
	if n > bucket.available {
		return false
	}
	bucket.available -= n
	return true
}

// Available 当前可用令牌数, 会先执行补充
func (bucket *TokenBucket) Available() int {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	bucket.replenish()
	return bucket.available
}

// Reset 填满令牌桶
func (bucket *TokenBucket) Reset() {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	bucket.available = bucket.capacity
	bucket.lastReplenish = bucket.TimeNow()
}

func (bucket *TokenBucket) replenish() {
	now := bucket.TimeNow()
	elapsed := now.Sub(bucket.lastReplenish)
	if elapsed <= 0 {
		return
	}
	tokens := int(int64(elapsed) * int64(bucket.tokensPerInterval) / int64(bucket.interval))
	// 不足一个令牌时不推进时间戳, 否则会持续丢失零头
	if tokens < 1 {
		return
	}
	bucket.available = min(bucket.capacity, bucket.available+tokens)
	bucket.lastReplenish = now
}
