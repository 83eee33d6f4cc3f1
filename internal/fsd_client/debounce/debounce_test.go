// Package debounce
package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) flush(items []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, items)
}

func (c *collector) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.batches...)
}

func TestBufferCoalescesBurst(t *testing.T) {
	c := &collector{}
	buffer := NewBuffer(30*time.Millisecond, time.Second, c.flush, nil)
	buffer.Add("a")
	buffer.Add("b")
	buffer.Add("c")

	require.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, c.snapshot()[0])
	assert.Equal(t, 0, buffer.Len())
}

func TestBufferMaxWait(t *testing.T) {
	c := &collector{}
	buffer := NewBuffer(40*time.Millisecond, 100*time.Millisecond, c.flush, nil)
	start := time.Now()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for time.Since(start) < 300*time.Millisecond {
			buffer.Add("tick")
			time.Sleep(10 * time.Millisecond)
		}
	}()
	<-done
	buffer.Flush()
	// 持续输入时仍会按最长等待时间分批输出
	assert.GreaterOrEqual(t, len(c.snapshot()), 2)
}

func TestBufferFlushNow(t *testing.T) {
	c := &collector{}
	buffer := NewBuffer(time.Hour, time.Hour, c.flush, nil)
	buffer.Flush()
	assert.Empty(t, c.snapshot())

	buffer.Add("x")
	buffer.Flush()
	assert.Equal(t, [][]string{{"x"}}, c.snapshot())
}

func TestBufferPostsToLoop(t *testing.T) {
	c := &collector{}
	tasks := make(chan func(), 1)
	buffer := NewBuffer(10*time.Millisecond, 10*time.Millisecond, c.flush, func(task func()) { tasks <- task })
	buffer.Add("x")

	select {
	case task := <-tasks:
		assert.Empty(t, c.snapshot())
		task()
	case <-time.After(time.Second):
		t.Fatal("flush was not posted")
	}
	assert.Equal(t, [][]string{{"x"}}, c.snapshot())
}

func TestBufferStop(t *testing.T) {
	c := &collector{}
	buffer := NewBuffer(10*time.Millisecond, 10*time.Millisecond, c.flush, nil)
	buffer.Add("x")
	buffer.Stop()
	buffer.Add("y")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, c.snapshot())
	assert.Equal(t, 0, buffer.Len())
}
