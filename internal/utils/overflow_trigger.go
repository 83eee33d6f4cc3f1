// Package utils
package utils

import (
	"sync"
)

// OverflowTrigger 每累计 targetValue 次 Tick 触发一次回调
// 可视位置每 25 个节拍发送一次周期报文就靠它计数
type OverflowTrigger struct {
	mu          sync.Mutex
	count       int
	targetValue int
	callback    func()
}

func NewOverflowTrigger(targetValue int, callback func()) *OverflowTrigger {
	return &OverflowTrigger{targetValue: targetValue, callback: callback}
}

// Tick 计数加一, 返回本次是否触发
// targetValue 不大于 0 时永不触发
func (trigger *OverflowTrigger) Tick() bool {
	if trigger.targetValue <= 0 {
		return false
	}
	trigger.mu.Lock()
	trigger.count++
	fired := trigger.count >= trigger.targetValue
	if fired {
		trigger.count = 0
	}
	trigger.mu.Unlock()
	if fired && trigger.callback != nil {
		trigger.callback()
	}
	return fired
}

func (trigger *OverflowTrigger) Reset() {
	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	trigger.count = 0
}
