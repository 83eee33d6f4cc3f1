// Package offset 按呼号估计位置报文的时间偏移, 供插值使用
package offset

import (
	"time"
)

const (
	DefaultOffset = 6000 * time.Millisecond
	MinimumOffset = 2000 * time.Millisecond
	MaxHistory    = 6
	MeanSamples   = 3
)

type record struct {
	lastUpdate time.Time
	// 新的在前
	history []time.Duration
}

// Estimator 只在客户端的事件循环中使用, 不加锁
type Estimator struct {
	records          map[string]*record
	additionalOffset time.Duration
	TimeNow          func() time.Time
}

func NewEstimator(additionalOffset time.Duration) *Estimator {
	return &Estimator{
		records:          make(map[string]*record),
		additionalOffset: additionalOffset,
		TimeNow:          time.Now,
	}
}

func (estimator *Estimator) SetAdditionalOffset(offset time.Duration) {
	estimator.additionalOffset = offset
}

// Update 记录一次位置更新并返回应使用的偏移
// 零值时间戳视为当前时间
func (estimator *Estimator) Update(callsign string, timestamp time.Time) time.Duration {
	if timestamp.IsZero() {
		timestamp = estimator.TimeNow()
	}
	rec, ok := estimator.records[callsign]
	if !ok {
		estimator.records[callsign] = &record{lastUpdate: timestamp}
		return DefaultOffset
	}

	delta := timestamp.Sub(rec.lastUpdate)
	if delta < 0 {
		delta = -delta
	}
	rec.lastUpdate = timestamp
	rec.history = append([]time.Duration{delta}, rec.history...)
	if len(rec.history) > MaxHistory {
		rec.history = rec.history[:MaxHistory]
	}

	mean, count := rec.mean(MeanSamples)
	offset := DefaultOffset
	if count >= MeanSamples && mean < MinimumOffset {
		offset = MinimumOffset
	}
	return estimator.additionalOffset + offset
}

// Current 返回最近一次测得的间隔, 没有记录时返回默认偏移
func (estimator *Estimator) Current(callsign string) time.Duration {
	rec, ok := estimator.records[callsign]
	if !ok || len(rec.history) == 0 {
		return DefaultOffset
	}
	return rec.history[0]
}

// History 返回历史间隔的副本, 新的在前
func (estimator *Estimator) History(callsign string) []time.Duration {
	rec, ok := estimator.records[callsign]
	if !ok {
		return nil
	}
	return append([]time.Duration(nil), rec.history...)
}

func (estimator *Estimator) Remove(callsign string) {
	delete(estimator.records, callsign)
}

func (estimator *Estimator) Clear() {
	clear(estimator.records)
}

func (estimator *Estimator) Len() int {
	return len(estimator.records)
}

func (rec *record) mean(samples int) (time.Duration, int) {
	count := min(samples, len(rec.history))
	if count == 0 {
		return 0, 0
	}
	var sum time.Duration
	for _, delta := range rec.history[:count] {
		sum += delta
	}
	return sum / time.Duration(count), count
}
