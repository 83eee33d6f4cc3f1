// Package pacer 按固定节拍发送排队的报文, 积压时按阈值加速
package pacer

import (
	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

// Pacer 只在客户端事件循环中使用
type Pacer struct {
	logger log.LoggerInterface
	config *config.PacerConfig
	queue  []string
	send   func(line string)
	// epoch 每次 Clear 自增, 发送途中被清空时停止本节拍
	epoch uint64
}

func NewPacer(logger log.LoggerInterface, config *config.PacerConfig, send func(line string)) *Pacer {
	return &Pacer{
		logger: logger,
		config: config,
		queue:  make([]string, 0, 16),
		send:   send,
	}
}

func (pacer *Pacer) Enqueue(line string) {
	if line == "" {
		return
	}
	pacer.queue = append(pacer.queue, line)
}

// Tick 发送本节拍的报文, 返回实际发送数量
// 加速与批量判断都基于节拍开始时的队列深度
func (pacer *Pacer) Tick() int {
	depth := len(pacer.queue)
	if depth == 0 {
		return 0
	}
	count := pacer.BatchSize(depth)
	if depth > pacer.config.HighWaterInfo {
		if depth > pacer.config.HighWaterWarn {
			pacer.logger.WarnF("Too many queued messages (%d), bulk send!", depth)
		} else {
			pacer.logger.InfoF("Too many queued messages (%d), bulk send!", depth)
		}
	}
	count = min(count, depth)
	batch := pacer.queue[:count:count]
	pacer.queue = pacer.queue[count:]
	if len(pacer.queue) == 0 {
		pacer.queue = pacer.queue[:0:0]
	}
	epoch := pacer.epoch
	sent := 0
	for _, line := range batch {
		if pacer.epoch != epoch {
			break
		}
		pacer.send(line)
		sent++
	}
	clear(batch)
	return sent
}

// BatchSize 计算给定深度下一个节拍应发送的数量
func (pacer *Pacer) BatchSize(depth int) int {
	if depth <= 0 {
		return 0
	}
	count := 1
	for _, threshold := range pacer.config.BurstThresholds {
		if depth > threshold {
			count++
		}
	}
	if depth > pacer.config.HighWaterInfo {
		switch {
		case depth > pacer.config.HighWaterMax:
			count += pacer.config.BulkLarge
		case depth > pacer.config.HighWaterWarn:
			count += pacer.config.BulkMedium
		default:
			count += pacer.config.BulkSmall
		}
	}
	return count
}

func (pacer *Pacer) Len() int {
	return len(pacer.queue)
}

func (pacer *Pacer) Clear() {
	pacer.epoch++
	pacer.queue = pacer.queue[:0:0]
}
