// Package config
package config

import (
	"errors"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type TokenBucketConfig struct {
	Capacity          int           `json:"capacity" yaml:"capacity"`
	Interval          string        `json:"interval" yaml:"interval"`
	IntervalDuration  time.Duration `json:"-" yaml:"-"`
	TokensPerInterval int           `json:"tokens_per_interval" yaml:"tokens_per_interval"`
}

func defaultTokenBucketConfig() *TokenBucketConfig {
	return &TokenBucketConfig{
		Capacity:          10,
		Interval:          "5s",
		TokensPerInterval: 1,
	}
}

func (config *TokenBucketConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.Capacity < 2 {
		return ValidFail(errors.New("token bucket capacity must be at least 2"))
	}
	if config.TokensPerInterval <= 0 {
		return ValidFail(errors.New("tokens_per_interval must be greater than zero"))
	}
	if result := parseDuration("interval", config.Interval, &config.IntervalDuration); result.IsFail() {
		return result
	}
	if config.IntervalDuration == 0 {
		return ValidFail(errors.New("token bucket interval must be greater than zero"))
	}
	return ValidPass()
}
