// Package config
package config

import (
	"errors"
	"regexp"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type AtisConfig struct {
	PendingTimeout         string         `json:"pending_timeout" yaml:"pending_timeout"`
	PendingTimeoutDuration time.Duration  `json:"-" yaml:"-"`
	LogoffPattern          string         `json:"logoff_pattern" yaml:"logoff_pattern"`
	LogoffRegexp           *regexp.Regexp `json:"-" yaml:"-"`
}

func defaultAtisConfig() *AtisConfig {
	return &AtisConfig{
		PendingTimeout: "5s",
		LogoffPattern:  `^\d{0,4}z$`,
	}
}

func (config *AtisConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if result := parseDuration("pending_timeout", config.PendingTimeout, &config.PendingTimeoutDuration); result.IsFail() {
		return result
	}
	pattern, err := regexp.Compile(config.LogoffPattern)
	if err != nil {
		return ValidFailWith(errors.New("invalid json field logoff_pattern"), err)
	}
	config.LogoffRegexp = pattern
	return ValidPass()
}
