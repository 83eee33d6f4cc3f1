// Package config
package config

import (
	"errors"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type PublisherConfig struct {
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	Url             string        `json:"url" yaml:"url"`
	Subject         string        `json:"subject" yaml:"subject"`
	ConnectTimeout  string        `json:"connect_timeout" yaml:"connect_timeout"`
	ConnectDuration time.Duration `json:"-" yaml:"-"`
}

func defaultPublisherConfig() *PublisherConfig {
	return &PublisherConfig{
		Enabled:        false,
		Url:            "nats://127.0.0.1:4222",
		Subject:        "fsd.raw",
		ConnectTimeout: "5s",
	}
}

func (config *PublisherConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if result := parseDuration("connect_timeout", config.ConnectTimeout, &config.ConnectDuration); result.IsFail() {
		return result
	}
	if !config.Enabled {
		return ValidPass()
	}
	if config.Url == "" || config.Subject == "" {
		return ValidFail(errors.New("publisher url and subject must not be empty when enabled"))
	}
	return ValidPass()
}
