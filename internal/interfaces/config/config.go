// Package config
package config

import (
	"errors"
	"fmt"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string             `json:"config_version" yaml:"config_version"`
	Client        *ClientConfig      `json:"client" yaml:"client"`
	Server        *ServerConfig      `json:"server" yaml:"server"`
	Timing        *TimingConfig      `json:"timing" yaml:"timing"`
	Pacer         *PacerConfig       `json:"pacer" yaml:"pacer"`
	Atis          *AtisConfig        `json:"atis" yaml:"atis"`
	TokenBucket   *TokenBucketConfig `json:"token_bucket" yaml:"token_bucket"`
	RawLog        *RawLogConfig      `json:"raw_log" yaml:"raw_log"`
	Database      *DatabaseConfig    `json:"database" yaml:"database"`
	Publisher     *PublisherConfig   `json:"publisher" yaml:"publisher"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: ConfVersion.String(),
		Client:        defaultClientConfig(),
		Server:        defaultServerConfig(),
		Timing:        defaultTimingConfig(),
		Pacer:         defaultPacerConfig(),
		Atis:          defaultAtisConfig(),
		TokenBucket:   defaultTokenBucketConfig(),
		RawLog:        defaultRawLogConfig(),
		Database:      defaultDatabaseConfig(),
		Publisher:     defaultPublisherConfig(),
	}
}

type checker interface {
	checkValid(logger log.LoggerInterface) *ValidResult
}

func (c *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if version, err := newVersion(c.ConfigVersion); err != nil {
		return ValidFailWith(errors.New("version string parse fail"), err)
	} else if result := ConfVersion.checkVersion(version); result != AllMatch {
		return ValidFail(fmt.Errorf("config version mismatch, expected %s, got %s", ConfVersion.String(), version.String()))
	}
	defaults := DefaultConfig()
	if c.Client == nil {
		c.Client = defaults.Client
	}
	if c.Server == nil {
		c.Server = defaults.Server
	}
	if c.Timing == nil {
		c.Timing = defaults.Timing
	}
	if c.Pacer == nil {
		c.Pacer = defaults.Pacer
	}
	if c.Atis == nil {
		c.Atis = defaults.Atis
	}
	if c.TokenBucket == nil {
		c.TokenBucket = defaults.TokenBucket
	}
	if c.RawLog == nil {
		c.RawLog = defaults.RawLog
	}
	if c.Database == nil {
		c.Database = defaults.Database
	}
	if c.Publisher == nil {
		c.Publisher = defaults.Publisher
	}
	sections := []checker{c.Client, c.Server, c.Timing, c.Pacer, c.Atis, c.TokenBucket, c.RawLog, c.Database, c.Publisher}
	for _, section := range sections {
		if result := section.checkValid(logger); result.IsFail() {
			return result
		}
	}
	return ValidPass()
}
