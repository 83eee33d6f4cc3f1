// Package config
package config

import (
	"fmt"
	"slices"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type RawLogMode string

const (
	RawLogNone        RawLogMode = "none"
	RawLogTruncate    RawLogMode = "truncate"
	RawLogAppend      RawLogMode = "append"
	RawLogTimestamped RawLogMode = "timestamped"
)

var allowedRawLogMode = []RawLogMode{RawLogNone, RawLogTruncate, RawLogAppend, RawLogTimestamped}

type RawLogConfig struct {
	Mode      string     `json:"mode" yaml:"mode"`
	LogMode   RawLogMode `json:"-" yaml:"-"`
	Directory string     `json:"directory" yaml:"directory"`
}

func defaultRawLogConfig() *RawLogConfig {
	return &RawLogConfig{
		Mode:      string(RawLogNone),
		Directory: "logs",
	}
}

func (config *RawLogConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	config.LogMode = RawLogMode(config.Mode)
	if !slices.Contains(allowedRawLogMode, config.LogMode) {
		return ValidFail(fmt.Errorf("raw log mode %s is not allowed, support mode is %v", config.Mode, allowedRawLogMode))
	}
	if config.Directory == "" {
		config.Directory = "."
	}
	return ValidPass()
}
