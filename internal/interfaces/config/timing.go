// Package config
package config

import (
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type TimingConfig struct {
	PositionInterval          string        `json:"position_interval" yaml:"position_interval"`
	PositionDuration          time.Duration `json:"-" yaml:"-"`
	InterimPositionInterval   string        `json:"interim_position_interval" yaml:"interim_position_interval"`
	InterimPositionDuration   time.Duration `json:"-" yaml:"-"`
	VisualPositionInterval    string        `json:"visual_position_interval" yaml:"visual_position_interval"`
	VisualPositionDuration    time.Duration `json:"-" yaml:"-"`
	ConfigProcessingInterval  string        `json:"config_processing_interval" yaml:"config_processing_interval"`
	ConfigProcessingDuration  time.Duration `json:"-" yaml:"-"`
	PacerInterval             string        `json:"pacer_interval" yaml:"pacer_interval"`
	PacerDuration             time.Duration `json:"-" yaml:"-"`
	PendingConnectionTimeout  string        `json:"pending_connection_timeout" yaml:"pending_connection_timeout"`
	PendingConnectionDuration time.Duration `json:"-" yaml:"-"`
	AdditionalOffset          string        `json:"additional_offset" yaml:"additional_offset"`
	AdditionalOffsetDuration  time.Duration `json:"-" yaml:"-"`
	DebounceQuiet             string        `json:"debounce_quiet" yaml:"debounce_quiet"`
	DebounceQuietDuration     time.Duration `json:"-" yaml:"-"`
	DebounceMaxWait           string        `json:"debounce_max_wait" yaml:"debounce_max_wait"`
	DebounceMaxWaitDuration   time.Duration `json:"-" yaml:"-"`
}

func defaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		PositionInterval:         "5s",
		InterimPositionInterval:  "1s",
		VisualPositionInterval:   "200ms",
		ConfigProcessingInterval: "100ms",
		PacerInterval:            "10ms",
		PendingConnectionTimeout: "7500ms",
		AdditionalOffset:         "0s",
		DebounceQuiet:            "250ms",
		DebounceMaxWait:          "2500ms",
	}
}

func (config *TimingConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	fields := []struct {
		name   string
		value  string
		target *time.Duration
	}{
		{"position_interval", config.PositionInterval, &config.PositionDuration},
		{"interim_position_interval", config.InterimPositionInterval, &config.InterimPositionDuration},
		{"visual_position_interval", config.VisualPositionInterval, &config.VisualPositionDuration},
		{"config_processing_interval", config.ConfigProcessingInterval, &config.ConfigProcessingDuration},
		{"pacer_interval", config.PacerInterval, &config.PacerDuration},
		{"pending_connection_timeout", config.PendingConnectionTimeout, &config.PendingConnectionDuration},
		{"additional_offset", config.AdditionalOffset, &config.AdditionalOffsetDuration},
		{"debounce_quiet", config.DebounceQuiet, &config.DebounceQuietDuration},
		{"debounce_max_wait", config.DebounceMaxWait, &config.DebounceMaxWaitDuration},
	}
	for _, field := range fields {
		if result := parseDuration(field.name, field.value, field.target); result.IsFail() {
			return result
		}
	}
	return ValidPass()
}
