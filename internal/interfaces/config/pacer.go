// Package config
package config

import (
	"errors"

	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type PacerConfig struct {
	BurstThresholds []int `json:"burst_thresholds" yaml:"burst_thresholds"`
	HighWaterInfo   int   `json:"high_water_info" yaml:"high_water_info"`
	HighWaterWarn   int   `json:"high_water_warn" yaml:"high_water_warn"`
	HighWaterMax    int   `json:"high_water_max" yaml:"high_water_max"`
	BulkSmall       int   `json:"bulk_small" yaml:"bulk_small"`
	BulkMedium      int   `json:"bulk_medium" yaml:"bulk_medium"`
	BulkLarge       int   `json:"bulk_large" yaml:"bulk_large"`
}

func defaultPacerConfig() *PacerConfig {
	return &PacerConfig{
		BurstThresholds: []int{5, 10, 20, 30},
		HighWaterInfo:   50,
		HighWaterWarn:   75,
		HighWaterMax:    100,
		BulkSmall:       10,
		BulkMedium:      20,
		BulkLarge:       30,
	}
}

func (config *PacerConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	for i, threshold := range config.BurstThresholds {
		if threshold <= 0 {
			return ValidFail(errors.New("burst_thresholds must be positive"))
		}
		if i > 0 && threshold <= config.BurstThresholds[i-1] {
			return ValidFail(errors.New("burst_thresholds must be strictly increasing"))
		}
	}
	if len(config.BurstThresholds) > 0 && config.HighWaterInfo <= config.BurstThresholds[len(config.BurstThresholds)-1] {
		return ValidFail(errors.New("high_water_info must be greater than the last burst threshold"))
	}
	if config.HighWaterInfo >= config.HighWaterWarn || config.HighWaterWarn >= config.HighWaterMax {
		return ValidFail(errors.New("high water marks must be strictly increasing"))
	}
	if config.BulkSmall <= 0 || config.BulkSmall > config.BulkMedium || config.BulkMedium > config.BulkLarge {
		return ValidFail(errors.New("bulk sizes must be positive and non-decreasing"))
	}
	return ValidPass()
}
