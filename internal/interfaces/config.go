// Package interfaces
package interfaces

import (
	. "github.com/half-nothing/fsd-client/internal/interfaces/config"
)

type ConfigManagerInterface interface {
	Config() *Config
	Reload() (*Config, *ValidResult)
	SaveConfig() error
}
