// Package base
package base

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
	"github.com/half-nothing/fsd-client/internal/utils"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvCid        = "FSD_CID"
	EnvPassword   = "FSD_PASSWORD"
	EnvCallsign   = "FSD_CALLSIGN"
	EnvServerHost = "FSD_SERVER_HOST"
)

func isYaml(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	if isYaml(path) {
		return yaml.Unmarshal(data, config)
	}
	return json.Unmarshal(data, config)
}

func marshalConfig(path string, config *Config) ([]byte, error) {
	if isYaml(path) {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "\t")
}

// applyEnvOverrides 环境变量优先于配置文件, .env 文件不会覆盖已存在的环境变量
func applyEnvOverrides(logger log.LoggerInterface, envFile string, config *Config) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WarnF("Fail to load env file %s: %v", envFile, err)
		}
	}
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvCid, &config.Client.Cid},
		{EnvPassword, &config.Client.Password},
		{EnvCallsign, &config.Client.Callsign},
		{EnvServerHost, &config.Server.Host},
	}
	for _, override := range overrides {
		if value, ok := os.LookupEnv(override.key); ok && value != "" {
			logger.DebugF("Config value overridden by %s", override.key)
			*override.target = value
		}
	}
}

func readConfig(logger log.LoggerInterface, path string, envFile string) (*Config, *ValidResult) {
	config := DefaultConfig()

	// 读取配置文件
	if bytes, err := os.ReadFile(path); err != nil {
		// 如果配置文件不存在，创建默认配置
		if err := saveConfig(path, config); err != nil {
			return nil, ValidFailWith(errors.New("fail to save configuration file while creating configuration file"), err)
		}
		return nil, ValidFail(errors.New("the configuration file does not exist and has been created. Please try again after editing the configuration file"))
	} else if err := unmarshalConfig(path, bytes, config); err != nil {
		return nil, ValidFailWith(errors.New("the configuration file could not be parsed"), err)
	}
	if config.Client != nil && config.Server != nil {
		applyEnvOverrides(logger, envFile, config)
	}
	if result := config.CheckValid(logger); result.IsFail() {
		return nil, result
	}
	return config, ValidPass()
}

func saveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), global.DefaultDirectoryPermission); err != nil {
		return err
	}
	if writer, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, global.DefaultFilePermissions); err != nil {
		return err
	} else if data, err := marshalConfig(path, config); err != nil {
		_ = writer.Close()
		return err
	} else if _, err = writer.Write(data); err != nil {
		_ = writer.Close()
		return err
	} else if err := writer.Close(); err != nil {
		return err
	}
	return nil
}

type Manager struct {
	config  *utils.CachedValue[Config]
	logger  log.LoggerInterface
	path    string
	envFile string
	err     *ValidResult
}

func NewManager(logger log.LoggerInterface) *Manager {
	return NewManagerWithPath(logger, *global.ConfigFilePath, *global.EnvFilePath)
}

func NewManagerWithPath(logger log.LoggerInterface, path string, envFile string) *Manager {
	manager := &Manager{
		logger:  logger,
		path:    path,
		envFile: envFile,
	}
	manager.config = utils.NewCachedValue(0, manager.getConfig)
	return manager
}

func (manager *Manager) getConfig() *Config {
	config, result := readConfig(manager.logger, manager.path, manager.envFile)
	if result.IsFail() {
		manager.err = result
		return nil
	}
	manager.err = nil
	return config
}

// Load 读取并校验配置文件
func (manager *Manager) Load() (*Config, *ValidResult) {
	config := manager.config.GetValue()
	if config == nil {
		return nil, manager.err
	}
	return config, ValidPass()
}

// Config 配置文件无效时记录致命错误并 panic
func (manager *Manager) Config() *Config {
	config, result := manager.Load()
	if result.IsFail() {
		manager.logger.Fatal(result.Error().Error())
		panic(result.OriginErr())
	}
	return config
}

// Reload 丢弃缓存并重新读取配置文件
func (manager *Manager) Reload() (*Config, *ValidResult) {
	manager.config.Invalidate()
	return manager.Load()
}

func (manager *Manager) SaveConfig() error {
	config, result := manager.Load()
	if result.IsFail() {
		return result.Error()
	}
	return saveConfig(manager.path, config)
}
