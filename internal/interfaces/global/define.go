// Package global
package global

import (
	"flag"
	"time"
)

var (
	DebugMode      = flag.Bool("debug", false, "Enable debug mode")
	ConfigFilePath = flag.String("config", "./config.json", "Path to configuration file")
	EnvFilePath    = flag.String("env", ".env", "Path to an optional dotenv file with credential overrides")
	AutoConnect    = flag.Bool("connect", true, "Connect to the configured server on startup")
)

const (
	AppVersion    = "0.7.0"
	ConfigVersion = "0.7.0"

	DefaultFilePermissions     = 0644
	DefaultDirectoryPermission = 0755

	FSDServerName = "SERVER"

	// 保留地址
	EuroscopeSimDataReceiver = "@94835"
	AircraftConfigBroadcast  = "@94836"

	ShutdownTimeout = 10 * time.Second
)
