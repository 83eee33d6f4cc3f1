// Package config
package config

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

type ServerConfig struct {
	Name                 string               `json:"name" yaml:"name"`
	Host                 string               `json:"host" yaml:"host"`
	Port                 uint                 `json:"port" yaml:"port"`
	ProtocolRevision     int                  `json:"protocol_revision" yaml:"protocol_revision"`
	Revision             fsd.ProtocolRevision `json:"-" yaml:"-"`
	ServerType           string               `json:"server_type" yaml:"server_type"`
	Type                 fsd.ServerType       `json:"-" yaml:"-"`
	TextCodec            string               `json:"text_codec" yaml:"text_codec"`
	AuthKey              string               `json:"auth_key" yaml:"auth_key"` // hex
	AuthKeyBytes         []byte               `json:"-" yaml:"-"`
	AuthTokenUrl         string               `json:"auth_token_url" yaml:"auth_token_url"`
	SendAircraftParts    bool                 `json:"send_aircraft_parts" yaml:"send_aircraft_parts"`
	ReceiveAircraftParts bool                 `json:"receive_aircraft_parts" yaml:"receive_aircraft_parts"`
	SendInterimPositions bool                 `json:"send_interim_positions" yaml:"send_interim_positions"`
	ReceiveInterimPos    bool                 `json:"receive_interim_positions" yaml:"receive_interim_positions"`
	SendVisualPositions  bool                 `json:"send_visual_positions" yaml:"send_visual_positions"`
	ReceiveEuroscopeData bool                 `json:"receive_euroscope_sim_data" yaml:"receive_euroscope_sim_data"`
	SendFsInnPackets     bool                 `json:"send_fsinn_packets" yaml:"send_fsinn_packets"`
	NetworkRangeNm       float64              `json:"network_range_nm" yaml:"network_range_nm"`
}

func defaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Name:                 "local",
		Host:                 "127.0.0.1",
		Port:                 6809,
		ProtocolRevision:     int(fsd.ProtocolClassic),
		ServerType:           fsd.ServerFsd.String(),
		TextCodec:            "utf-8",
		AuthKey:              "",
		AuthTokenUrl:         "https://auth.vatsim.net/api/fsd-jwt",
		SendAircraftParts:    true,
		ReceiveAircraftParts: true,
		SendInterimPositions: false,
		ReceiveInterimPos:    false,
		SendVisualPositions:  false,
		ReceiveEuroscopeData: false,
		SendFsInnPackets:     false,
		NetworkRangeNm:       50,
	}
}

func (config *ServerConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.Host == "" {
		return ValidFail(errors.New("server host must not be empty"))
	}
	if result := checkPort(config.Port); result.IsFail() {
		return result
	}
	config.Revision = fsd.ProtocolRevision(config.ProtocolRevision)
	switch config.Revision {
	case fsd.ProtocolClassic, fsd.ProtocolVatsimAtc, fsd.ProtocolVatsimAuth, fsd.ProtocolVatsimVelocity:
	default:
		return ValidFail(fmt.Errorf("unsupported protocol_revision %d", config.ProtocolRevision))
	}
	serverType, ok := fsd.ParseServerType(config.ServerType)
	if !ok {
		return ValidFail(fmt.Errorf("invalid server_type %q, must be vatsim or fsd", config.ServerType))
	}
	config.Type = serverType
	if config.AuthKey != "" {
		key, err := hex.DecodeString(config.AuthKey)
		if err != nil {
			return ValidFailWith(errors.New("invalid json field auth_key, must be hex encoded"), err)
		}
		config.AuthKeyBytes = key
	}
	if config.Revision.RequiresAuth() && len(config.AuthKeyBytes) == 0 {
		return ValidFail(errors.New("auth_key is required for authenticated protocol revisions"))
	}
	if config.NetworkRangeNm <= 0 {
		return ValidFail(errors.New("network_range_nm must be greater than zero"))
	}
	return ValidPass()
}
