// Package config
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
)

var callsignPattern = regexp.MustCompile(`^[A-Z0-9_-]{2,12}$`)

type ClientConfig struct {
	Callsign        string         `json:"callsign" yaml:"callsign"`
	RealName        string         `json:"real_name" yaml:"real_name"`
	Homebase        string         `json:"homebase" yaml:"homebase"`
	Cid             string         `json:"cid" yaml:"cid"`
	Password        string         `json:"password" yaml:"password"`
	LoginMode       string         `json:"login_mode" yaml:"login_mode"`
	Mode            fsd.LoginMode  `json:"-" yaml:"-"`
	PilotRating     int            `json:"pilot_rating" yaml:"pilot_rating"`
	AtcRating       int            `json:"atc_rating" yaml:"atc_rating"`
	SimType         int            `json:"sim_type" yaml:"sim_type"`
	ClientName      string         `json:"client_name" yaml:"client_name"`
	ClientId        int            `json:"client_id" yaml:"client_id"`
	VersionMajor    int            `json:"version_major" yaml:"version_major"`
	VersionMinor    int            `json:"version_minor" yaml:"version_minor"`
	Capabilities    string         `json:"capabilities" yaml:"capabilities"`
	CapabilityFlags fsd.Capability `json:"-" yaml:"-"`
	AircraftIcao    string         `json:"aircraft_icao" yaml:"aircraft_icao"`
	AirlineIcao     string         `json:"airline_icao" yaml:"airline_icao"`
	Livery          string         `json:"livery" yaml:"livery"`
	ModelString     string         `json:"model_string" yaml:"model_string"`
	UnitTestMode    bool           `json:"unit_test_mode" yaml:"unit_test_mode"`
	DebugAsserts    bool           `json:"debug_asserts" yaml:"debug_asserts"`
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Callsign:     "",
		RealName:     "",
		Homebase:     "",
		Cid:          "",
		Password:     "",
		LoginMode:    fsd.LoginPilot.String(),
		PilotRating:  int(fsd.PilotPPL),
		AtcRating:    int(fsd.AtcObserver),
		SimType:      int(fsd.SimMSFS2020),
		ClientName:   "fsd-client",
		ClientId:     0xe410,
		VersionMajor: 0,
		VersionMinor: 7,
		Capabilities: "ATCINFO,MODELDESC,ACCONFIG,VISUPDATE",
		AircraftIcao: "",
		AirlineIcao:  "",
		Livery:       "",
		ModelString:  "",
		UnitTestMode: false,
		DebugAsserts: false,
	}
}

func (config *ClientConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	mode, ok := fsd.ParseLoginMode(config.LoginMode)
	if !ok {
		return ValidFail(fmt.Errorf("invalid login_mode %q, must be pilot or observer", config.LoginMode))
	}
	config.Mode = mode
	config.Callsign = strings.ToUpper(strings.TrimSpace(config.Callsign))
	if config.Callsign != "" && !callsignPattern.MatchString(config.Callsign) {
		return ValidFail(fmt.Errorf("invalid callsign %q", config.Callsign))
	}
	if config.PilotRating < int(fsd.PilotUnknown) || config.PilotRating > int(fsd.PilotFlightInstructor) {
		return ValidFail(errors.New("pilot_rating out of range, must between 0 and 5"))
	}
	if config.AtcRating < int(fsd.AtcObserver) || config.AtcRating > int(fsd.AtcAdministrator) {
		return ValidFail(errors.New("atc_rating out of range, must between 1 and 12"))
	}
	if strings.ContainsRune(config.RealName, ':') || strings.ContainsRune(config.Cid, ':') {
		return ValidFail(errors.New("real_name and cid must not contain ':'"))
	}
	config.CapabilityFlags = fsd.ParseCapabilities(config.Capabilities)
	return ValidPass()
}
