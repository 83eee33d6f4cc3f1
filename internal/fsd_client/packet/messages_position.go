// Package packet
package packet

import (
	"fmt"
	"strconv"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/utils"
)

func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func boolToken(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

func parseBool(token string) bool {
	return token == "1" || token == "true" || token == "True"
}

// PilotDataUpdate @ mode:callsign:squawk:rating:lat:lon:altTrue:gs:pbh:altDiff
type PilotDataUpdate struct {
	Mode             fsd.TransponderMode
	Sender           string
	Squawk           int
	Rating           fsd.PilotRating
	Latitude         float64
	Longitude        float64
	AltitudeTrue     int
	AltitudePressure int
	GroundSpeed      int
	Pitch            float64
	Bank             float64
	Heading          float64
	OnGround         bool
}

func (*PilotDataUpdate) Type() MessageType { return TypePilotDataUpdate }

func (m *PilotDataUpdate) Tokens() []string {
	return []string{string(m.Mode), m.Sender, fmt.Sprintf("%04d", m.Squawk), strconv.Itoa(int(m.Rating)),
		formatFloat(m.Latitude, 5), formatFloat(m.Longitude, 5), strconv.Itoa(m.AltitudeTrue),
		strconv.Itoa(m.GroundSpeed), strconv.FormatUint(uint64(utils.PackPBH(m.Pitch, m.Bank, m.Heading, m.OnGround)), 10),
		strconv.Itoa(m.AltitudePressure - m.AltitudeTrue)}
}

func ParsePilotDataUpdate(tokens []string) (*PilotDataUpdate, error) {
	if err := requireTokens(tokens, 10); err != nil {
		return nil, err
	}
	pitch, bank, heading, onGround := utils.UnpackPBH(utils.StrToUint32(tokens[8], 0))
	altitudeTrue := utils.StrToInt(tokens[6], 0)
	return &PilotDataUpdate{
		Mode:             fsd.ParseTransponderMode(tokens[0]),
		Sender:           tokens[1],
		Squawk:           utils.StrToInt(tokens[2], 2000),
		Rating:           fsd.PilotRating(utils.StrToInt(tokens[3], 0)),
		Latitude:         utils.StrToFloat(tokens[4], 0),
		Longitude:        utils.StrToFloat(tokens[5], 0),
		AltitudeTrue:     altitudeTrue,
		AltitudePressure: altitudeTrue + utils.StrToInt(tokens[9], 0),
		GroundSpeed:      utils.StrToInt(tokens[7], 0),
		Pitch:            pitch,
		Bank:             bank,
		Heading:          heading,
		OnGround:         onGround,
	}, nil
}

// AtcDataUpdate % callsign:freq:facility:visrange:rating:lat:lon:elevation
// 频率以 kHz 减去 100000 表示
type AtcDataUpdate struct {
	Sender       string
	FrequencyKHz int
	Facility     fsd.Facility
	VisualRange  int
	Rating       fsd.AtcRating
	Latitude     float64
	Longitude    float64
	Elevation    int
}

func (*AtcDataUpdate) Type() MessageType { return TypeAtcDataUpdate }

func (m *AtcDataUpdate) Tokens() []string {
	return []string{m.Sender, strconv.Itoa(m.FrequencyKHz - 100000), strconv.Itoa(int(m.Facility)),
		strconv.Itoa(m.VisualRange), strconv.Itoa(int(m.Rating)), formatFloat(m.Latitude, 5),
		formatFloat(m.Longitude, 5), strconv.Itoa(m.Elevation)}
}

func ParseAtcDataUpdate(tokens []string) (*AtcDataUpdate, error) {
	if err := requireTokens(tokens, 8); err != nil {
		return nil, err
	}
	return &AtcDataUpdate{
		Sender:       tokens[0],
		FrequencyKHz: utils.StrToInt(tokens[1], 0) + 100000,
		Facility:     fsd.Facility(utils.StrToInt(tokens[2], 0)),
		VisualRange:  utils.StrToInt(tokens[3], 0),
		Rating:       fsd.AtcRating(utils.StrToInt(tokens[4], 1)),
		Latitude:     utils.StrToFloat(tokens[5], 0),
		Longitude:    utils.StrToFloat(tokens[6], 0),
		Elevation:    utils.StrToInt(tokens[7], 0),
	}, nil
}

// InterimPilotDataUpdate #SB callsign:receiver:VI:lat:lon:alt:gs:pbh
type InterimPilotDataUpdate struct {
	Sender       string
	Receiver     string
	Latitude     float64
	Longitude    float64
	AltitudeTrue int
	GroundSpeed  int
	Pitch        float64
	Bank         float64
	Heading      float64
	OnGround     bool
}

func (*InterimPilotDataUpdate) Type() MessageType { return TypePilotClientCom }

func (m *InterimPilotDataUpdate) Valid() bool { return m.Receiver != "" }

func (m *InterimPilotDataUpdate) Tokens() []string {
	return []string{m.Sender, m.Receiver, SubTypeInterimPosition, formatFloat(m.Latitude, 5),
		formatFloat(m.Longitude, 5), strconv.Itoa(m.AltitudeTrue), strconv.Itoa(m.GroundSpeed),
		strconv.FormatUint(uint64(utils.PackPBH(m.Pitch, m.Bank, m.Heading, m.OnGround)), 10)}
}

func ParseInterimPilotDataUpdate(tokens []string) (*InterimPilotDataUpdate, error) {
	if err := requireTokens(tokens, 8); err != nil {
		return nil, err
	}
	pitch, bank, heading, onGround := utils.UnpackPBH(utils.StrToUint32(tokens[7], 0))
	return &InterimPilotDataUpdate{
		Sender:       tokens[0],
		Receiver:     tokens[1],
		Latitude:     utils.StrToFloat(tokens[3], 0),
		Longitude:    utils.StrToFloat(tokens[4], 0),
		AltitudeTrue: utils.StrToInt(tokens[5], 0),
		GroundSpeed:  utils.StrToInt(tokens[6], 0),
		Pitch:        pitch,
		Bank:         bank,
		Heading:      heading,
		OnGround:     onGround,
	}, nil
}

// VisualPilotDataUpdate ^/#SL/#ST callsign:lat:lon:alt:agl:pbh:vx:vy:vz:pitchRate:headingRate:bankRate:noseGear
type VisualPilotDataUpdate struct {
	Variant          MessageType
	Sender           string
	Latitude         float64
	Longitude        float64
	AltitudeTrue     float64
	HeightAgl        float64
	Pitch            float64
	Bank             float64
	Heading          float64
	XVelocity        float64
	YVelocity        float64
	ZVelocity        float64
	PitchRadPerSec   float64
	BankRadPerSec    float64
	HeadingRadPerSec float64
	NoseGearAngle    float64
}

func (m *VisualPilotDataUpdate) Type() MessageType {
	switch m.Variant {
	case TypeVisualPilotDataPeriodic, TypeVisualPilotDataStopped:
		return m.Variant
	default:
		return TypeVisualPilotDataUpdate
	}
}

func (m *VisualPilotDataUpdate) Tokens() []string {
	return []string{m.Sender, formatFloat(m.Latitude, 7), formatFloat(m.Longitude, 7), formatFloat(m.AltitudeTrue, 2),
		formatFloat(m.HeightAgl, 2), strconv.FormatUint(uint64(utils.PackPBH(m.Pitch, m.Bank, m.Heading, false)), 10),
		formatFloat(m.XVelocity, 4), formatFloat(m.YVelocity, 4), formatFloat(m.ZVelocity, 4),
		formatFloat(m.PitchRadPerSec, 4), formatFloat(m.HeadingRadPerSec, 4), formatFloat(m.BankRadPerSec, 4),
		formatFloat(m.NoseGearAngle, 2)}
}

func ParseVisualPilotDataUpdate(variant MessageType, tokens []string) (*VisualPilotDataUpdate, error) {
	if err := requireTokens(tokens, 12); err != nil {
		return nil, err
	}
	pitch, bank, heading, _ := utils.UnpackPBH(utils.StrToUint32(tokens[5], 0))
	return &VisualPilotDataUpdate{
		Variant:          variant,
		Sender:           tokens[0],
		Latitude:         utils.StrToFloat(tokens[1], 0),
		Longitude:        utils.StrToFloat(tokens[2], 0),
		AltitudeTrue:     utils.StrToFloat(tokens[3], 0),
		HeightAgl:        utils.StrToFloat(tokens[4], 0),
		Pitch:            pitch,
		Bank:             bank,
		Heading:          heading,
		XVelocity:        utils.StrToFloat(tokens[6], 0),
		YVelocity:        utils.StrToFloat(tokens[7], 0),
		ZVelocity:        utils.StrToFloat(tokens[8], 0),
		PitchRadPerSec:   utils.StrToFloat(tokens[9], 0),
		HeadingRadPerSec: utils.StrToFloat(tokens[10], 0),
		BankRadPerSec:    utils.StrToFloat(tokens[11], 0),
		NoseGearAngle:    utils.StrToFloat(tokenAt(tokens, 12), 0),
	}, nil
}

// euroscope 灯光位
const (
	lightStrobe = 1 << iota
	lightLanding
	lightTaxi
	lightBeacon
	lightNav
	lightLogo
)

// EuroscopeSimData SIMDATA :callsign:model:livery:ts:lat:lon:alt:hdg:bank:pitch:gs:onGround:gear:thrust:lights:...
type EuroscopeSimData struct {
	Sender        string
	Model         string
	Livery        string
	Timestamp     int64
	Latitude      float64
	Longitude     float64
	Altitude      float64
	Heading       float64
	Bank          float64
	Pitch         float64
	GroundSpeed   int
	OnGround      bool
	GearPercent   int
	ThrustPercent int
	Lights        fsd.AircraftLights
}

func (*EuroscopeSimData) Type() MessageType { return TypeEuroscopeSimData }

func (m *EuroscopeSimData) Tokens() []string {
	return []string{"", m.Sender, m.Model, m.Livery, strconv.FormatInt(m.Timestamp, 10), formatFloat(m.Latitude, 7),
		formatFloat(m.Longitude, 7), formatFloat(m.Altitude, 1), formatFloat(m.Heading, 2),
		strconv.Itoa(int(m.Bank)), strconv.Itoa(int(m.Pitch)), strconv.Itoa(m.GroundSpeed), boolToken(m.OnGround),
		strconv.Itoa(m.GearPercent), strconv.Itoa(m.ThrustPercent), strconv.Itoa(packLights(m.Lights)), "0.0", "0"}
}

func ParseEuroscopeSimData(tokens []string) (*EuroscopeSimData, error) {
	if err := requireTokens(tokens, 16); err != nil {
		return nil, err
	}
	return &EuroscopeSimData{
		Sender:        tokens[1],
		Model:         tokens[2],
		Livery:        tokens[3],
		Timestamp:     utils.StrToInt64(tokens[4], 0),
		Latitude:      utils.StrToFloat(tokens[5], 0),
		Longitude:     utils.StrToFloat(tokens[6], 0),
		Altitude:      utils.StrToFloat(tokens[7], 0),
		Heading:       utils.StrToFloat(tokens[8], 0),
		Bank:          utils.StrToFloat(tokens[9], 0),
		Pitch:         utils.StrToFloat(tokens[10], 0),
		GroundSpeed:   utils.StrToInt(tokens[11], 0),
		OnGround:      parseBool(tokens[12]),
		GearPercent:   utils.StrToInt(tokens[13], 0),
		ThrustPercent: utils.StrToInt(tokens[14], 0),
		Lights:        unpackLights(utils.StrToInt(tokens[15], 0)),
	}, nil
}

func packLights(lights fsd.AircraftLights) int {
	value := 0
	flags := []struct {
		on  bool
		bit int
	}{
		{lights.StrobeOn, lightStrobe},
		{lights.LandingOn, lightLanding},
		{lights.TaxiOn, lightTaxi},
		{lights.BeaconOn, lightBeacon},
		{lights.NavOn, lightNav},
		{lights.LogoOn, lightLogo},
	}
	for _, flag := range flags {
		if flag.on {
			value |= flag.bit
		}
	}
	return value
}

func unpackLights(value int) fsd.AircraftLights {
	return fsd.AircraftLights{
		StrobeOn:  value&lightStrobe != 0,
		LandingOn: value&lightLanding != 0,
		TaxiOn:    value&lightTaxi != 0,
		BeaconOn:  value&lightBeacon != 0,
		NavOn:     value&lightNav != 0,
		LogoOn:    value&lightLogo != 0,
	}
}
