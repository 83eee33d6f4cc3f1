// Package fsd
package fsd

import (
	"strconv"
	"time"
)

// AircraftLights 灯光状态
type AircraftLights struct {
	StrobeOn  bool `json:"strobe_on"`
	LandingOn bool `json:"landing_on"`
	TaxiOn    bool `json:"taxi_on"`
	BeaconOn  bool `json:"beacon_on"`
	NavOn     bool `json:"nav_on"`
	LogoOn    bool `json:"logo_on"`
}

type AircraftEngine struct {
	On bool `json:"on"`
}

// AircraftParts 机模外观配置, 通过 ACC 报文以 JSON 增量方式广播
type AircraftParts struct {
	Lights      AircraftLights   `json:"lights"`
	GearDown    bool             `json:"gear_down"`
	FlapsPct    int              `json:"flaps_pct"`
	SpoilersOut bool             `json:"spoilers_out"`
	Engines     []AircraftEngine `json:"-"`
	OnGround    bool             `json:"on_ground"`
}

func (p *AircraftParts) Equal(other *AircraftParts) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Lights != other.Lights || p.GearDown != other.GearDown || p.FlapsPct != other.FlapsPct ||
		p.SpoilersOut != other.SpoilersOut || p.OnGround != other.OnGround || len(p.Engines) != len(other.Engines) {
		return false
	}
	for i := range p.Engines {
		if p.Engines[i] != other.Engines[i] {
			return false
		}
	}
	return true
}

// ToMap 转换为 ACC 报文使用的 JSON 对象结构, 引擎以从 1 开始的序号为键
func (p *AircraftParts) ToMap() map[string]interface{} {
	engines := make(map[string]interface{}, len(p.Engines))
	for i, engine := range p.Engines {
		engines[strconv.Itoa(i+1)] = map[string]interface{}{"on": engine.On}
	}
	return map[string]interface{}{
		"lights": map[string]interface{}{
			"strobe_on":  p.Lights.StrobeOn,
			"landing_on": p.Lights.LandingOn,
			"taxi_on":    p.Lights.TaxiOn,
			"beacon_on":  p.Lights.BeaconOn,
			"nav_on":     p.Lights.NavOn,
			"logo_on":    p.Lights.LogoOn,
		},
		"gear_down":    p.GearDown,
		"flaps_pct":    p.FlapsPct,
		"spoilers_out": p.SpoilersOut,
		"engines":      engines,
		"on_ground":    p.OnGround,
	}
}

// Situation 本机位置与姿态
type Situation struct {
	Position
	AltitudeTrue     float64   `json:"altitude_true"`
	AltitudePressure float64   `json:"altitude_pressure"`
	AltitudeAgl      float64   `json:"altitude_agl"`
	GroundSpeed      float64   `json:"ground_speed"`
	Pitch            float64   `json:"pitch"`
	Bank             float64   `json:"bank"`
	Heading          float64   `json:"heading"`
	OnGround         bool      `json:"on_ground"`
	Velocity         Velocity  `json:"velocity"`
	Timestamp        time.Time `json:"timestamp"`
}

// Velocity 速度分量, 单位 m/s 与 rad/s
type Velocity struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	PitchRate   float64 `json:"pitch_rate"`
	BankRate    float64 `json:"bank_rate"`
	HeadingRate float64 `json:"heading_rate"`
	NoseGear    float64 `json:"nose_gear"`
}

// IsZero 静止状态
func (v *Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0 && v.PitchRate == 0 && v.BankRate == 0 && v.HeadingRate == 0
}

type Transponder struct {
	Code int             `json:"code"`
	Mode TransponderMode `json:"mode"`
}

// ComSystem 无线电频率, 单位 kHz
type ComSystem struct {
	ActiveKHz int `json:"active_khz"`
}

// OwnAircraft 本机完整快照
type OwnAircraft struct {
	Callsign     string
	Situation    Situation
	Transponder  Transponder
	Com1         ComSystem
	Com2         ComSystem
	Parts        AircraftParts
	AircraftIcao string
	AirlineIcao  string
	Livery       string
	ModelString  string
}

// FlightPlanData 飞行计划
type FlightPlanData struct {
	FlightRules       FlightRules `json:"flight_rules"`
	AircraftIcaoType  string      `json:"aircraft_icao_type"`
	TrueCruisingSpeed int         `json:"true_cruising_speed"`
	DepAirport        string      `json:"dep_airport"`
	EstimatedDepTime  int         `json:"estimated_dep_time"`
	ActualDepTime     int         `json:"actual_dep_time"`
	CruiseAlt         string      `json:"cruise_alt"`
	DestAirport       string      `json:"dest_airport"`
	HoursEnroute      int         `json:"hours_enroute"`
	MinutesEnroute    int         `json:"minutes_enroute"`
	FuelAvailHours    int         `json:"fuel_avail_hours"`
	FuelAvailMinutes  int         `json:"fuel_avail_minutes"`
	AltAirport        string      `json:"alt_airport"`
	Remarks           string      `json:"remarks"`
	Route             string      `json:"route"`
}
