package fsd_client

import (
	"fmt"
	"testing"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/stretchr/testify/assert"
)

func ExampleRoundToChannelSpacing() {
	fmt.Println(RoundToChannelSpacing(122800), RoundToChannelSpacing(124045))
	// Output: 122800 124042
}

func TestFixAtcRange(t *testing.T) {
	tests := []struct {
		rangeNm  float64
		callsign string
		expected float64
	}{
		{50, "ZSSS_TWR", 50},
		{0, "ZSSS_ATIS", 150},
		{40, "ZSHA_CTR", 300},
		{40, "ZSHA_E_CTR", 300},
		{0, "ZSSS_GND", 10},
		{40, "ZSSS_DEL", 40},
		{40, "CES2352", 40},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, FixAtcRange(test.rangeNm, test.callsign), test.callsign)
	}
}

func TestAircraftRegistryRange(t *testing.T) {
	own := NewStaticOwnAircraft(&fsd.OwnAircraft{Callsign: "CES2352"})
	own.Update(func(aircraft *fsd.OwnAircraft) {
		aircraft.Situation.Latitude = 31.1434
		aircraft.Situation.Longitude = 121.8052
	})
	registry := NewAircraftRegistry(own, 50)

	registry.UpdateAircraft("CSN3101", fsd.Position{Latitude: 31.1979, Longitude: 121.3363})
	registry.UpdateAircraft("CCA1501", fsd.Position{Latitude: 39.5098, Longitude: 116.4105})
	assert.True(t, registry.IsAircraftInRange("CSN3101"))
	assert.False(t, registry.IsAircraftInRange("CCA1501"))
	assert.False(t, registry.IsAircraftInRange("UNKNOWN"))
	assert.Equal(t, 2, registry.AircraftCount())

	registry.RemoveAircraft("CSN3101")
	assert.False(t, registry.IsAircraftInRange("CSN3101"))
	registry.Clear()
	assert.Equal(t, 0, registry.AircraftCount())
}

func TestNearestStationFrequency(t *testing.T) {
	own := NewStaticOwnAircraft(&fsd.OwnAircraft{Callsign: "CES2352"})
	own.Update(func(aircraft *fsd.OwnAircraft) {
		aircraft.Situation.Latitude = 31.1434
		aircraft.Situation.Longitude = 121.8052
	})
	registry := NewAircraftRegistry(own, 50)
	registry.UpdateStation(&AtcStation{Callsign: "ZSPD_TWR", FrequencyKHz: 118200,
		Position: fsd.Position{Latitude: 31.1434, Longitude: 121.8052}})
	registry.UpdateStation(&AtcStation{Callsign: "ZGGG_TWR", FrequencyKHz: 118205,
		Position: fsd.Position{Latitude: 23.3924, Longitude: 113.2988}})

	assert.Equal(t, 118200, registry.NearestStationFrequency(118203))
	assert.Equal(t, 121500, registry.NearestStationFrequency(121500))

	stations := registry.Stations()
	assert.Len(t, stations, 2)
	assert.Equal(t, "ZGGG_TWR", stations[0].Callsign)
	registry.RemoveStation("ZSPD_TWR")
	assert.Equal(t, 118205, registry.NearestStationFrequency(118203))
}

func TestStatisticsText(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	ticks := []time.Duration{0, 10 * time.Millisecond, 30 * time.Millisecond}
	index := 0
	statistics := NewStatistics(func() time.Time {
		now := start.Add(ticks[min(index, len(ticks)-1)])
		index++
		return now
	})

	assert.Empty(t, statistics.Text(false, "\n"))
	assert.Equal(t, -1, statistics.Increase("", "x"))
	statistics.Increase("parseMessage", "Ping")
	statistics.Increase("parseMessage", "Ping")
	statistics.Increase("sendPong", "")

	assert.Equal(t, 2, statistics.Get("parseMessage.Ping"))
	assert.Equal(t, "parseMessage.Ping: 2\nsendPong: 1\n00000: sendPong\n00020: parseMessage.Ping\n00030: parseMessage.Ping",
		statistics.Text(true, "\n"))
	assert.Empty(t, statistics.Snapshot())

	statistics.SetEnabled(false)
	assert.Equal(t, -1, statistics.Increase("sendPong", ""))
}

func TestStatisticsHumanizedCounts(t *testing.T) {
	statistics := NewStatistics(nil)
	for i := 0; i < 1234; i++ {
		statistics.Increase("parseMessage", "PilotDataUpdate")
	}
	assert.Contains(t, statistics.Text(false, "\n"), "parseMessage.PilotDataUpdate: 1,234")
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		heading  float64
		expected float64
	}{
		{0, 0},
		{-90, 270},
		{360, 0},
		{725, 5},
		{359.5, 359.5},
	}
	for _, test := range tests {
		assert.InDelta(t, test.expected, normalizeHeading(test.heading), 1e-9, "%v", test.heading)
	}
}

func TestIsStationary(t *testing.T) {
	assert.True(t, isStationary(&fsd.Velocity{}))
	assert.True(t, isStationary(&fsd.Velocity{X: 0.00001, NoseGear: 15}))
	assert.False(t, isStationary(&fsd.Velocity{Z: 0.1}))
	assert.False(t, isStationary(&fsd.Velocity{HeadingRate: -0.001}))
}

func TestNormalizeCruiseAltitude(t *testing.T) {
	tests := []struct {
		rules    fsd.FlightRules
		altitude string
		expected string
	}{
		{fsd.FlightRulesIFR, "35000", "FL350"},
		{fsd.FlightRulesIFR, "350", "FL350"},
		{fsd.FlightRulesIFR, "FL350", "FL350"},
		{fsd.FlightRulesVFR, "4500", "4500ft"},
		{fsd.FlightRulesVFR, "9500", "FL95"},
		{fsd.FlightRulesVFR, " ", ""},
		{fsd.FlightRulesVFR, "S1130", "S1130"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, normalizeCruiseAltitude(test.rules, test.altitude), test.altitude)
	}
}

func TestValidSquawk(t *testing.T) {
	for _, code := range []int{0, 1200, 2000, 7500, 7777} {
		assert.True(t, validSquawk(code), code)
	}
	for _, code := range []int{-1, 1280, 7778, 9999, 10000} {
		assert.False(t, validSquawk(code), code)
	}
}

func TestIncrementalObject(t *testing.T) {
	previous := map[string]interface{}{
		"gear_down": false,
		"flaps_pct": 0,
		"lights":    map[string]interface{}{"strobe_on": false, "nav_on": true},
		"engines":   map[string]interface{}{"1": map[string]interface{}{"on": true}},
	}
	current := map[string]interface{}{
		"gear_down":    false,
		"flaps_pct":    20,
		"lights":       map[string]interface{}{"strobe_on": true, "nav_on": true},
		"engines":      map[string]interface{}{"1": map[string]interface{}{"on": true}, "2": map[string]interface{}{"on": true}},
		"spoilers_out": false,
	}
	assert.Equal(t, map[string]interface{}{
		"flaps_pct":    20,
		"lights":       map[string]interface{}{"strobe_on": true},
		"engines":      map[string]interface{}{"2": map[string]interface{}{"on": true}},
		"spoilers_out": false,
	}, incrementalObject(previous, current))
	assert.Empty(t, incrementalObject(current, current))
}

func TestEncodeAircraftConfig(t *testing.T) {
	data, err := encodeAircraftConfig(map[string]interface{}{"gear_down": true, "flaps_pct": 5})
	assert.NoError(t, err)
	assert.Equal(t, `{"config":{"flaps_pct":5,"gear_down":true}}`, data)
	assert.Equal(t, `{"request":"full"}`, encodeAircraftConfigRequest())
}
