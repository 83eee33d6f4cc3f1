package fsd_client

import (
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// channelSpacing833 8.33 kHz 波道间隔
const channelSpacing833 = 25.0 / 3.0

// frequencyTolerance 发送频率消息时就近匹配席位的容差, 单位 kHz
const frequencyTolerance = 5

type AtcStation struct {
	Callsign     string
	FrequencyKHz int
	Facility     fsd.Facility
	Rating       fsd.AtcRating
	Position     fsd.Position
	RangeNm      float64
}

// AircraftRegistry 记录收到过位置报文的机组与席位
type AircraftRegistry struct {
	mu       sync.RWMutex
	own      fsd.OwnAircraftProviderInterface
	rangeNm  float64
	aircraft map[string]fsd.Position
	stations map[string]*AtcStation
}

func NewAircraftRegistry(own fsd.OwnAircraftProviderInterface, rangeNm float64) *AircraftRegistry {
	return &AircraftRegistry{
		own:      own,
		rangeNm:  rangeNm,
		aircraft: make(map[string]fsd.Position),
		stations: make(map[string]*AtcStation),
	}
}

func (registry *AircraftRegistry) UpdateAircraft(callsign string, position fsd.Position) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.aircraft[callsign] = position
}

func (registry *AircraftRegistry) RemoveAircraft(callsign string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.aircraft, callsign)
}

// IsAircraftInRange 本机与对方位置都有效且距离不超过网络范围
func (registry *AircraftRegistry) IsAircraftInRange(callsign string) bool {
	registry.mu.RLock()
	position, ok := registry.aircraft[callsign]
	registry.mu.RUnlock()
	if !ok {
		return false
	}
	own := registry.own.OwnAircraft()
	if own == nil {
		return false
	}
	return fsd.InRange(own.Situation.Position, position, registry.rangeNm)
}

func (registry *AircraftRegistry) AircraftCount() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.aircraft)
}

func (registry *AircraftRegistry) UpdateStation(station *AtcStation) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.stations[station.Callsign] = station
}

func (registry *AircraftRegistry) RemoveStation(callsign string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.stations, callsign)
}

// Stations 按呼号排序的席位副本
func (registry *AircraftRegistry) Stations() []AtcStation {
	registry.mu.RLock()
	result := make([]AtcStation, 0, len(registry.stations))
	for _, station := range registry.stations {
		result = append(result, *station)
	}
	registry.mu.RUnlock()
	slices.SortFunc(result, func(a, b AtcStation) int { return strings.Compare(a.Callsign, b.Callsign) })
	return result
}

// NearestStationFrequency 频率与某个席位相差不超过容差时使用离本机最近的席位频率
func (registry *AircraftRegistry) NearestStationFrequency(frequencyKHz int) int {
	own := registry.own.OwnAircraft()
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := frequencyKHz
	best := math.MaxFloat64
	for _, station := range registry.stations {
		if abs(station.FrequencyKHz-frequencyKHz) > frequencyTolerance {
			continue
		}
		distance := 0.0
		if own != nil {
			distance = fsd.DistanceInNauticalMiles(own.Situation.Position, station.Position)
		}
		if distance < best {
			best = distance
			result = station.FrequencyKHz
		}
	}
	return result
}

func (registry *AircraftRegistry) Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	clear(registry.aircraft)
	clear(registry.stations)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

// RoundToChannelSpacing 取最近的 8.33 kHz 波道
func RoundToChannelSpacing(frequencyKHz int) int {
	channels := math.Round(float64(frequencyKHz) / channelSpacing833)
	return int(math.Round(channels * channelSpacing833))
}

// callsignSuffix 下划线后的最后一段
func callsignSuffix(callsign string) string {
	index := strings.LastIndex(callsign, "_")
	if index < 0 {
		return ""
	}
	return callsign[index+1:]
}

var atcSuffixRanges = []struct {
	suffix  string
	rangeNm float64
}{
	{"ATIS", 150},
	{"GND", 10},
	{"TWR", 25},
	{"DEP", 150},
	{"APP", 150},
	{"CTR", 300},
	{"FSS", 1500},
}

// FixAtcRange ATIS 等席位常报告 0 海里, 按后缀给出最小范围
func FixAtcRange(networkRangeNm float64, callsign string) float64 {
	suffix := strings.ToUpper(callsignSuffix(callsign))
	for _, entry := range atcSuffixRanges {
		if strings.Contains(suffix, entry.suffix) {
			return maxOrNotNull(networkRangeNm, entry.rangeNm)
		}
	}
	return networkRangeNm
}

func maxOrNotNull(a, b float64) float64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	return max(a, b)
}

// StaticOwnAircraft 由调用方更新的本机快照
type StaticOwnAircraft struct {
	mu       sync.RWMutex
	aircraft fsd.OwnAircraft
}

func NewStaticOwnAircraft(aircraft *fsd.OwnAircraft) *StaticOwnAircraft {
	return &StaticOwnAircraft{aircraft: *aircraft}
}

// OwnAircraft 返回副本
func (s *StaticOwnAircraft) OwnAircraft() *fsd.OwnAircraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	aircraft := s.aircraft
	aircraft.Parts.Engines = slices.Clone(s.aircraft.Parts.Engines)
	return &aircraft
}

func (s *StaticOwnAircraft) Update(update func(aircraft *fsd.OwnAircraft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.aircraft)
}
