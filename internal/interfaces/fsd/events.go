// Package fsd
package fsd

import (
	"time"
)

// Event 客户端向外发出的事件
type Event interface {
	Name() string
}

// EventHandler 在客户端的工作协程中被调用, 不应阻塞
type EventHandler func(event Event)

type ConnectionStatusChanged struct {
	Old ConnectionStatus
	New ConnectionStatus
}

func (*ConnectionStatusChanged) Name() string { return "connection_status_changed" }

type RawMessage struct {
	Outbound bool
	Line     string
	Time     time.Time
}

func (*RawMessage) Name() string { return "raw_message" }

// Prefixed 带方向前缀的原始报文
func (r *RawMessage) Prefixed() string {
	if r.Outbound {
		return "FSD Sent=>" + r.Line
	}
	return "FSD Recv=>" + r.Line
}

type SevereNetworkError struct {
	Err error
}

func (*SevereNetworkError) Name() string { return "severe_network_error" }

type KillRequest struct {
	Sender string
	Reason string
}

func (*KillRequest) Name() string { return "kill_request" }

// TextMessageItem 一条文本消息
type TextMessageItem struct {
	Sender      string
	Receiver    string
	Message     string
	Frequencies []int
	Supervisor  bool
	Time        time.Time
}

// TextMessages 消抖后批量投递的文本消息
type TextMessages struct {
	Messages []*TextMessageItem
}

func (*TextMessages) Name() string { return "text_messages" }

type TextMessageSent struct {
	Message *TextMessageItem
}

func (*TextMessageSent) Name() string { return "text_message_sent" }

type AtisReply struct {
	Sender string
	Text   string
}

func (*AtisReply) Name() string { return "atis_reply" }

type AtisLogoffTime struct {
	Sender     string
	LogoffTime string
}

func (*AtisLogoffTime) Name() string { return "atis_logoff_time" }

type AtisVoiceRoom struct {
	Sender string
	Url    string
}

func (*AtisVoiceRoom) Name() string { return "atis_voice_room" }

type PilotDataUpdate struct {
	Callsign         string
	Transponder      Transponder
	Rating           PilotRating
	Latitude         float64
	Longitude        float64
	AltitudeTrue     int
	AltitudePressure int
	GroundSpeed      int
	Pitch            float64
	Bank             float64
	Heading          float64
	OnGround         bool
	OffsetTimeMs     int64
}

func (*PilotDataUpdate) Name() string { return "pilot_data_update" }

type InterimPilotDataUpdate struct {
	Callsign     string
	Latitude     float64
	Longitude    float64
	AltitudeTrue int
	GroundSpeed  int
	Pitch        float64
	Bank         float64
	Heading      float64
	OnGround     bool
	OffsetTimeMs int64
}

func (*InterimPilotDataUpdate) Name() string { return "interim_pilot_data_update" }

type VisualPilotDataUpdate struct {
	Callsign     string
	Situation    Situation
	OffsetTimeMs int64
}

func (*VisualPilotDataUpdate) Name() string { return "visual_pilot_data_update" }

type EuroscopeSimData struct {
	Callsign     string
	AircraftIcao string
	AirlineIcao  string
	Situation    Situation
	Parts        AircraftParts
	OffsetTimeMs int64
}

func (*EuroscopeSimData) Name() string { return "euroscope_sim_data" }

type AtcDataUpdate struct {
	Callsign     string
	FrequencyKHz int
	Facility     Facility
	VisualRange  int
	Rating       AtcRating
	Latitude     float64
	Longitude    float64
	Elevation    int
}

func (*AtcDataUpdate) Name() string { return "atc_data_update" }

type DeleteAtc struct {
	Callsign string
	Cid      string
}

func (*DeleteAtc) Name() string { return "delete_atc" }

type DeletePilot struct {
	Callsign string
	Cid      string
}

func (*DeletePilot) Name() string { return "delete_pilot" }

type FlightPlan struct {
	Sender string
	Plan   FlightPlanData
}

func (*FlightPlan) Name() string { return "flight_plan" }

type ValidAtcResponse struct {
	Callsign string
	Valid    bool
}

func (*ValidAtcResponse) Name() string { return "valid_atc_response" }

type CapabilitiesResponse struct {
	Callsign     string
	Capabilities Capability
}

func (*CapabilitiesResponse) Name() string { return "capabilities_response" }

type Com1FrequencyResponse struct {
	Callsign     string
	FrequencyKHz int
}

func (*Com1FrequencyResponse) Name() string { return "com1_frequency_response" }

type RealNameResponse struct {
	Callsign string
	RealName string
}

func (*RealNameResponse) Name() string { return "real_name_response" }

type ServerResponse struct {
	Callsign string
	Server   string
}

func (*ServerResponse) Name() string { return "server_response" }

type AircraftConfig struct {
	Sender       string
	Config       map[string]interface{}
	IsFull       bool
	OffsetTimeMs int64
}

func (*AircraftConfig) Name() string { return "aircraft_config" }

// RevBAircraftConfig IVAO -MD 报文, 内容不做解析
type RevBAircraftConfig struct {
	Sender string
	Data   string
}

func (*RevBAircraftConfig) Name() string { return "revb_aircraft_config" }

type PlaneInformation struct {
	Sender       string
	AircraftIcao string
	AirlineIcao  string
	Livery       string
}

func (*PlaneInformation) Name() string { return "plane_information" }

type PlaneInformationFsinn struct {
	Sender       string
	AirlineIcao  string
	AircraftIcao string
	CombinedType string
	ModelString  string
}

func (*PlaneInformationFsinn) Name() string { return "plane_information_fsinn" }

type PlaneInformationRequest struct {
	Sender string
}

func (*PlaneInformationRequest) Name() string { return "plane_information_request" }

type CustomPilotPacket struct {
	Sender    string
	SubType   string
	Arguments []string
}

func (*CustomPilotPacket) Name() string { return "custom_pilot_packet" }

type Pong struct {
	Sender string
	Rtt    time.Duration
}

func (*Pong) Name() string { return "pong" }

type Mute struct {
	Muted bool
}

func (*Mute) Name() string { return "mute" }

type VisualUpdatesToggled struct {
	Sender  string
	Enabled bool
}

func (*VisualUpdatesToggled) Name() string { return "visual_updates_toggled" }

type UnknownPacket struct {
	Line string
}

func (*UnknownPacket) Name() string { return "unknown_packet" }

type ServerError struct {
	Code        ServerErrorCode
	CausingParm string
	Description string
}

func (*ServerError) Name() string { return "server_error" }
