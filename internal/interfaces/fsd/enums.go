// Package fsd
package fsd

import "strings"

// ProtocolRevision 协议版本
type ProtocolRevision int

const (
	ProtocolClassic         ProtocolRevision = 9
	ProtocolVatsimAtc       ProtocolRevision = 10
	ProtocolVatsimAuth      ProtocolRevision = 100
	ProtocolVatsimVelocity  ProtocolRevision = 101
	ProtocolUnknownRevision ProtocolRevision = 0
)

// RequiresAuth 是否需要质询握手
func (p ProtocolRevision) RequiresAuth() bool { return p >= ProtocolVatsimAuth }

func (p ProtocolRevision) Index() int { return int(p) }

type LoginMode int

const (
	LoginPilot LoginMode = iota
	LoginObserver
)

var loginModeString = []string{"pilot", "observer"}

func (m LoginMode) String() string {
	if m < 0 || int(m) >= len(loginModeString) {
		return "unknown"
	}
	return loginModeString[m]
}

func (m LoginMode) IsPilot() bool    { return m == LoginPilot }
func (m LoginMode) IsObserver() bool { return m == LoginObserver }

func ParseLoginMode(s string) (LoginMode, bool) {
	for i, v := range loginModeString {
		if strings.EqualFold(v, s) {
			return LoginMode(i), true
		}
	}
	return LoginPilot, false
}

// ServerType 服务器类型, VATSIM 服务器会以结构化的 $CR ATIS 回复
type ServerType int

const (
	ServerVatsim ServerType = iota
	ServerFsd
)

var serverTypeString = []string{"vatsim", "fsd"}

func (t ServerType) String() string {
	if t < 0 || int(t) >= len(serverTypeString) {
		return "unknown"
	}
	return serverTypeString[t]
}

func (t ServerType) IsVatsim() bool { return t == ServerVatsim }

func ParseServerType(s string) (ServerType, bool) {
	for i, v := range serverTypeString {
		if strings.EqualFold(v, s) {
			return ServerType(i), true
		}
	}
	return ServerFsd, false
}

type SimType int

const (
	SimUnknown    SimType = 0
	SimMSFS95     SimType = 1
	SimMSFS98     SimType = 2
	SimMSCFS      SimType = 3
	SimMSFS2000   SimType = 4
	SimMSCFS2     SimType = 5
	SimMSFS2002   SimType = 6
	SimMSCFS3     SimType = 7
	SimMSFS2004   SimType = 8
	SimMSFSX      SimType = 9
	SimXPLANE8    SimType = 12
	SimXPLANE9    SimType = 13
	SimXPLANE10   SimType = 14
	SimPS1        SimType = 15
	SimXPLANE11   SimType = 16
	SimXPLANE12   SimType = 17
	SimFlightGear SimType = 25
	SimP3Dv1      SimType = 30
	SimMSFS2020   SimType = 31
	SimMSFS2024   SimType = 32
)

// Facility 管制席位类型
type Facility int

const (
	FacilityOBS Facility = iota
	FacilityFSS
	FacilityDEL
	FacilityGND
	FacilityTWR
	FacilityAPP
	FacilityCTR
)

var facilityString = []string{"OBS", "FSS", "DEL", "GND", "TWR", "APP", "CTR"}

func (f Facility) String() string {
	if f < 0 || int(f) >= len(facilityString) {
		return "OBS"
	}
	return facilityString[f]
}

// FlightRules 飞行规则
type FlightRules string

const (
	FlightRulesIFR  FlightRules = "I"
	FlightRulesVFR  FlightRules = "V"
	FlightRulesSVFR FlightRules = "S"
	FlightRulesDVFR FlightRules = "D"
)

func ParseFlightRules(s string) FlightRules {
	switch strings.ToUpper(s) {
	case "V":
		return FlightRulesVFR
	case "S":
		return FlightRulesSVFR
	case "D":
		return FlightRulesDVFR
	default:
		return FlightRulesIFR
	}
}

// TransponderMode 应答机模式, 对应 @ 报文首字段
type TransponderMode string

const (
	TransponderStandby TransponderMode = "S"
	TransponderModeC   TransponderMode = "N"
	TransponderIdent   TransponderMode = "Y"
)

func ParseTransponderMode(s string) TransponderMode {
	switch s {
	case "N":
		return TransponderModeC
	case "Y":
		return TransponderIdent
	default:
		return TransponderStandby
	}
}

// Capability 客户端能力, $CR CAPS 报文中以 KEY=1 出现
type Capability int

const (
	CapabilityNone    Capability = 0
	CapabilityAtcInfo Capability = 1 << (iota - 1)
	CapabilitySecondaryPos
	CapabilityAircraftInfo
	CapabilityOngoingCoord
	CapabilityInterimPos
	CapabilityFastPos
	CapabilityVisualPos
	CapabilityStealth
	CapabilityAircraftConfig
	CapabilityIcaoEquipment
)

var capabilityKeys = []struct {
	flag Capability
	key  string
}{
	{CapabilityAtcInfo, "ATCINFO"},
	{CapabilitySecondaryPos, "SECPOS"},
	{CapabilityAircraftInfo, "MODELDESC"},
	{CapabilityOngoingCoord, "ONGOINGCOORD"},
	{CapabilityInterimPos, "INTERIMPOS"},
	{CapabilityFastPos, "FASTPOS"},
	{CapabilityVisualPos, "VISUPDATE"},
	{CapabilityStealth, "STEALTH"},
	{CapabilityAircraftConfig, "ACCONFIG"},
	{CapabilityIcaoEquipment, "ICAOEQ"},
}

func (c Capability) Has(flag Capability) bool { return c&flag == flag }

// Keys 按固定顺序返回已设置能力的键名
func (c Capability) Keys() []string {
	keys := make([]string, 0, len(capabilityKeys))
	for _, v := range capabilityKeys {
		if c.Has(v.flag) {
			keys = append(keys, v.key)
		}
	}
	return keys
}

func CapabilityFromKey(key string) Capability {
	for _, v := range capabilityKeys {
		if strings.EqualFold(v.key, key) {
			return v.flag
		}
	}
	return CapabilityNone
}

// ParseCapabilities 解析 "ATCINFO,ACCONFIG" 形式的配置字符串
func ParseCapabilities(s string) Capability {
	result := CapabilityNone
	for _, key := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '|' }) {
		result |= CapabilityFromKey(key)
	}
	return result
}

// ClientQueryType $CQ/$CR 报文的查询类型
type ClientQueryType string

const (
	QueryIsValidATC       ClientQueryType = "ATC"
	QueryCapabilities     ClientQueryType = "CAPS"
	QueryCom1Freq         ClientQueryType = "C?"
	QueryRealName         ClientQueryType = "RN"
	QueryServer           ClientQueryType = "SV"
	QueryATIS             ClientQueryType = "ATIS"
	QueryPublicIP         ClientQueryType = "IP"
	QueryINF              ClientQueryType = "INF"
	QueryFP               ClientQueryType = "FP"
	QueryAircraftConfig   ClientQueryType = "ACC"
	QueryEuroscopeSimData ClientQueryType = "SIMDATA"
	QueryUnknown          ClientQueryType = ""
)

var knownQueries = []ClientQueryType{QueryIsValidATC, QueryCapabilities, QueryCom1Freq, QueryRealName,
	QueryServer, QueryATIS, QueryPublicIP, QueryINF, QueryFP, QueryAircraftConfig, QueryEuroscopeSimData}

func ParseClientQueryType(s string) ClientQueryType {
	for _, v := range knownQueries {
		if string(v) == s {
			return v
		}
	}
	return QueryUnknown
}

// AtisLineType 结构化 ATIS 回复的行类型
type AtisLineType string

const (
	AtisLineVoiceRoom AtisLineType = "V"
	AtisLineText      AtisLineType = "T"
	AtisLineLogoff    AtisLineType = "Z"
	AtisLineEnd       AtisLineType = "E"
)

// TextMessageGroup 群发接收方
type TextMessageGroup string

const (
	GroupAll         TextMessageGroup = "*"
	GroupAllAtc      TextMessageGroup = "*A"
	GroupAllPilots   TextMessageGroup = "*P"
	GroupSupervisors TextMessageGroup = "*S"
)
