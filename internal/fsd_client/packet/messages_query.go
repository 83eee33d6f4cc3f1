// Package packet
package packet

import (
	"strconv"
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/utils"
)

// ClientQuery $CQ sender:receiver:type[:payload...]
type ClientQuery struct {
	Sender    string
	Receiver  string
	QueryType fsd.ClientQueryType
	RawType   string
	Payload   []string
}

func (*ClientQuery) Type() MessageType { return TypeClientQuery }

func (m *ClientQuery) Valid() bool { return m.Receiver != "" && m.queryType() != "" }

func (m *ClientQuery) queryType() string {
	if m.QueryType != fsd.QueryUnknown {
		return string(m.QueryType)
	}
	return m.RawType
}

func (m *ClientQuery) Tokens() []string {
	tokens := []string{m.Sender, m.Receiver, m.queryType()}
	return append(tokens, m.Payload...)
}

func ParseClientQuery(tokens []string) (*ClientQuery, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &ClientQuery{
		Sender:    tokens[0],
		Receiver:  tokens[1],
		QueryType: fsd.ParseClientQueryType(tokens[2]),
		RawType:   tokens[2],
		Payload:   append([]string(nil), tokens[3:]...),
	}, nil
}

// ClientResponse $CR sender:receiver:type[:data...]
type ClientResponse struct {
	Sender       string
	Receiver     string
	QueryType    fsd.ClientQueryType
	RawType      string
	ResponseData []string
}

func (*ClientResponse) Type() MessageType { return TypeClientResponse }

func (m *ClientResponse) Valid() bool { return m.Receiver != "" }

func (m *ClientResponse) Tokens() []string {
	queryType := m.RawType
	if m.QueryType != fsd.QueryUnknown {
		queryType = string(m.QueryType)
	}
	tokens := []string{m.Sender, m.Receiver, queryType}
	return append(tokens, m.ResponseData...)
}

func ParseClientResponse(tokens []string) (*ClientResponse, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &ClientResponse{
		Sender:       tokens[0],
		Receiver:     tokens[1],
		QueryType:    fsd.ParseClientQueryType(tokens[2]),
		RawType:      tokens[2],
		ResponseData: append([]string(nil), tokens[3:]...),
	}, nil
}

// Data 返回第 index 个响应字段, 不存在时为空串
func (m *ClientResponse) Data(index int) string {
	return tokenAt(m.ResponseData, index)
}

// TextMessage #TM sender:receiver:message, 消息正文可以包含冒号
type TextMessage struct {
	Sender   string
	Receiver string
	Message  string
}

func (*TextMessage) Type() MessageType { return TypeTextMessage }

func (m *TextMessage) Valid() bool { return m.Receiver != "" && m.Message != "" }

func (m *TextMessage) Tokens() []string { return []string{m.Sender, m.Receiver, m.Message} }

func ParseTextMessage(tokens []string) (*TextMessage, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &TextMessage{
		Sender:   tokens[0],
		Receiver: tokens[1],
		Message:  strings.Join(tokens[2:], Separator),
	}, nil
}

// IsRadioMessage 接收方为 @freq 形式
func (m *TextMessage) IsRadioMessage() bool { return strings.HasPrefix(m.Receiver, "@") }

func (m *TextMessage) IsSupervisorMessage() bool {
	return m.Receiver == string(fsd.GroupSupervisors)
}

// Frequencies 解析 @24050&@35725 形式的接收频率, 单位 kHz
func (m *TextMessage) Frequencies() []int {
	if !m.IsRadioMessage() {
		return nil
	}
	result := make([]int, 0, 2)
	for _, part := range strings.Split(m.Receiver, "&") {
		part = strings.TrimPrefix(part, "@")
		value, err := strconv.Atoi(part)
		if err != nil || value <= 0 {
			continue
		}
		result = append(result, value+100000)
	}
	return result
}

// RadioReceiver 由频率列表生成接收方字段
func RadioReceiver(frequenciesKHz []int) string {
	parts := make([]string, 0, len(frequenciesKHz))
	for _, frequency := range frequenciesKHz {
		parts = append(parts, "@"+strconv.Itoa(frequency-100000))
	}
	return strings.Join(parts, "&")
}

// FlightPlan $FP sender:receiver:rules:type:tas:dep:etd:atd:alt:dest:hrs:mins:fuelH:fuelM:altn:remarks:route
type FlightPlan struct {
	Sender   string
	Receiver string
	Plan     fsd.FlightPlanData
}

func (*FlightPlan) Type() MessageType { return TypeFlightPlan }

func (m *FlightPlan) Tokens() []string {
	plan := m.Plan
	return []string{m.Sender, m.Receiver, string(plan.FlightRules), stripColons(plan.AircraftIcaoType),
		strconv.Itoa(plan.TrueCruisingSpeed), stripColons(plan.DepAirport), strconv.Itoa(plan.EstimatedDepTime),
		strconv.Itoa(plan.ActualDepTime), stripColons(plan.CruiseAlt), stripColons(plan.DestAirport),
		strconv.Itoa(plan.HoursEnroute), strconv.Itoa(plan.MinutesEnroute), strconv.Itoa(plan.FuelAvailHours),
		strconv.Itoa(plan.FuelAvailMinutes), stripColons(plan.AltAirport), stripColons(plan.Remarks),
		stripColons(plan.Route)}
}

func ParseFlightPlan(tokens []string) (*FlightPlan, error) {
	if err := requireTokens(tokens, 17); err != nil {
		return nil, err
	}
	return &FlightPlan{
		Sender:   tokens[0],
		Receiver: tokens[1],
		Plan: fsd.FlightPlanData{
			FlightRules:       fsd.ParseFlightRules(tokens[2]),
			AircraftIcaoType:  tokens[3],
			TrueCruisingSpeed: utils.StrToInt(tokens[4], 0),
			DepAirport:        tokens[5],
			EstimatedDepTime:  utils.StrToInt(tokens[6], 0),
			ActualDepTime:     utils.StrToInt(tokens[7], 0),
			CruiseAlt:         tokens[8],
			DestAirport:       tokens[9],
			HoursEnroute:      utils.StrToInt(tokens[10], 0),
			MinutesEnroute:    utils.StrToInt(tokens[11], 0),
			FuelAvailHours:    utils.StrToInt(tokens[12], 0),
			FuelAvailMinutes:  utils.StrToInt(tokens[13], 0),
			AltAirport:        tokens[14],
			Remarks:           tokens[15],
			Route:             strings.Join(tokens[16:], " "),
		},
	}, nil
}

// Ping $PI sender:receiver:timestamp
type Ping struct {
	Sender    string
	Receiver  string
	Timestamp string
}

func (*Ping) Type() MessageType { return TypePing }

func (m *Ping) Tokens() []string { return []string{m.Sender, m.Receiver, m.Timestamp} }

func ParsePing(tokens []string) (*Ping, error) {
	if err := requireTokens(tokens, 2); err != nil {
		return nil, err
	}
	return &Ping{Sender: tokens[0], Receiver: tokens[1], Timestamp: tokenAt(tokens, 2)}, nil
}

// Pong $PO sender:receiver:timestamp
type Pong struct {
	Sender    string
	Receiver  string
	Timestamp string
}

func (*Pong) Type() MessageType { return TypePong }

func (m *Pong) Tokens() []string { return []string{m.Sender, m.Receiver, m.Timestamp} }

func ParsePong(tokens []string) (*Pong, error) {
	if err := requireTokens(tokens, 2); err != nil {
		return nil, err
	}
	return &Pong{Sender: tokens[0], Receiver: tokens[1], Timestamp: tokenAt(tokens, 2)}, nil
}
