// Package packet
package packet

import (
	"strings"
)

const (
	SubTypePlaneInfoRequest      = "PIR"
	SubTypePlaneInformation      = "PI"
	SubTypePlaneInfoRequestFsinn = "FSIPIR"
	SubTypePlaneInformationFsinn = "FSIPI"
	SubTypeInterimPosition       = "VI"
	SubTypeSquawkBoxInterim      = "I"
	planeInformationGeneral      = "GEN"
	planeInformationLegacy       = "X"
	planeInformationEquipmentKey = "EQUIPMENT="
	planeInformationAirlineKey   = "AIRLINE="
	planeInformationLiveryKey    = "LIVERY="
)

// PilotClientSubType #SB 报文第三个字段
func PilotClientSubType(tokens []string) string {
	return tokenAt(tokens, 2)
}

// PlaneInfoRequest #SB sender:receiver:PIR
type PlaneInfoRequest struct {
	Sender   string
	Receiver string
}

func (*PlaneInfoRequest) Type() MessageType { return TypePilotClientCom }

func (m *PlaneInfoRequest) Valid() bool { return m.Receiver != "" }

func (m *PlaneInfoRequest) Tokens() []string {
	return []string{m.Sender, m.Receiver, SubTypePlaneInfoRequest}
}

func ParsePlaneInfoRequest(tokens []string) (*PlaneInfoRequest, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &PlaneInfoRequest{Sender: tokens[0], Receiver: tokens[1]}, nil
}

// PlaneInformation #SB sender:receiver:PI:GEN:EQUIPMENT=..:AIRLINE=..:LIVERY=..
// 空字段不发送
type PlaneInformation struct {
	Sender   string
	Receiver string
	Aircraft string
	Airline  string
	Livery   string
}

func (*PlaneInformation) Type() MessageType { return TypePilotClientCom }

func (m *PlaneInformation) Valid() bool { return m.Receiver != "" }

func (m *PlaneInformation) Tokens() []string {
	tokens := []string{m.Sender, m.Receiver, SubTypePlaneInformation, planeInformationGeneral}
	if m.Aircraft != "" {
		tokens = append(tokens, planeInformationEquipmentKey+m.Aircraft)
	}
	if m.Airline != "" {
		tokens = append(tokens, planeInformationAirlineKey+m.Airline)
	}
	if m.Livery != "" {
		tokens = append(tokens, planeInformationLiveryKey+m.Livery)
	}
	return tokens
}

func ParsePlaneInformation(tokens []string) (*PlaneInformation, error) {
	if err := requireTokens(tokens, 4); err != nil {
		return nil, err
	}
	result := &PlaneInformation{Sender: tokens[0], Receiver: tokens[1]}
	for _, token := range tokens[4:] {
		switch {
		case strings.HasPrefix(token, planeInformationEquipmentKey):
			result.Aircraft = strings.TrimPrefix(token, planeInformationEquipmentKey)
		case strings.HasPrefix(token, planeInformationAirlineKey):
			result.Airline = strings.TrimPrefix(token, planeInformationAirlineKey)
		case strings.HasPrefix(token, planeInformationLiveryKey):
			result.Livery = strings.TrimPrefix(token, planeInformationLiveryKey)
		}
	}
	return result, nil
}

// IsGeneralPlaneInformation PI 子报文中只有 GEN 格式会被处理
func IsGeneralPlaneInformation(tokens []string) bool {
	return len(tokens) > 4 && tokens[3] == planeInformationGeneral
}

// IsLegacyPlaneInformation 旧版 PI:X 格式
func IsLegacyPlaneInformation(tokens []string) bool {
	return len(tokens) > 6 && tokens[3] == planeInformationLegacy
}

// PlaneInformationFsinn #SB sender:receiver:FSIPI|FSIPIR:0:airline:aircraft:::::combinedType:model
type PlaneInformationFsinn struct {
	Request      bool
	Sender       string
	Receiver     string
	AirlineIcao  string
	AircraftIcao string
	CombinedType string
	ModelString  string
}

func (*PlaneInformationFsinn) Type() MessageType { return TypePilotClientCom }

func (m *PlaneInformationFsinn) Valid() bool { return m.Receiver != "" }

func (m *PlaneInformationFsinn) Tokens() []string {
	subType := SubTypePlaneInformationFsinn
	if m.Request {
		subType = SubTypePlaneInfoRequestFsinn
	}
	return []string{m.Sender, m.Receiver, subType, "0", m.AirlineIcao, m.AircraftIcao, "", "", "", "",
		m.CombinedType, m.ModelString}
}

func ParsePlaneInformationFsinn(tokens []string) (*PlaneInformationFsinn, error) {
	if err := requireTokens(tokens, 12); err != nil {
		return nil, err
	}
	return &PlaneInformationFsinn{
		Request:      tokens[2] == SubTypePlaneInfoRequestFsinn,
		Sender:       tokens[0],
		Receiver:     tokens[1],
		AirlineIcao:  tokens[4],
		AircraftIcao: tokens[5],
		CombinedType: tokens[10],
		ModelString:  strings.Join(tokens[11:], Separator),
	}, nil
}
