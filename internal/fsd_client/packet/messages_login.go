// Package packet
package packet

import (
	"fmt"
	"strconv"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/utils"
)

// AddPilot #AP callsign:SERVER:cid:password:rating:protocol:simtype:realname
type AddPilot struct {
	Sender   string
	Cid      string
	Password string
	Rating   fsd.PilotRating
	Protocol fsd.ProtocolRevision
	SimType  fsd.SimType
	RealName string
}

func (*AddPilot) Type() MessageType { return TypeAddPilot }

func (m *AddPilot) Valid() bool { return m.Sender != "" && m.Cid != "" }

func (m *AddPilot) Tokens() []string {
	return []string{m.Sender, global.FSDServerName, m.Cid, m.Password, strconv.Itoa(int(m.Rating)),
		strconv.Itoa(int(m.Protocol)), strconv.Itoa(int(m.SimType)), m.RealName}
}

func ParseAddPilot(tokens []string) (*AddPilot, error) {
	if err := requireTokens(tokens, 8); err != nil {
		return nil, err
	}
	return &AddPilot{
		Sender:   tokens[0],
		Cid:      tokens[2],
		Password: tokens[3],
		Rating:   fsd.PilotRating(utils.StrToInt(tokens[4], 0)),
		Protocol: fsd.ProtocolRevision(utils.StrToInt(tokens[5], 0)),
		SimType:  fsd.SimType(utils.StrToInt(tokens[6], 0)),
		RealName: tokens[7],
	}, nil
}

// AddAtc #AA callsign:SERVER:realname:cid:password:rating:protocol
type AddAtc struct {
	Sender   string
	RealName string
	Cid      string
	Password string
	Rating   fsd.AtcRating
	Protocol fsd.ProtocolRevision
}

func (*AddAtc) Type() MessageType { return TypeAddAtc }

func (m *AddAtc) Valid() bool { return m.Sender != "" && m.Cid != "" }

func (m *AddAtc) Tokens() []string {
	return []string{m.Sender, global.FSDServerName, m.RealName, m.Cid, m.Password, strconv.Itoa(int(m.Rating)),
		strconv.Itoa(int(m.Protocol))}
}

func ParseAddAtc(tokens []string) (*AddAtc, error) {
	if err := requireTokens(tokens, 7); err != nil {
		return nil, err
	}
	return &AddAtc{
		Sender:   tokens[0],
		RealName: tokens[2],
		Cid:      tokens[3],
		Password: tokens[4],
		Rating:   fsd.AtcRating(utils.StrToInt(tokens[5], 0)),
		Protocol: fsd.ProtocolRevision(utils.StrToInt(tokens[6], 0)),
	}, nil
}

// DeletePilot #DP callsign:cid
type DeletePilot struct {
	Sender string
	Cid    string
}

func (*DeletePilot) Type() MessageType { return TypeDeletePilot }

func (m *DeletePilot) Tokens() []string { return []string{m.Sender, m.Cid} }

func ParseDeletePilot(tokens []string) (*DeletePilot, error) {
	if err := requireTokens(tokens, 1); err != nil {
		return nil, err
	}
	return &DeletePilot{Sender: tokens[0], Cid: tokenAt(tokens, 1)}, nil
}

// DeleteAtc #DA callsign:cid
type DeleteAtc struct {
	Sender string
	Cid    string
}

func (*DeleteAtc) Type() MessageType { return TypeDeleteAtc }

func (m *DeleteAtc) Tokens() []string { return []string{m.Sender, m.Cid} }

func ParseDeleteAtc(tokens []string) (*DeleteAtc, error) {
	if err := requireTokens(tokens, 1); err != nil {
		return nil, err
	}
	return &DeleteAtc{Sender: tokens[0], Cid: tokenAt(tokens, 1)}, nil
}

// FsdIdentification $DI sender:receiver:version:initialChallenge
type FsdIdentification struct {
	Sender           string
	Receiver         string
	ServerVersion    string
	InitialChallenge string
}

func (*FsdIdentification) Type() MessageType { return TypeFsdIdentification }

func (m *FsdIdentification) Tokens() []string {
	return []string{m.Sender, m.Receiver, m.ServerVersion, m.InitialChallenge}
}

func ParseFsdIdentification(tokens []string) (*FsdIdentification, error) {
	if err := requireTokens(tokens, 4); err != nil {
		return nil, err
	}
	return &FsdIdentification{Sender: tokens[0], Receiver: tokens[1], ServerVersion: tokens[2], InitialChallenge: tokens[3]}, nil
}

// ClientIdentification $ID callsign:SERVER:clientId(hex):name:major:minor:cid:sysUid:initialChallenge
type ClientIdentification struct {
	Sender           string
	ClientId         int
	ClientName       string
	VersionMajor     int
	VersionMinor     int
	Cid              string
	SysUid           string
	InitialChallenge string
}

func (*ClientIdentification) Type() MessageType { return TypeClientIdentification }

func (m *ClientIdentification) Tokens() []string {
	return []string{m.Sender, global.FSDServerName, fmt.Sprintf("%x", m.ClientId), m.ClientName,
		strconv.Itoa(m.VersionMajor), strconv.Itoa(m.VersionMinor), m.Cid, m.SysUid, m.InitialChallenge}
}

func ParseClientIdentification(tokens []string) (*ClientIdentification, error) {
	if err := requireTokens(tokens, 9); err != nil {
		return nil, err
	}
	clientId, err := strconv.ParseInt(tokens[2], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", tokens[2], err)
	}
	return &ClientIdentification{
		Sender:           tokens[0],
		ClientId:         int(clientId),
		ClientName:       tokens[3],
		VersionMajor:     utils.StrToInt(tokens[4], 0),
		VersionMinor:     utils.StrToInt(tokens[5], 0),
		Cid:              tokens[6],
		SysUid:           tokens[7],
		InitialChallenge: tokens[8],
	}, nil
}

// AuthChallenge $ZC sender:receiver:challenge
type AuthChallenge struct {
	Sender    string
	Receiver  string
	Challenge string
}

func (*AuthChallenge) Type() MessageType { return TypeAuthChallenge }

func (m *AuthChallenge) Tokens() []string { return []string{m.Sender, m.Receiver, m.Challenge} }

func ParseAuthChallenge(tokens []string) (*AuthChallenge, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &AuthChallenge{Sender: tokens[0], Receiver: tokens[1], Challenge: tokens[2]}, nil
}

// AuthResponse $ZR sender:receiver:response
type AuthResponse struct {
	Sender   string
	Receiver string
	Response string
}

func (*AuthResponse) Type() MessageType { return TypeAuthResponse }

func (m *AuthResponse) Tokens() []string { return []string{m.Sender, m.Receiver, m.Response} }

func ParseAuthResponse(tokens []string) (*AuthResponse, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &AuthResponse{Sender: tokens[0], Receiver: tokens[1], Response: tokens[2]}, nil
}
