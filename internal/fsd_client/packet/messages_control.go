// Package packet
package packet

import (
	"strconv"
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// ServerError $ER sender:receiver:code:causingParam:description
type ServerError struct {
	Sender       string
	Receiver     string
	Code         fsd.ServerErrorCode
	CausingParam string
	Description  string
}

func (*ServerError) Type() MessageType { return TypeServerError }

func (m *ServerError) Tokens() []string {
	return []string{m.Sender, m.Receiver, strconv.Itoa(int(m.Code)), m.CausingParam, m.Description}
}

func ParseServerError(tokens []string) (*ServerError, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &ServerError{
		Sender:       tokens[0],
		Receiver:     tokens[1],
		Code:         fsd.ParseServerErrorCode(tokens[2]),
		CausingParam: tokenAt(tokens, 3),
		Description:  strings.Join(tokens[min(4, len(tokens)):], Separator),
	}, nil
}

// KillRequest $!! sender:receiver:reason
type KillRequest struct {
	Sender   string
	Receiver string
	Reason   string
}

func (*KillRequest) Type() MessageType { return TypeKillRequest }

func (m *KillRequest) Tokens() []string { return []string{m.Sender, m.Receiver, m.Reason} }

func ParseKillRequest(tokens []string) (*KillRequest, error) {
	if err := requireTokens(tokens, 2); err != nil {
		return nil, err
	}
	return &KillRequest{
		Sender:   tokens[0],
		Receiver: tokens[1],
		Reason:   strings.Join(tokens[2:], Separator),
	}, nil
}

// Mute #MU sender:receiver:muted
type Mute struct {
	Sender   string
	Receiver string
	Muted    bool
}

func (*Mute) Type() MessageType { return TypeMute }

func (m *Mute) Tokens() []string { return []string{m.Sender, m.Receiver, boolToken(m.Muted)} }

func ParseMute(tokens []string) (*Mute, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &Mute{Sender: tokens[0], Receiver: tokens[1], Muted: parseBool(tokens[2])}, nil
}

// Rehost $XX sender:host
type Rehost struct {
	Sender string
	Host   string
}

func (*Rehost) Type() MessageType { return TypeRehost }

func (m *Rehost) Tokens() []string { return []string{m.Sender, m.Host} }

func ParseRehost(tokens []string) (*Rehost, error) {
	if err := requireTokens(tokens, 2); err != nil {
		return nil, err
	}
	return &Rehost{Sender: tokens[0], Host: tokens[1]}, nil
}

// VisualPilotDataToggle $SF sender:client:active
type VisualPilotDataToggle struct {
	Sender string
	Client string
	Active bool
}

func (*VisualPilotDataToggle) Type() MessageType { return TypeVisualPilotDataToggle }

func (m *VisualPilotDataToggle) Tokens() []string {
	return []string{m.Sender, m.Client, boolToken(m.Active)}
}

func ParseVisualPilotDataToggle(tokens []string) (*VisualPilotDataToggle, error) {
	if err := requireTokens(tokens, 3); err != nil {
		return nil, err
	}
	return &VisualPilotDataToggle{Sender: tokens[0], Client: tokens[1], Active: parseBool(tokens[2])}, nil
}

// RevBClientParts IVAO -MD 报文, 原样透传
type RevBClientParts struct {
	Sender string
	Data   []string
}

func (*RevBClientParts) Type() MessageType { return TypeRevBClientParts }

func (m *RevBClientParts) Tokens() []string { return append([]string{m.Sender}, m.Data...) }

func ParseRevBClientParts(tokens []string) (*RevBClientParts, error) {
	if err := requireTokens(tokens, 1); err != nil {
		return nil, err
	}
	return &RevBClientParts{Sender: tokens[0], Data: append([]string(nil), tokens[1:]...)}, nil
}
