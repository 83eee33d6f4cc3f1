// Package packet
package packet

import (
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

const (
	Separator  = ":"
	LineEnding = "\r\n"
)

// ParseLine 匹配前缀并拆分字段, 未知前缀返回 Unknown
func ParseLine(line string) (MessageType, []string, error) {
	line = strings.TrimSpace(line)
	for _, entry := range prefixTable {
		if !strings.HasPrefix(line, string(entry.command)) {
			continue
		}
		payload := line[len(entry.command):]
		if payload == "" {
			return entry.messageType, nil, fsd.ErrEmptyPayload
		}
		return entry.messageType, strings.Split(payload, Separator), nil
	}
	return TypeUnknown, nil, nil
}

func MakePacket(command ClientCommand, parts ...string) string {
	totalLen := len(command)
	if len(parts) > 0 {
		for _, part := range parts {
			totalLen += len(part)
		}
		totalLen += len(parts) - 1
	}

	var builder strings.Builder
	builder.Grow(totalLen)
	builder.WriteString(string(command))
	for i, part := range parts {
		if i > 0 {
			builder.WriteString(Separator)
		}
		builder.WriteString(part)
	}
	return builder.String()
}

// Message 可序列化的报文
type Message interface {
	Type() MessageType
	Tokens() []string
}

// Validator 发送前的报文自检, 不通过的报文会被丢弃
type Validator interface {
	Valid() bool
}

// Encode 序列化报文, 不含行尾
func Encode(message Message) (string, error) {
	if validator, ok := message.(Validator); ok && !validator.Valid() {
		return "", ErrInvalidMessage
	}
	command, ok := CommandOf(message.Type())
	if !ok {
		return "", ErrUnregisteredType
	}
	return MakePacket(command, message.Tokens()...), nil
}

func stripColons(s string) string {
	return strings.ReplaceAll(s, Separator, "")
}

func requireTokens(tokens []string, n int) error {
	if len(tokens) < n {
		return ErrTooFewTokens
	}
	return nil
}

func tokenAt(tokens []string, index int) string {
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}
