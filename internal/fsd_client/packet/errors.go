// Package packet
package packet

import (
	"errors"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

var (
	ErrInvalidMessage   = errors.New("message failed validation")
	ErrUnregisteredType = errors.New("message type has no registered prefix")
	ErrTooFewTokens     = fsd.ErrPacketTooShort
)
