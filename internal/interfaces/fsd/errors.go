// Package fsd
package fsd

import "errors"

var (
	ErrNotDisconnected   = errors.New("client is not disconnected")
	ErrNotConnected      = errors.New("client is not connected")
	ErrMissingIdentity   = errors.New("client name, version and capabilities must be set before connecting")
	ErrMissingCallsign   = errors.New("own callsign must be set before connecting")
	ErrAuthMismatch      = errors.New("server authentication response mismatch")
	ErrRevisionTooLow    = errors.New("protocol revision does not support authentication")
	ErrSocketClosed      = errors.New("socket closed by remote host")
	ErrEmptyPayload      = errors.New("message payload is empty")
	ErrPacketTooShort    = errors.New("message has too few tokens")
	ErrClientShutdown    = errors.New("client has been shut down")
	ErrEmptyRecipient    = errors.New("message recipient is empty")
	ErrUnknownQueryType  = errors.New("unknown client query type")
	ErrAuthTokenRejected = errors.New("auth token endpoint rejected credentials")
)
