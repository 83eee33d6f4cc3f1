// Package fsd
package fsd

import "strconv"

// ServerErrorCode $ER 报文中的错误号
type ServerErrorCode byte

const (
	NoError ServerErrorCode = iota
	CallsignInUse
	InvalidCallsign
	AlreadyRegistered
	SyntaxError
	InvalidSrcCallsign
	InvalidCidPassword
	NoSuchCallsign
	NoFlightPlan
	NoWeatherProfile
	InvalidRevision
	RequestedLevelTooHigh
	ServerFull
	CidSuspended
	InvalidCtrl
	RatingTooLow
	InvalidClient
	AuthTimeout
	UnknownServerError
)

var serverErrorsString = []string{"No error", "Callsign in use", "Invalid callsign", "Already registered",
	"Syntax error", "Invalid source callsign", "Invalid CID/password", "No such callsign", "No flightplan",
	"No such weather profile", "Invalid protocol revision", "Requested level too high", "Server full",
	"CID/PID was suspended", "Invalid control", "Rating too low", "Unauthorized client software",
	"Authentication timeout", "Unknown error"}

var fatalServerErrors = map[ServerErrorCode]bool{
	CallsignInUse:         true,
	InvalidCallsign:       true,
	AlreadyRegistered:     true,
	InvalidCidPassword:    true,
	InvalidRevision:       true,
	RequestedLevelTooHigh: true,
	ServerFull:            true,
	CidSuspended:          true,
	RatingTooLow:          true,
	InvalidClient:         true,
	AuthTimeout:           true,
}

func (e ServerErrorCode) String() string {
	if int(e) >= len(serverErrorsString) {
		return serverErrorsString[UnknownServerError]
	}
	return serverErrorsString[e]
}

func (e ServerErrorCode) Index() int { return int(e) }

// IsFatal 致命错误会强制断开连接
func (e ServerErrorCode) IsFatal() bool { return fatalServerErrors[e] }

// ParseServerErrorCode 解析三位数错误号, 例如 "009"
func ParseServerErrorCode(code string) ServerErrorCode {
	value, err := strconv.Atoi(code)
	if err != nil || value < 0 || value >= int(UnknownServerError) {
		return UnknownServerError
	}
	return ServerErrorCode(value)
}
