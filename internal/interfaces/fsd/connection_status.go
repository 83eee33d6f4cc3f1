// Package fsd
package fsd

type ConnectionStatus int32

const (
	Disconnected ConnectionStatus = iota
	Connecting
	Connected
	Disconnecting
)

var connectionStatusString = []string{"Disconnected", "Connecting", "Connected", "Disconnecting"}

func (s ConnectionStatus) String() string {
	if s < 0 || int(s) >= len(connectionStatusString) {
		return "Unknown"
	}
	return connectionStatusString[s]
}

func (s ConnectionStatus) Index() int { return int(s) }

func (s ConnectionStatus) IsConnected() bool { return s == Connected }

func (s ConnectionStatus) IsDisconnected() bool { return s == Disconnected }

// IsPending 连接或断开过程中
func (s ConnectionStatus) IsPending() bool { return s == Connecting || s == Disconnecting }
