// Package fsd
package fsd

// OwnAircraftProviderInterface 本机状态提供者
type OwnAircraftProviderInterface interface {
	OwnAircraft() *OwnAircraft
}

// RemoteAircraftProviderInterface 判断远程机组或席位是否在关注范围内
type RemoteAircraftProviderInterface interface {
	IsAircraftInRange(callsign string) bool
}

// ChallengeContextInterface 单侧质询上下文
type ChallengeContextInterface interface {
	SetInitialChallenge(challenge string)
	GenerateResponse(challenge string) string
	GenerateChallenge() string
}

// AuthenticatorInterface 生成客户端与服务端两侧的质询上下文
type AuthenticatorInterface interface {
	NewContext() ChallengeContextInterface
}

// RawMessageSinkInterface 原始报文去向
type RawMessageSinkInterface interface {
	WriteRawMessage(message *RawMessage)
}

// StatisticsStoreInterface 网络统计持久化
type StatisticsStoreInterface interface {
	SaveNetworkStatistics(server string, sessionId string, counters map[string]int) error
}
