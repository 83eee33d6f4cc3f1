// Package auth
package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// Handshake 持有一次会话的双侧质询上下文
// client 侧回应服务器的质询, server 侧用来校验服务器
type Handshake struct {
	client              fsd.ChallengeContextInterface
	server              fsd.ChallengeContextInterface
	lastServerChallenge string
}

func NewHandshake(authenticator fsd.AuthenticatorInterface) *Handshake {
	return &Handshake{
		client: authenticator.NewContext(),
		server: authenticator.NewContext(),
	}
}

// OnServerIdentification 处理 $DI, 返回放进 $ID 的客户端质询
func (handshake *Handshake) OnServerIdentification(initialChallenge string) string {
	handshake.client.SetInitialChallenge(initialChallenge)
	challenge := handshake.server.GenerateChallenge()
	handshake.server.SetInitialChallenge(challenge)
	return challenge
}

// OnChallenge 处理 $ZC, 返回应答以及发给服务器的新质询
func (handshake *Handshake) OnChallenge(challenge string) (response string, serverChallenge string) {
	response = handshake.client.GenerateResponse(challenge)
	serverChallenge = handshake.server.GenerateChallenge()
	handshake.lastServerChallenge = serverChallenge
	return
}

// VerifyResponse 处理 $ZR, 不匹配说明对端不可信
func (handshake *Handshake) VerifyResponse(response string) error {
	if handshake.lastServerChallenge == "" {
		return fmt.Errorf("unexpected auth response: %w", fsd.ErrAuthMismatch)
	}
	expected := handshake.server.GenerateResponse(handshake.lastServerChallenge)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(response)) != 1 {
		return fmt.Errorf("server answered %q: %w", response, fsd.ErrAuthMismatch)
	}
	return nil
}

func (handshake *Handshake) LastServerChallenge() string {
	return handshake.lastServerChallenge
}
