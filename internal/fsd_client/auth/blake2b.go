// Package auth 实现认证协议版本的质询/应答握手
package auth

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/thanhpk/randstr"
	"golang.org/x/crypto/blake2b"
)

const (
	responseSize    = 16
	challengeLength = 32
)

var ErrEmptyAuthKey = errors.New("auth key is empty")

// Blake2bAuthenticator 以共享密钥做 keyed blake2b 的质询/应答
type Blake2bAuthenticator struct {
	key []byte
}

func NewBlake2bAuthenticator(key []byte) (*Blake2bAuthenticator, error) {
	if len(key) == 0 {
		return nil, ErrEmptyAuthKey
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("auth key longer than %d bytes", blake2b.Size)
	}
	return &Blake2bAuthenticator{key: append([]byte(nil), key...)}, nil
}

func (authenticator *Blake2bAuthenticator) NewContext() fsd.ChallengeContextInterface {
	return &blake2bContext{key: authenticator.key}
}

// blake2bContext 每次应答后状态滚动为本次应答, 双方必须按相同顺序调用
type blake2bContext struct {
	key   []byte
	state string
}

func (context *blake2bContext) SetInitialChallenge(challenge string) {
	context.state = challenge
}

func (context *blake2bContext) GenerateResponse(challenge string) string {
	hash, err := blake2b.New(responseSize, context.key)
	if err != nil {
		// 密钥长度已在构造时检查
		panic(err)
	}
	hash.Write([]byte(context.state))
	hash.Write([]byte(challenge))
	response := hex.EncodeToString(hash.Sum(nil))
	context.state = response
	return response
}

func (context *blake2bContext) GenerateChallenge() string {
	return randstr.Hex(challengeLength)
}
