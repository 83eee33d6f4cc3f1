package fsd_client

import (
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// updateIdentity 只允许在断开状态下修改身份信息
func (client *Client) updateIdentity(update func(id *identity)) error {
	client.identityMu.Lock()
	defer client.identityMu.Unlock()
	if !client.Status().IsDisconnected() {
		client.assert(false)
		return fsd.ErrNotDisconnected
	}
	update(&client.identity)
	return nil
}

func (client *Client) readIdentity() identity {
	client.identityMu.RLock()
	defer client.identityMu.RUnlock()
	return client.identity
}

func (client *Client) SetServer(server *config.ServerConfig) error {
	return client.updateIdentity(func(id *identity) {
		id.server = *server
	})
}

func (client *Client) SetLoginMode(mode fsd.LoginMode) error {
	return client.updateIdentity(func(id *identity) {
		id.loginMode = mode
	})
}

func (client *Client) SetCallsign(callsign string) error {
	return client.updateIdentity(func(id *identity) {
		id.callsign = strings.ToUpper(strings.TrimSpace(callsign))
	})
}

// SetCredentials cid 与密码, realName 与 homebase 用于 RN 查询
func (client *Client) SetCredentials(cid, password, realName, homebase string) error {
	return client.updateIdentity(func(id *identity) {
		id.cid = cid
		id.password = password
		id.realName = realName
		id.homebase = homebase
	})
}

func (client *Client) SetClientIdentity(name string, clientId int, versionMajor, versionMinor int) error {
	return client.updateIdentity(func(id *identity) {
		id.clientName = name
		id.clientId = clientId
		id.versionMajor = versionMajor
		id.versionMinor = versionMinor
	})
}

func (client *Client) SetCapabilities(capabilities fsd.Capability) error {
	return client.updateIdentity(func(id *identity) {
		id.capabilities = capabilities
	})
}

func (client *Client) SetPilotRating(rating fsd.PilotRating) error {
	return client.updateIdentity(func(id *identity) {
		id.pilotRating = rating
	})
}

func (client *Client) SetAtcRating(rating fsd.AtcRating) error {
	return client.updateIdentity(func(id *identity) {
		id.atcRating = rating
	})
}

func (client *Client) SetSimType(simType fsd.SimType) error {
	return client.updateIdentity(func(id *identity) {
		id.simType = simType
	})
}

func (client *Client) SetOwnModel(modelString, livery string) error {
	return client.updateIdentity(func(id *identity) {
		id.modelString = modelString
		id.livery = livery
	})
}

func (client *Client) Callsign() string {
	return client.readIdentity().callsign
}

func (client *Client) LoginMode() fsd.LoginMode {
	return client.readIdentity().loginMode
}

func (client *Client) Server() config.ServerConfig {
	return client.readIdentity().server
}

// check 连接前的必要字段检查
func (id *identity) check() error {
	if id.callsign == "" {
		return fsd.ErrMissingCallsign
	}
	if id.clientName == "" || id.clientId == 0 || id.capabilities == fsd.CapabilityNone {
		return fsd.ErrMissingIdentity
	}
	return nil
}
