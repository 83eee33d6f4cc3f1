package fsd_client

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/half-nothing/fsd-client/internal/fsd_client/auth"
	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

// Connect 开始连接, 已连接或连接中时什么都不做
func (client *Client) Connect() error {
	if client.shutdown.Load() {
		return fsd.ErrClientShutdown
	}
	if !client.Status().IsDisconnected() {
		return nil
	}
	id := client.readIdentity()
	if err := id.check(); err != nil {
		client.assert(false)
		return err
	}
	if !client.post(client.connect) {
		return fsd.ErrClientShutdown
	}
	return nil
}

// Disconnect 可以在任意协程中调用, 实际断开在工作协程中完成
func (client *Client) Disconnect() {
	client.post(client.disconnect)
}

func (client *Client) connect() {
	if !client.Status().IsDisconnected() {
		return
	}
	session := client.readIdentity()
	if err := session.check(); err != nil {
		client.logger.WarnF("Refuse to connect, %v", err)
		return
	}
	codec, err := packet.NewTextCodec(session.server.TextCodec)
	if err != nil {
		client.logger.ErrorF("Invalid text codec %s, %v", session.server.TextCodec, err)
		return
	}

	var handshake *auth.Handshake
	if session.server.Revision.RequiresAuth() {
		authenticator := client.authenticator
		if authenticator == nil {
			authenticator, err = auth.NewBlake2bAuthenticator(session.server.AuthKeyBytes)
			if err != nil {
				client.logger.ErrorF("Cannot create authenticator, %v", err)
				return
			}
		}
		handshake = auth.NewHandshake(authenticator)
	}

	client.session = session
	client.codec = codec
	client.handshake = handshake
	client.clearState()
	client.filterPassword = true
	client.loginSince = client.timeNow()
	client.generation++
	client.sessionId = uuid.Must(uuid.NewV7()).String()
	client.sessionIdValue.Store(client.sessionId)
	client.statistics.Clear()

	client.startWatchdog(client.generation)
	client.updateConnectionStatus(fsd.Connecting)
	client.dial(client.generation, session.server.Host)
	client.startTimers()
}

func (client *Client) address(host string) string {
	return net.JoinHostPort(host, strconv.Itoa(int(client.session.server.Port)))
}

func (client *Client) dial(generation uint64, host string) {
	ctx, cancel := context.WithCancel(context.Background())
	client.dialCancel = cancel
	address := client.address(host)
	client.logger.InfoF("[%s](%s) connecting to %s", client.sessionId, client.session.callsign, address)
	go func() {
		conn, err := client.dialer.DialContext(ctx, "tcp", address)
		if !client.post(func() { client.onDialed(generation, conn, err) }) && conn != nil {
			_ = conn.Close()
		}
	}()
}

func (client *Client) onDialed(generation uint64, conn net.Conn, err error) {
	if generation != client.generation || client.Status() != fsd.Connecting || client.conn != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if client.dialCancel != nil {
		client.dialCancel()
		client.dialCancel = nil
	}
	if err != nil {
		client.logger.ErrorF("[%s](%s) connect to %s fail, %v", client.sessionId, client.session.callsign,
			client.address(client.session.server.Host), err)
		client.emit(&fsd.SevereNetworkError{Err: err})
		client.disconnect()
		return
	}
	client.attachConnection(conn)
	client.onSocketConnected()
}

func (client *Client) attachConnection(conn net.Conn) {
	client.connId++
	client.conn = conn
	go client.readLoop(client.connId, conn, client.codec)
}

func (client *Client) closeConnection() {
	if client.conn == nil {
		return
	}
	if err := client.conn.Close(); err != nil {
		client.logger.DebugF("[%s](%s) close connection, %v", client.sessionId, client.session.callsign, err)
	}
	client.conn = nil
	client.connId++
}

// onSocketConnected 旧协议直接登录, 需要认证的协议等待服务器 $DI
func (client *Client) onSocketConnected() {
	client.logger.InfoF("[%s](%s) connected to %s", client.sessionId, client.session.callsign, client.conn.RemoteAddr())
	if !client.session.server.Revision.RequiresAuth() {
		client.sendLogin("")
		client.updateConnectionStatus(fsd.Connected)
	}
}

func (client *Client) onSocketError(connId uint64, err error) {
	if connId != client.connId || client.conn == nil {
		return
	}
	// 断开过程中下线报文写入失败属于同一次故障
	if client.rehosting || client.Status() == fsd.Disconnecting {
		return
	}
	if packet.IsNetClosedError(err) {
		client.logger.WarnF("[%s](%s) connection closed by remote host", client.sessionId, client.session.callsign)
		client.emit(&fsd.SevereNetworkError{Err: fmt.Errorf("%w: %v", fsd.ErrSocketClosed, err)})
	} else {
		client.logger.ErrorF("[%s](%s) socket error, %v", client.sessionId, client.session.callsign, err)
		client.emit(&fsd.SevereNetworkError{Err: err})
	}
	client.disconnect()
}

func (client *Client) disconnect() {
	status := client.Status()
	if status == fsd.Disconnected || status == fsd.Disconnecting {
		return
	}
	client.stopTimers()
	client.stopWatchdog()
	client.updateConnectionStatus(fsd.Disconnecting)

	if client.conn != nil {
		client.pacer.Clear()
		if client.session.loginMode.IsObserver() {
			client.sendDirect(&packet.DeleteAtc{Sender: client.session.callsign, Cid: client.session.cid})
		} else {
			client.sendDirect(&packet.DeletePilot{Sender: client.session.callsign, Cid: client.session.cid})
		}
		client.closeConnection()
	}
	if client.dialCancel != nil {
		client.dialCancel()
		client.dialCancel = nil
	}
	client.generation++
	client.updateConnectionStatus(fsd.Disconnected)
}

func (client *Client) pendingTimeout() time.Duration {
	return client.config.Timing.PendingConnectionDuration
}

// startWatchdog 连接中或断开中状态持续过久时强制断开
func (client *Client) startWatchdog(generation uint64) {
	client.stopWatchdog()
	delay := time.Duration(float64(client.pendingTimeout()) * watchdogFactor)
	client.watchdog = time.AfterFunc(delay, func() {
		client.post(func() { client.pendingTimeoutCheck(generation) })
	})
}

func (client *Client) stopWatchdog() {
	if client.watchdog != nil {
		client.watchdog.Stop()
		client.watchdog = nil
	}
}

func (client *Client) pendingTimeoutCheck(generation uint64) {
	if generation != client.generation {
		return
	}
	client.watchdog = nil
	if !client.Status().IsPending() {
		return
	}
	pending := client.timeNow().Sub(client.loginSince)
	if pending < client.pendingTimeout() {
		return
	}
	client.logger.WarnF("[%s](%s) connection pending for %s, disconnecting", client.sessionId, client.session.callsign,
		pending.Round(time.Millisecond))
	client.disconnect()
}

func (client *Client) handleRehost(message *packet.Rehost) {
	client.logger.InfoF("[%s](%s) server requested rehost to %s", client.sessionId, client.session.callsign, message.Host)
	client.assert(!client.rehosting)
	if client.rehostCancel != nil {
		client.rehostCancel()
	}
	client.rehosting = true
	ctx, cancel := context.WithTimeout(context.Background(), client.pendingTimeout())
	client.rehostCancel = cancel
	generation := client.generation
	address := client.address(message.Host)
	go func() {
		conn, err := client.dialer.DialContext(ctx, "tcp", address)
		if !client.post(func() { client.onRehosted(generation, message.Host, conn, err) }) && conn != nil {
			_ = conn.Close()
		}
	}()
}

func (client *Client) onRehosted(generation uint64, host string, conn net.Conn, err error) {
	if generation != client.generation || !client.rehosting {
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	client.rehosting = false
	if client.rehostCancel != nil {
		client.rehostCancel()
		client.rehostCancel = nil
	}
	if err != nil {
		client.logger.WarnF("[%s](%s) failed to switch server, %v", client.sessionId, client.session.callsign, err)
		if client.conn == nil {
			client.updateConnectionStatus(fsd.Disconnected)
		}
		return
	}
	client.closeConnection()
	client.attachConnection(conn)
	client.session.server.Host = host
	client.logger.InfoF("[%s](%s) successfully switched server to %s", client.sessionId, client.session.callsign, host)
}
