package fsd_client

import (
	"bufio"
	"math"
	"net"
	"strings"
	"time"

	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
)

// readLoop 每次最多读取 budget 行交给工作协程, 读满后让出一段时间并把下一次的额度提高 20%
func (client *Client) readLoop(connId uint64, conn net.Conn, codec *packet.TextCodec) {
	reader := bufio.NewReader(conn)
	budget := maxLinesPerRead
	for {
		lines := make([]string, 0, min(budget, 16))
		var readErr error
		for len(lines) < budget {
			data, err := reader.ReadBytes('\n')
			if err != nil {
				readErr = err
				break
			}
			text, err := codec.Decode(data)
			if err != nil {
				client.logger.WarnF("[%d] decode fail, %v", connId, err)
				continue
			}
			text = strings.TrimRight(text, "\r\n")
			if text != "" {
				lines = append(lines, text)
			}
			if reader.Buffered() == 0 {
				break
			}
		}

		exhausted := len(lines) >= budget
		if len(lines) > 0 {
			finished := make(chan struct{})
			batch := lines
			if !client.post(func() {
				defer close(finished)
				client.handleLines(connId, batch)
			}) {
				return
			}
			select {
			case <-finished:
			case <-client.done:
				return
			}
		}

		if readErr != nil {
			client.post(func() { client.onSocketError(connId, readErr) })
			return
		}

		if exhausted {
			time.Sleep(readYield)
			budget = int(math.Round(float64(len(lines)) * 1.2))
		} else {
			budget = maxLinesPerRead
		}
	}
}

func (client *Client) handleLines(connId uint64, lines []string) {
	for _, line := range lines {
		// 处理过程中连接可能已被替换或关闭
		if connId != client.connId {
			return
		}
		client.handleLine(line)
	}
}

// writeLine 编码并写入 socket, 由发送队列与直接发送共用
func (client *Client) writeLine(line string) {
	if client.conn == nil && !client.config.Client.UnitTestMode {
		client.logger.DebugF("[%s](%s) drop message, not connected: %s", client.sessionId, client.session.callsign,
			client.maskPassword(line))
		return
	}
	if client.conn != nil {
		data, err := client.codec.Encode(line + packet.LineEnding)
		if err != nil {
			client.logger.WarnF("[%s](%s) encode fail, %v", client.sessionId, client.session.callsign, err)
			return
		}
		if _, err := client.conn.Write(data); err != nil {
			if packet.IsNetClosedError(err) {
				client.onSocketError(client.connId, err)
			} else {
				client.logger.WarnF("[%s](%s) write fail, %v", client.sessionId, client.session.callsign, err)
			}
			return
		}
	}
	masked := client.maskPassword(line)
	client.logger.DebugF("[%s](%s) <- %s", client.sessionId, client.session.callsign, masked)
	client.emitRawMessage(masked, true)
}

// sendQueued 普通报文进入发送队列, 测试模式下直接发送
func (client *Client) sendQueued(message packet.Message) {
	line, err := packet.Encode(message)
	if err != nil {
		client.logger.DebugF("[%s](%s) drop invalid %s message, %v", client.sessionId, client.session.callsign,
			message.Type(), err)
		return
	}
	if client.config.Client.UnitTestMode {
		client.writeLine(line)
		return
	}
	client.pacer.Enqueue(line)
}

// sendDirect 认证报文与下线报文绕过队列
func (client *Client) sendDirect(message packet.Message) {
	line, err := packet.Encode(message)
	if err != nil {
		client.logger.DebugF("[%s](%s) drop invalid %s message, %v", client.sessionId, client.session.callsign,
			message.Type(), err)
		return
	}
	client.writeLine(line)
}
