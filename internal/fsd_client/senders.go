package fsd_client

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
)

// submit 外部发送接口统一入口, 任务在工作协程中执行
func (client *Client) submit(task func()) error {
	if client.shutdown.Load() || !client.post(task) {
		return fsd.ErrClientShutdown
	}
	return nil
}

// sendLogin token 非空时替代密码登录
func (client *Client) sendLogin(token string) {
	session := &client.session
	password := session.password
	if token != "" {
		password = token
	}
	if session.loginMode.IsObserver() {
		client.logger.InfoF("[%s](%s) sending login as observer, cid %s", client.sessionId, session.callsign, session.cid)
		client.sendQueued(&packet.AddAtc{
			Sender:   session.callsign,
			RealName: session.realName,
			Cid:      session.cid,
			Password: password,
			Rating:   session.atcRating,
			Protocol: session.server.Revision,
		})
	} else {
		client.logger.InfoF("[%s](%s) sending login as pilot, cid %s", client.sessionId, session.callsign, session.cid)
		client.sendQueued(&packet.AddPilot{
			Sender:   session.callsign,
			Cid:      session.cid,
			Password: password,
			Rating:   session.pilotRating,
			Protocol: session.server.Revision,
			SimType:  session.simType,
			RealName: strings.TrimSpace(session.realName + " " + session.homebase),
		})
	}
	client.statistics.Increase("sendLogin", "")

	if session.server.ReceiveEuroscopeData {
		client.sendQueued(&packet.ClientQuery{
			Sender:    session.callsign,
			Receiver:  global.EuroscopeSimDataReceiver,
			QueryType: fsd.QueryEuroscopeSimData,
			Payload:   []string{"1"},
		})
	}
}

func systemUniqueId() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(hostname)).String()
}

// sendClientIdentification 回复 $DI, 随后登录; VATSIM 服务器需要先换取令牌
func (client *Client) sendClientIdentification(challenge string) {
	session := &client.session
	client.sendDirect(&packet.ClientIdentification{
		Sender:           session.callsign,
		ClientId:         session.clientId,
		ClientName:       session.clientName,
		VersionMajor:     session.versionMajor,
		VersionMinor:     session.versionMinor,
		Cid:              session.cid,
		SysUid:           systemUniqueId(),
		InitialChallenge: challenge,
	})
	client.statistics.Increase("sendClientIdentification", "")

	if !session.server.Type.IsVatsim() {
		client.sendLogin("")
		client.updateConnectionStatus(fsd.Connected)
		return
	}

	generation := client.generation
	cid, password := session.cid, session.password
	fetcher := client.tokenFetcher
	timeout := client.pendingTimeout()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		token, err := fetcher.Fetch(ctx, cid, password)
		client.post(func() { client.onAuthToken(generation, token, err) })
	}()
}

func (client *Client) onAuthToken(generation uint64, token string, err error) {
	if generation != client.generation || client.Status() != fsd.Connecting {
		return
	}
	if err != nil {
		client.logger.ErrorF("[%s](%s) fetch auth token fail, %v", client.sessionId, client.session.callsign, err)
		client.emit(&fsd.SevereNetworkError{Err: err})
		client.disconnect()
		return
	}
	client.sendLogin(token)
	client.updateConnectionStatus(fsd.Connected)
}

func (client *Client) sendAuthChallenge(challenge string) {
	client.sendDirect(&packet.AuthChallenge{
		Sender:    client.session.callsign,
		Receiver:  global.FSDServerName,
		Challenge: challenge,
	})
	client.statistics.Increase("sendAuthChallenge", "")
}

func (client *Client) sendAuthResponse(response string) {
	client.sendDirect(&packet.AuthResponse{
		Sender:   client.session.callsign,
		Receiver: global.FSDServerName,
		Response: response,
	})
	client.statistics.Increase("sendAuthResponse", "")
}

// SendClientQuery ATC 与 FP 查询总是发往服务器, 查询对象放在 payload 中
func (client *Client) SendClientQuery(queryType fsd.ClientQueryType, receiver string, payload ...string) error {
	if queryType == fsd.QueryUnknown {
		return fsd.ErrUnknownQueryType
	}
	switch queryType {
	case fsd.QueryIsValidATC, fsd.QueryFP:
		receiver = global.FSDServerName
	case fsd.QueryEuroscopeSimData:
		receiver = global.EuroscopeSimDataReceiver
	}
	if receiver == "" {
		return fsd.ErrEmptyRecipient
	}
	payload = append([]string(nil), payload...)
	return client.submit(func() {
		if queryType == fsd.QueryATIS && !client.session.server.Type.IsVatsim() {
			client.consolidator.Begin(receiver)
		}
		if queryType == fsd.QueryAircraftConfig && len(payload) == 0 {
			payload = []string{encodeAircraftConfigRequest()}
		}
		client.sendQueued(&packet.ClientQuery{
			Sender:    client.session.callsign,
			Receiver:  receiver,
			QueryType: queryType,
			Payload:   payload,
		})
		client.statistics.Increase("sendClientQuery", string(queryType))
	})
}

func (client *Client) sentTextMessage(receiver, message string, frequencies []int) {
	client.emit(&fsd.TextMessageSent{Message: &fsd.TextMessageItem{
		Sender:      client.session.callsign,
		Receiver:    receiver,
		Message:     message,
		Frequencies: frequencies,
		Supervisor:  receiver == string(fsd.GroupSupervisors),
		Time:        client.timeNow(),
	}})
}

// SendTextMessage 私聊
func (client *Client) SendTextMessage(receiver, message string) error {
	receiver = strings.ToUpper(strings.TrimSpace(receiver))
	if receiver == "" {
		return fsd.ErrEmptyRecipient
	}
	return client.submit(func() {
		client.sendQueued(&packet.TextMessage{Sender: client.session.callsign, Receiver: receiver, Message: message})
		client.statistics.Increase("sendTextMessages", "PM")
		client.sentTextMessage(receiver, message, nil)
	})
}

// SendRadioMessage 频率单位 kHz, 与已知席位频率相差 5 kHz 以内时改用席位频率
func (client *Client) SendRadioMessage(frequenciesKHz []int, message string) error {
	if len(frequenciesKHz) == 0 {
		return fsd.ErrEmptyRecipient
	}
	frequencies := append([]int(nil), frequenciesKHz...)
	return client.submit(func() {
		for i, frequency := range frequencies {
			frequencies[i] = client.registry.NearestStationFrequency(frequency)
		}
		receiver := packet.RadioReceiver(frequencies)
		client.sendQueued(&packet.TextMessage{Sender: client.session.callsign, Receiver: receiver, Message: message})
		client.statistics.Increase("sendTextMessages", "FREQ")
		client.sentTextMessage(receiver, message, frequencies)
	})
}

func (client *Client) SendGroupMessage(group fsd.TextMessageGroup, message string) error {
	if group == "" {
		return fsd.ErrEmptyRecipient
	}
	return client.submit(func() {
		client.sendQueued(&packet.TextMessage{Sender: client.session.callsign, Receiver: string(group), Message: message})
		client.statistics.Increase("sendTextMessages", string(group))
		client.sentTextMessage(string(group), message, nil)
	})
}

func (client *Client) SendFlightPlan(plan fsd.FlightPlanData) error {
	return client.submit(func() {
		client.sendQueued(&packet.FlightPlan{
			Sender:   client.session.callsign,
			Receiver: global.FSDServerName,
			Plan:     plan,
		})
		client.statistics.Increase("sendFlightPlan", "")
	})
}

// SendPing 时间戳为毫秒, 对方 $PO 原样返回用于计算往返时间
func (client *Client) SendPing(receiver string) error {
	if receiver == "" {
		return fsd.ErrEmptyRecipient
	}
	return client.submit(func() {
		client.sendQueued(&packet.Ping{
			Sender:    client.session.callsign,
			Receiver:  receiver,
			Timestamp: strconv.FormatInt(client.timeNow().UnixMilli(), 10),
		})
		client.statistics.Increase("sendPing", "")
	})
}

func (client *Client) sendPong(receiver, timestamp string) {
	client.sendQueued(&packet.Pong{Sender: client.session.callsign, Receiver: receiver, Timestamp: timestamp})
	client.statistics.Increase("sendPong", "")
}

func (client *Client) SendPlaneInfoRequest(receiver string) error {
	if receiver == "" {
		return fsd.ErrEmptyRecipient
	}
	return client.submit(func() {
		client.sendQueued(&packet.PlaneInfoRequest{Sender: client.session.callsign, Receiver: receiver})
		client.statistics.Increase("sendPlaneInfoRequest", "")
	})
}

// SendPlaneInfoRequestFsinn 只在已连接时发送
func (client *Client) SendPlaneInfoRequestFsinn(receiver string) error {
	if receiver == "" {
		return fsd.ErrEmptyRecipient
	}
	if !client.IsConnected() {
		return fsd.ErrNotConnected
	}
	return client.submit(func() {
		if !client.IsConnected() {
			return
		}
		own := client.ownAircraft.OwnAircraft()
		message := &packet.PlaneInformationFsinn{
			Request:     true,
			Sender:      client.session.callsign,
			Receiver:    receiver,
			ModelString: client.session.modelString,
		}
		if own != nil {
			message.AirlineIcao = own.AirlineIcao
			message.AircraftIcao = own.AircraftIcao
		}
		client.sendQueued(message)
		client.statistics.Increase("sendPlaneInfoRequestFsinn", "")
	})
}

func (client *Client) sendPlaneInformation(receiver string) {
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	livery := client.session.livery
	if livery == "" {
		livery = own.Livery
	}
	client.sendQueued(&packet.PlaneInformation{
		Sender:   client.session.callsign,
		Receiver: receiver,
		Aircraft: own.AircraftIcao,
		Airline:  own.AirlineIcao,
		Livery:   livery,
	})
	client.statistics.Increase("sendPlaneInformation", "")
}

func (client *Client) sendPlaneInformationFsinn(receiver string) {
	if !client.session.server.SendFsInnPackets {
		return
	}
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	modelString := client.session.modelString
	if modelString == "" {
		modelString = own.ModelString
	}
	client.sendQueued(&packet.PlaneInformationFsinn{
		Sender:       client.session.callsign,
		Receiver:     receiver,
		AirlineIcao:  own.AirlineIcao,
		AircraftIcao: own.AircraftIcao,
		ModelString:  modelString,
	})
	client.statistics.Increase("sendPlaneInformationFsinn", "")
}

func (client *Client) localAddress() string {
	if client.conn == nil || client.conn.LocalAddr() == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(client.conn.LocalAddr().String())
	if err != nil {
		return client.conn.LocalAddr().String()
	}
	return host
}

// sendClientResponse 自动回复 CAPS C? RN SV INF 查询, 其他类型不由客户端回答
func (client *Client) sendClientResponse(queryType fsd.ClientQueryType, receiver string) {
	session := &client.session
	var data []string
	switch queryType {
	case fsd.QueryCapabilities:
		for _, key := range session.capabilities.Keys() {
			data = append(data, key+"=1")
		}
	case fsd.QueryCom1Freq:
		com1 := 0
		if own := client.ownAircraft.OwnAircraft(); own != nil {
			com1 = own.Com1.ActiveKHz
		}
		data = []string{fmt.Sprintf("%.3f", float64(com1)/1000)}
	case fsd.QueryRealName:
		rating := session.pilotRating.Index()
		if session.loginMode.IsObserver() {
			rating = session.atcRating.Index()
		}
		data = []string{strings.TrimSpace(session.realName + " " + session.homebase), "", strconv.Itoa(rating)}
	case fsd.QueryServer:
		data = []string{session.server.Host}
	case fsd.QueryINF:
		client.sendUserInfo(receiver)
		client.statistics.Increase("sendClientResponse", string(queryType))
		return
	default:
		client.logger.WarnF("[%s](%s) client does not answer %s queries", client.sessionId, session.callsign, queryType)
		client.assert(false)
		return
	}
	client.sendQueued(&packet.ClientResponse{
		Sender:       session.callsign,
		Receiver:     receiver,
		QueryType:    queryType,
		ResponseData: data,
	})
	client.statistics.Increase("sendClientResponse", string(queryType))
}

// sendUserInfo INF 查询以私聊方式回复
func (client *Client) sendUserInfo(receiver string) {
	session := &client.session
	var latitude, longitude, altitude float64
	if own := client.ownAircraft.OwnAircraft(); own != nil {
		latitude = own.Situation.Latitude
		longitude = own.Situation.Longitude
		altitude = own.Situation.AltitudeTrue
	}
	info := fmt.Sprintf("CID=%s %s IP=%s SYS_UID=%s FSVER=%d LT=%s LO=%s AL=%d %s",
		session.cid, session.clientName, client.localAddress(), systemUniqueId(), int(session.simType),
		strconv.FormatFloat(latitude, 'f', -1, 64), strconv.FormatFloat(longitude, 'f', -1, 64),
		int(altitude), session.realName)
	client.sendQueued(&packet.TextMessage{Sender: session.callsign, Receiver: receiver, Message: info})
}

// NetworkStatisticsText 每行一个计数, reset 为 true 时读取后清零
func (client *Client) NetworkStatisticsText(reset bool, separator string) string {
	return client.statistics.Text(reset, separator)
}

// SaveNetworkStatistics 立即保存当前计数
func (client *Client) SaveNetworkStatistics(server string) error {
	if client.statisticsDb == nil {
		return nil
	}
	return client.statisticsDb.SaveNetworkStatistics(server, client.SessionId(), client.statistics.Snapshot())
}
