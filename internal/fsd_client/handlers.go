package fsd_client

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/half-nothing/fsd-client/internal/fsd_client/atis"
	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/utils"
)

// handleLine 处理一行报文, 返回前不会读取下一行
func (client *Client) handleLine(line string) {
	client.emitRawMessage(line, false)
	client.logger.DebugF("[%s](%s) -> %s", client.sessionId, client.session.callsign, line)

	messageType, tokens, err := packet.ParseLine(line)
	if messageType == packet.TypeUnknown || err != nil {
		client.logger.WarnF("[%s](%s) unknown packet: %s", client.sessionId, client.session.callsign, line)
		client.emit(&fsd.UnknownPacket{Line: line})
		return
	}
	client.statistics.Increase("parseMessage", messageType.String())

	result := client.handleMessage(messageType, tokens)
	if result == nil || result.Success {
		return
	}
	client.logger.ErrorF("[%s](%s) handle %s fail, %s, %v", client.sessionId, client.session.callsign,
		messageType, result.Env, result.Err)
	if result.Fatal {
		client.disconnect()
	}
}

// parseAndHandle 解析失败的报文被丢弃, 会话继续
func parseAndHandle[T any](tokens []string, parse func([]string) (T, error), handle func(T) *fsd.Result) *fsd.Result {
	message, err := parse(tokens)
	if err != nil {
		return fsd.ResultError(false, strings.Join(tokens, packet.Separator), err)
	}
	return handle(message)
}

func (client *Client) handleMessage(messageType packet.MessageType, tokens []string) *fsd.Result {
	switch messageType {
	case packet.TypeAtcDataUpdate:
		return parseAndHandle(tokens, packet.ParseAtcDataUpdate, client.handleAtcDataUpdate)
	case packet.TypeAuthChallenge:
		return parseAndHandle(tokens, packet.ParseAuthChallenge, client.handleAuthChallenge)
	case packet.TypeAuthResponse:
		return parseAndHandle(tokens, packet.ParseAuthResponse, client.handleAuthResponse)
	case packet.TypeDeleteAtc:
		return parseAndHandle(tokens, packet.ParseDeleteAtc, client.handleDeleteAtc)
	case packet.TypeDeletePilot:
		return parseAndHandle(tokens, packet.ParseDeletePilot, client.handleDeletePilot)
	case packet.TypeTextMessage:
		return parseAndHandle(tokens, packet.ParseTextMessage, client.handleTextMessage)
	case packet.TypePilotDataUpdate:
		return parseAndHandle(tokens, packet.ParsePilotDataUpdate, client.handlePilotDataUpdate)
	case packet.TypeEuroscopeSimData:
		return parseAndHandle(tokens, packet.ParseEuroscopeSimData, client.handleEuroscopeSimData)
	case packet.TypeVisualPilotDataUpdate, packet.TypeVisualPilotDataPeriodic, packet.TypeVisualPilotDataStopped:
		return parseAndHandle(tokens, func(tokens []string) (*packet.VisualPilotDataUpdate, error) {
			return packet.ParseVisualPilotDataUpdate(messageType, tokens)
		}, client.handleVisualPilotDataUpdate)
	case packet.TypeVisualPilotDataToggle:
		return parseAndHandle(tokens, packet.ParseVisualPilotDataToggle, client.handleVisualPilotDataToggle)
	case packet.TypePing:
		return parseAndHandle(tokens, packet.ParsePing, client.handlePing)
	case packet.TypePong:
		return parseAndHandle(tokens, packet.ParsePong, client.handlePong)
	case packet.TypeKillRequest:
		return parseAndHandle(tokens, packet.ParseKillRequest, client.handleKillRequest)
	case packet.TypeFlightPlan:
		return parseAndHandle(tokens, packet.ParseFlightPlan, client.handleFlightPlan)
	case packet.TypeClientQuery:
		return parseAndHandle(tokens, packet.ParseClientQuery, client.handleClientQuery)
	case packet.TypeClientResponse:
		return parseAndHandle(tokens, packet.ParseClientResponse, client.handleClientResponse)
	case packet.TypeServerError:
		return parseAndHandle(tokens, packet.ParseServerError, client.handleServerError)
	case packet.TypeRevBClientParts:
		return parseAndHandle(tokens, packet.ParseRevBClientParts, client.handleRevBClientParts)
	case packet.TypeRehost:
		return parseAndHandle(tokens, packet.ParseRehost, func(message *packet.Rehost) *fsd.Result {
			client.handleRehost(message)
			return fsd.ResultSuccess()
		})
	case packet.TypeMute:
		return parseAndHandle(tokens, packet.ParseMute, client.handleMute)
	case packet.TypeFsdIdentification:
		return parseAndHandle(tokens, packet.ParseFsdIdentification, client.handleFsdIdentification)
	case packet.TypePilotClientCom:
		return client.handleCustomPilotPacket(tokens)
	case packet.TypeAddAtc, packet.TypeAddPilot, packet.TypeServerHeartbeat, packet.TypeProController,
		packet.TypeClientIdentification, packet.TypeRegistrationInfo, packet.TypeRevBPilotDescription:
		// 服务器转发的登录与心跳报文不需要处理
		return fsd.ResultSuccess()
	default:
		return fsd.ResultError(false, messageType.String(), fmt.Errorf("no handler for %s", messageType))
	}
}

func (client *Client) handleAtcDataUpdate(message *packet.AtcDataUpdate) *fsd.Result {
	// 不带后缀的观察者多为共享驾驶舱的副驾驶
	if message.Facility == fsd.FacilityOBS && callsignSuffix(message.Sender) == "" {
		return fsd.ResultSuccess()
	}
	rangeNm := FixAtcRange(float64(message.VisualRange), message.Sender)
	client.registry.UpdateStation(&AtcStation{
		Callsign:     message.Sender,
		FrequencyKHz: message.FrequencyKHz,
		Facility:     message.Facility,
		Rating:       message.Rating,
		Position:     fsd.Position{Latitude: message.Latitude, Longitude: message.Longitude},
		RangeNm:      rangeNm,
	})
	client.emit(&fsd.AtcDataUpdate{
		Callsign:     message.Sender,
		FrequencyKHz: message.FrequencyKHz,
		Facility:     message.Facility,
		VisualRange:  int(math.Round(rangeNm)),
		Rating:       message.Rating,
		Latitude:     message.Latitude,
		Longitude:    message.Longitude,
		Elevation:    message.Elevation,
	})
	return fsd.ResultSuccess()
}

func (client *Client) handleAuthChallenge(message *packet.AuthChallenge) *fsd.Result {
	if client.handshake == nil {
		return fsd.ResultError(true, message.Challenge, fsd.ErrRevisionTooLow)
	}
	response, serverChallenge := client.handshake.OnChallenge(message.Challenge)
	client.sendAuthResponse(response)
	client.sendAuthChallenge(serverChallenge)
	return fsd.ResultSuccess()
}

func (client *Client) handleAuthResponse(message *packet.AuthResponse) *fsd.Result {
	if client.handshake == nil {
		return fsd.ResultError(true, message.Response, fsd.ErrRevisionTooLow)
	}
	if err := client.handshake.VerifyResponse(message.Response); err != nil {
		client.logger.ErrorF("[%s](%s) the server you are connected to is not trusted, disconnecting", client.sessionId,
			client.session.callsign)
		return fsd.ResultError(true, message.Response, err)
	}
	return fsd.ResultSuccess()
}

func (client *Client) handleDeleteAtc(message *packet.DeleteAtc) *fsd.Result {
	client.registry.RemoveStation(message.Sender)
	client.clearCallsignState(message.Sender)
	client.emit(&fsd.DeleteAtc{Callsign: message.Sender, Cid: message.Cid})
	return fsd.ResultSuccess()
}

func (client *Client) handleDeletePilot(message *packet.DeletePilot) *fsd.Result {
	client.clearCallsignState(message.Sender)
	client.registry.RemoveAircraft(message.Sender)
	client.emit(&fsd.DeletePilot{Callsign: message.Sender, Cid: message.Cid})
	return fsd.ResultSuccess()
}

func (client *Client) handleTextMessage(message *packet.TextMessage) *fsd.Result {
	if message.IsRadioMessage() {
		return client.handleRadioMessage(message)
	}

	item := &fsd.TextMessageItem{
		Sender:     message.Sender,
		Receiver:   message.Receiver,
		Message:    message.Message,
		Supervisor: message.IsSupervisorMessage(),
		Time:       client.timeNow(),
	}
	if item.Supervisor {
		client.emit(&fsd.TextMessages{Messages: []*fsd.TextMessageItem{item}})
		return fsd.ResultSuccess()
	}

	// 非 VATSIM 服务器以私聊方式返回 ATIS
	if !client.session.server.Type.IsVatsim() && message.Receiver == client.session.callsign &&
		client.consolidator.IsPending(message.Sender) {
		result, _ := client.consolidator.Append(message.Sender, message.Message)
		switch result.Outcome {
		case atis.Flushed:
			item.Message = result.Text
			client.textBuffer.Add(item)
		case atis.Completed:
			client.emit(&fsd.AtisLogoffTime{Sender: result.Sender, LogoffTime: result.LogoffTime})
			client.emit(&fsd.AtisReply{Sender: result.Sender, Text: result.Text})
		}
		return fsd.ResultSuccess()
	}

	client.textBuffer.Add(item)
	return fsd.ResultSuccess()
}

// handleRadioMessage 只保留与 COM1/COM2 一致的频率, 对方频率按 8.33 kHz 间隔取整
func (client *Client) handleRadioMessage(message *packet.TextMessage) *fsd.Result {
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return fsd.ResultSuccess()
	}
	frequencies := utils.Filter(utils.Map(message.Frequencies(), RoundToChannelSpacing), func(frequency int) bool {
		return frequency == own.Com1.ActiveKHz || frequency == own.Com2.ActiveKHz
	})
	if len(frequencies) == 0 {
		return fsd.ResultSuccess()
	}
	client.emit(&fsd.TextMessages{Messages: []*fsd.TextMessageItem{{
		Sender:      message.Sender,
		Receiver:    message.Receiver,
		Message:     message.Message,
		Frequencies: frequencies,
		Time:        client.timeNow(),
	}}})
	return fsd.ResultSuccess()
}

// emitTextMessages 消抖缓冲的输出
func (client *Client) emitTextMessages(items []*fsd.TextMessageItem) {
	if len(items) == 0 {
		return
	}
	client.emit(&fsd.TextMessages{Messages: items})
}

// validSquawk 四位八进制数字
func validSquawk(code int) bool {
	if code < 0 || code > 7777 {
		return false
	}
	for _, digit := range fmt.Sprintf("%04d", code) {
		if digit > '7' {
			return false
		}
	}
	return true
}

func (client *Client) positionOffset(callsign string) int64 {
	return client.offsets.Update(callsign, client.timeNow()).Milliseconds()
}

func (client *Client) handlePilotDataUpdate(message *packet.PilotDataUpdate) *fsd.Result {
	transponder := fsd.Transponder{Code: message.Squawk, Mode: message.Mode}
	if !validSquawk(message.Squawk) {
		client.logger.DebugF("[%s](%s) wrong transponder code %d for %s", client.sessionId, client.session.callsign,
			message.Squawk, message.Sender)
		transponder = fsd.Transponder{Code: 2000, Mode: fsd.TransponderStandby}
	}
	offset := client.positionOffset(message.Sender)
	client.registry.UpdateAircraft(message.Sender, fsd.Position{Latitude: message.Latitude, Longitude: message.Longitude})
	client.emit(&fsd.PilotDataUpdate{
		Callsign:         message.Sender,
		Transponder:      transponder,
		Rating:           message.Rating,
		Latitude:         message.Latitude,
		Longitude:        message.Longitude,
		AltitudeTrue:     message.AltitudeTrue,
		AltitudePressure: message.AltitudePressure,
		GroundSpeed:      message.GroundSpeed,
		Pitch:            message.Pitch,
		Bank:             message.Bank,
		Heading:          message.Heading,
		OnGround:         message.OnGround,
		OffsetTimeMs:     offset,
	})
	return fsd.ResultSuccess()
}

// handleEuroscopeSimData EuroScope 的俯仰与坡度方向相反
func (client *Client) handleEuroscopeSimData(message *packet.EuroscopeSimData) *fsd.Result {
	if !client.session.server.ReceiveEuroscopeData {
		return fsd.ResultSuccess()
	}
	position := fsd.Position{Latitude: message.Latitude, Longitude: message.Longitude}
	offset := client.positionOffset(message.Sender)
	client.registry.UpdateAircraft(message.Sender, position)

	engines := make([]fsd.AircraftEngine, 2)
	for i := range engines {
		engines[i].On = message.ThrustPercent > 0
	}
	client.emit(&fsd.EuroscopeSimData{
		Callsign:     message.Sender,
		AircraftIcao: message.Model,
		AirlineIcao:  message.Livery,
		Situation: fsd.Situation{
			Position:     position,
			AltitudeTrue: message.Altitude,
			GroundSpeed:  float64(message.GroundSpeed),
			Pitch:        -message.Pitch,
			Bank:         -message.Bank,
			Heading:      message.Heading,
			OnGround:     message.OnGround,
			Timestamp:    client.timeNow(),
		},
		Parts: fsd.AircraftParts{
			Lights:   message.Lights,
			GearDown: message.GearPercent > 50,
			Engines:  engines,
			OnGround: message.OnGround,
		},
		OffsetTimeMs: offset,
	})
	return fsd.ResultSuccess()
}

func (client *Client) handleVisualPilotDataUpdate(message *packet.VisualPilotDataUpdate) *fsd.Result {
	client.emit(&fsd.VisualPilotDataUpdate{
		Callsign: message.Sender,
		Situation: fsd.Situation{
			Position:     fsd.Position{Latitude: message.Latitude, Longitude: message.Longitude},
			AltitudeTrue: message.AltitudeTrue,
			AltitudeAgl:  message.HeightAgl,
			Pitch:        message.Pitch,
			Bank:         message.Bank,
			Heading:      message.Heading,
			Velocity: fsd.Velocity{
				X:           message.XVelocity,
				Y:           message.YVelocity,
				Z:           message.ZVelocity,
				PitchRate:   message.PitchRadPerSec,
				BankRate:    message.BankRadPerSec,
				HeadingRate: message.HeadingRadPerSec,
				NoseGear:    message.NoseGearAngle,
			},
			Timestamp: client.timeNow(),
		},
		OffsetTimeMs: client.offsets.Current(message.Sender).Milliseconds(),
	})
	return fsd.ResultSuccess()
}

func (client *Client) handleVisualPilotDataToggle(message *packet.VisualPilotDataToggle) *fsd.Result {
	client.serverWantsVisual = message.Active
	client.emit(&fsd.VisualUpdatesToggled{Sender: message.Sender, Enabled: message.Active})
	return fsd.ResultSuccess()
}

func (client *Client) handlePing(message *packet.Ping) *fsd.Result {
	client.sendPong(message.Sender, message.Timestamp)
	return fsd.ResultSuccess()
}

func (client *Client) handlePong(message *packet.Pong) *fsd.Result {
	sent, err := strconv.ParseInt(message.Timestamp, 10, 64)
	if err != nil {
		return fsd.ResultError(false, message.Timestamp, fmt.Errorf("invalid pong timestamp: %w", err))
	}
	rtt := client.timeNow().UnixMilli() - sent
	client.emit(&fsd.Pong{Sender: message.Sender, Rtt: time.Duration(rtt) * time.Millisecond})
	return fsd.ResultSuccess()
}

func (client *Client) handleKillRequest(message *packet.KillRequest) *fsd.Result {
	client.logger.WarnF("[%s](%s) kicked by %s, %s", client.sessionId, client.session.callsign, message.Sender,
		message.Reason)
	client.emit(&fsd.KillRequest{Sender: message.Sender, Reason: message.Reason})
	client.disconnect()
	return fsd.ResultSuccess()
}

// normalizeCruiseAltitude 纯数字高度按飞行规则转换为 FLxxx 或 xxxft
func normalizeCruiseAltitude(rules fsd.FlightRules, altitude string) string {
	altitude = strings.TrimSpace(altitude)
	if altitude == "" || strings.IndexFunc(altitude, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return altitude
	}
	value := utils.StrToInt(altitude, 0)
	if rules == fsd.FlightRulesIFR {
		if value >= 1000 {
			return "FL" + strconv.Itoa(value/100)
		}
		return "FL" + altitude
	}
	if value >= 5000 {
		return "FL" + strconv.Itoa(value/100)
	}
	return altitude + "ft"
}

func (client *Client) handleFlightPlan(message *packet.FlightPlan) *fsd.Result {
	plan := message.Plan
	plan.CruiseAlt = normalizeCruiseAltitude(plan.FlightRules, plan.CruiseAlt)
	client.emit(&fsd.FlightPlan{Sender: message.Sender, Plan: plan})
	return fsd.ResultSuccess()
}

func (client *Client) handleClientQuery(query *packet.ClientQuery) *fsd.Result {
	switch query.QueryType {
	case fsd.QueryCapabilities, fsd.QueryCom1Freq, fsd.QueryRealName, fsd.QueryServer, fsd.QueryINF:
		client.sendClientResponse(query.QueryType, query.Sender)
	case fsd.QueryAircraftConfig:
		return client.handleAircraftConfig(query)
	default:
		// ATC IP FP 只发往服务器, ATIS 由管制客户端回答
	}
	return fsd.ResultSuccess()
}

func (client *Client) handleClientResponse(response *packet.ClientResponse) *fsd.Result {
	switch response.QueryType {
	case fsd.QueryIsValidATC:
		client.emit(&fsd.ValidAtcResponse{Callsign: response.Data(1), Valid: response.Data(0) == "Y"})
	case fsd.QueryCapabilities:
		capabilities := fsd.CapabilityNone
		for _, pair := range response.ResponseData {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || strings.Contains(value, "=") {
				continue
			}
			if value == "1" {
				capabilities |= fsd.CapabilityFromKey(key)
			}
		}
		client.emit(&fsd.CapabilitiesResponse{Callsign: response.Sender, Capabilities: capabilities})
	case fsd.QueryCom1Freq:
		frequency := int(math.Round(utils.StrToFloat(response.Data(0), 0) * 1000))
		client.emit(&fsd.Com1FrequencyResponse{Callsign: response.Sender, FrequencyKHz: frequency})
	case fsd.QueryRealName:
		client.emit(&fsd.RealNameResponse{Callsign: response.Sender, RealName: response.Data(0)})
	case fsd.QueryServer:
		client.emit(&fsd.ServerResponse{Callsign: response.Sender, Server: response.Data(0)})
	case fsd.QueryATIS:
		return client.handleAtisResponse(response)
	default:
		// IP INF FP ACC 不会以 $CR 形式返回
	}
	return fsd.ResultSuccess()
}

func (client *Client) handleAtisResponse(response *packet.ClientResponse) *fsd.Result {
	lineType := fsd.AtisLineType(response.Data(0))
	if lineType == "" {
		return fsd.ResultError(false, strings.Join(response.ResponseData, packet.Separator),
			fmt.Errorf("ATIS line type from %s is empty", response.Sender))
	}
	line := strings.Join(response.ResponseData[1:], packet.Separator)
	if lineType == fsd.AtisLineVoiceRoom {
		client.emit(&fsd.AtisVoiceRoom{Sender: response.Sender, Url: line})
	}
	message := client.atisMap.Update(response.Sender, lineType, line)
	if message == nil {
		return fsd.ResultSuccess()
	}
	if message.LogoffTime != "" {
		client.emit(&fsd.AtisLogoffTime{Sender: message.Sender, LogoffTime: message.LogoffTime})
	}
	client.emit(&fsd.AtisReply{Sender: message.Sender, Text: message.Text})
	return fsd.ResultSuccess()
}

func (client *Client) handleServerError(message *packet.ServerError) *fsd.Result {
	event := &fsd.ServerError{Code: message.Code, CausingParm: message.CausingParam, Description: message.Description}
	client.emit(event)
	if message.Code.IsFatal() {
		return fsd.ResultError(true, message.CausingParam,
			fmt.Errorf("server error %03d %s: %s", message.Code.Index(), message.Code, message.Description))
	}
	client.logger.InfoF("[%s](%s) server error %03d %s, %s %s", client.sessionId, client.session.callsign,
		message.Code.Index(), message.Code, message.CausingParam, message.Description)
	return fsd.ResultSuccess()
}

func (client *Client) handleRevBClientParts(message *packet.RevBClientParts) *fsd.Result {
	if !client.remoteAircraft.IsAircraftInRange(message.Sender) || !client.session.server.ReceiveAircraftParts {
		return fsd.ResultSuccess()
	}
	client.emit(&fsd.RevBAircraftConfig{Sender: message.Sender, Data: strings.Join(message.Data, packet.Separator)})
	return fsd.ResultSuccess()
}

func (client *Client) handleMute(message *packet.Mute) *fsd.Result {
	if message.Receiver != client.session.callsign {
		return fsd.ResultSuccess()
	}
	client.emit(&fsd.Mute{Muted: message.Muted})
	return fsd.ResultSuccess()
}

func (client *Client) handleFsdIdentification(message *packet.FsdIdentification) *fsd.Result {
	if client.handshake == nil {
		return fsd.ResultError(true, message.ServerVersion, fsd.ErrRevisionTooLow)
	}
	challenge := client.handshake.OnServerIdentification(message.InitialChallenge)
	client.sendClientIdentification(challenge)
	return fsd.ResultSuccess()
}

func (client *Client) handleCustomPilotPacket(tokens []string) *fsd.Result {
	switch packet.PilotClientSubType(tokens) {
	case packet.SubTypePlaneInfoRequest:
		return parseAndHandle(tokens, packet.ParsePlaneInfoRequest, func(request *packet.PlaneInfoRequest) *fsd.Result {
			client.sendPlaneInformation(request.Sender)
			client.emit(&fsd.PlaneInformationRequest{Sender: request.Sender})
			return fsd.ResultSuccess()
		})
	case packet.SubTypePlaneInformation:
		if !packet.IsGeneralPlaneInformation(tokens) {
			// PI:X 旧格式不再处理
			return fsd.ResultSuccess()
		}
		return parseAndHandle(tokens, packet.ParsePlaneInformation, func(info *packet.PlaneInformation) *fsd.Result {
			client.emit(&fsd.PlaneInformation{
				Sender:       info.Sender,
				AircraftIcao: info.Aircraft,
				AirlineIcao:  info.Airline,
				Livery:       info.Livery,
			})
			return fsd.ResultSuccess()
		})
	case packet.SubTypeSquawkBoxInterim:
		// SquawkBox 插值位置精度太差
		return fsd.ResultSuccess()
	case packet.SubTypeInterimPosition:
		if !client.session.server.ReceiveInterimPos {
			return fsd.ResultSuccess()
		}
		return parseAndHandle(tokens, packet.ParseInterimPilotDataUpdate, client.handleInterimPilotDataUpdate)
	case packet.SubTypePlaneInformationFsinn, packet.SubTypePlaneInfoRequestFsinn:
		return parseAndHandle(tokens, packet.ParsePlaneInformationFsinn, func(info *packet.PlaneInformationFsinn) *fsd.Result {
			if info.Request {
				client.sendPlaneInformationFsinn(info.Sender)
			}
			client.emit(&fsd.PlaneInformationFsinn{
				Sender:       info.Sender,
				AirlineIcao:  info.AirlineIcao,
				AircraftIcao: info.AircraftIcao,
				CombinedType: info.CombinedType,
				ModelString:  info.ModelString,
			})
			return fsd.ResultSuccess()
		})
	default:
		if len(tokens) < 3 {
			return fsd.ResultError(false, strings.Join(tokens, packet.Separator), fsd.ErrPacketTooShort)
		}
		client.emit(&fsd.CustomPilotPacket{
			Sender:    tokens[0],
			SubType:   tokens[2],
			Arguments: append([]string(nil), tokens[3:]...),
		})
		return fsd.ResultSuccess()
	}
}

func (client *Client) handleInterimPilotDataUpdate(message *packet.InterimPilotDataUpdate) *fsd.Result {
	offset := client.positionOffset(message.Sender)
	client.registry.UpdateAircraft(message.Sender, fsd.Position{Latitude: message.Latitude, Longitude: message.Longitude})
	client.emit(&fsd.InterimPilotDataUpdate{
		Callsign:     message.Sender,
		Latitude:     message.Latitude,
		Longitude:    message.Longitude,
		AltitudeTrue: message.AltitudeTrue,
		GroundSpeed:  message.GroundSpeed,
		Pitch:        message.Pitch,
		Bank:         message.Bank,
		Heading:      message.Heading,
		OnGround:     message.OnGround,
		OffsetTimeMs: offset,
	})
	return fsd.ResultSuccess()
}
