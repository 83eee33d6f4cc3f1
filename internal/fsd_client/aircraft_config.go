package fsd_client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	jsoniter "github.com/json-iterator/go"
)

// json map 键按字母序输出
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	aircraftConfigKey     = "config"
	aircraftConfigFullKey = "is_full_data"
)

var errEmptyAircraftConfig = errors.New("aircraft config packet has no config object")

// aircraftConfigRequest 请求对方发送完整配置
var aircraftConfigRequest = map[string]interface{}{"request": "full"}

// incrementalObject 只保留与 previous 不同的字段, 嵌套对象递归比较
func incrementalObject(previous, current map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for key, value := range current {
		old, ok := previous[key]
		if !ok {
			result[key] = value
			continue
		}
		currentObject, currentIsObject := value.(map[string]interface{})
		oldObject, oldIsObject := old.(map[string]interface{})
		switch {
		case currentIsObject && oldIsObject:
			if diff := incrementalObject(oldObject, currentObject); len(diff) > 0 {
				result[key] = diff
			}
		case currentIsObject != oldIsObject:
			result[key] = value
		case old != value:
			result[key] = value
		}
	}
	return result
}

// encodeAircraftConfig {"config":...} 转义非 ASCII 字符后作为单个字段发送
func encodeAircraftConfig(config map[string]interface{}) (string, error) {
	data, err := json.Marshal(map[string]interface{}{aircraftConfigKey: config})
	if err != nil {
		return "", err
	}
	return packet.EscapeUnicode(string(data)), nil
}

func encodeAircraftConfigRequest() string {
	data, _ := json.Marshal(aircraftConfigRequest)
	return packet.EscapeUnicode(string(data))
}

// sendIncrementalAircraftConfig 配置变化且令牌桶允许时广播差量, 否则跳过本次
func (client *Client) sendIncrementalAircraftConfig() {
	unitTest := client.config.Client.UnitTestMode
	if !unitTest && (!client.IsConnected() || !client.session.server.SendAircraftParts) {
		return
	}
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	current := own.Parts
	if client.sentAircraftConfig != nil && client.sentAircraftConfig.Equal(&current) {
		return
	}
	if !client.tokenBucket.TryConsume(1) {
		return
	}

	previous := map[string]interface{}{}
	if client.sentAircraftConfig != nil {
		previous = client.sentAircraftConfig.ToMap()
	}
	data, err := encodeAircraftConfig(incrementalObject(previous, current.ToMap()))
	if err != nil {
		client.logger.WarnF("[%s](%s) encode aircraft config fail, %v", client.sessionId, client.session.callsign, err)
		return
	}
	client.sendAircraftConfiguration(global.AircraftConfigBroadcast, data)
	client.sentAircraftConfig = &current
}

// sendFullAircraftConfig 回复完整配置请求, 不受范围限制
func (client *Client) sendFullAircraftConfig(receiver string) {
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	config := own.Parts.ToMap()
	config[aircraftConfigFullKey] = true
	data, err := encodeAircraftConfig(config)
	if err != nil {
		client.logger.WarnF("[%s](%s) encode aircraft config fail, %v", client.sessionId, client.session.callsign, err)
		return
	}
	client.sendAircraftConfiguration(receiver, data)
}

func (client *Client) sendAircraftConfiguration(receiver string, data string) {
	if data == "" {
		return
	}
	client.sendQueued(&packet.ClientQuery{
		Sender:    client.session.callsign,
		Receiver:  receiver,
		QueryType: fsd.QueryAircraftConfig,
		Payload:   []string{data},
	})
}

// handleAircraftConfig 处理 $CQ ACC, 完整配置请求总是回复, 其余按范围与开关过滤
func (client *Client) handleAircraftConfig(query *packet.ClientQuery) *fsd.Result {
	raw := strings.Join(query.Payload, packet.Separator)
	var document map[string]interface{}
	if err := json.UnmarshalFromString(raw, &document); err != nil {
		return fsd.ResultError(false, raw, fmt.Errorf("failed to parse aircraft config packet: %w", err))
	}

	if request, ok := document["request"].(string); ok && len(document) == 1 && request == "full" {
		client.sendFullAircraftConfig(query.Sender)
		return fsd.ResultSuccess()
	}

	if !client.remoteAircraft.IsAircraftInRange(query.Sender) {
		return fsd.ResultSuccess()
	}
	if !client.session.server.ReceiveAircraftParts {
		return fsd.ResultSuccess()
	}
	config, ok := document[aircraftConfigKey].(map[string]interface{})
	if !ok {
		return fsd.ResultError(false, raw, errEmptyAircraftConfig)
	}
	if len(config) == 0 {
		return fsd.ResultSuccess()
	}
	isFull, _ := config[aircraftConfigFullKey].(bool)
	delete(config, aircraftConfigFullKey)
	client.emit(&fsd.AircraftConfig{
		Sender:       query.Sender,
		Config:       config,
		IsFull:       isFull,
		OffsetTimeMs: client.offsets.Current(query.Sender).Milliseconds(),
	})
	return fsd.ResultSuccess()
}
