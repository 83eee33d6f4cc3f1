// Package packet
package packet

import (
	"sort"
)

type Enum interface {
	String() string
	Index() int
}

// MessageType 报文类型, 由前缀唯一确定
type MessageType int

const (
	TypeUnknown MessageType = iota
	TypeAddAtc
	TypeAddPilot
	TypeAtcDataUpdate
	TypeAuthChallenge
	TypeAuthResponse
	TypeClientIdentification
	TypeClientQuery
	TypeClientResponse
	TypeDeleteAtc
	TypeDeletePilot
	TypeEuroscopeSimData
	TypeFlightPlan
	TypeProController
	TypeFsdIdentification
	TypeKillRequest
	TypePilotDataUpdate
	TypeVisualPilotDataUpdate
	TypeVisualPilotDataPeriodic
	TypeVisualPilotDataStopped
	TypeVisualPilotDataToggle
	TypePing
	TypePong
	TypeServerError
	TypeServerHeartbeat
	TypeTextMessage
	TypePilotClientCom
	TypeRevBClientParts
	TypeRevBPilotDescription
	TypeRegistrationInfo
	TypeRehost
	TypeMute
)

var messageTypeString = []string{"Unknown", "AddAtc", "AddPilot", "AtcDataUpdate", "AuthChallenge", "AuthResponse",
	"ClientIdentification", "ClientQuery", "ClientResponse", "DeleteAtc", "DeletePilot", "EuroscopeSimData",
	"FlightPlan", "ProController", "FsdIdentification", "KillRequest", "PilotDataUpdate", "VisualPilotDataUpdate",
	"VisualPilotDataPeriodic", "VisualPilotDataStopped", "VisualPilotDataToggle", "Ping", "Pong", "ServerError",
	"ServerHeartbeat", "TextMessage", "PilotClientCom", "RevBClientParts", "RevBPilotDescription", "RegistrationInfo",
	"Rehost", "Mute"}

func (t MessageType) String() string {
	if t < 0 || int(t) >= len(messageTypeString) {
		return messageTypeString[TypeUnknown]
	}
	return messageTypeString[t]
}

func (t MessageType) Index() int {
	return int(t)
}

type ClientCommand string

var (
	CommandAddAtc                  = ClientCommand("#AA")
	CommandAddPilot                = ClientCommand("#AP")
	CommandAtcDataUpdate           = ClientCommand("%")
	CommandAuthChallenge           = ClientCommand("$ZC")
	CommandAuthResponse            = ClientCommand("$ZR")
	CommandClientIdentification    = ClientCommand("$ID")
	CommandClientQuery             = ClientCommand("$CQ")
	CommandClientResponse          = ClientCommand("$CR")
	CommandDeleteAtc               = ClientCommand("#DA")
	CommandDeletePilot             = ClientCommand("#DP")
	CommandEuroscopeSimData        = ClientCommand("SIMDATA")
	CommandFlightPlan              = ClientCommand("$FP")
	CommandProController           = ClientCommand("#PC")
	CommandFsdIdentification       = ClientCommand("$DI")
	CommandKillRequest             = ClientCommand("$!!")
	CommandPilotDataUpdate         = ClientCommand("@")
	CommandVisualPilotDataUpdate   = ClientCommand("^")
	CommandVisualPilotDataPeriodic = ClientCommand("#SL")
	CommandVisualPilotDataStopped  = ClientCommand("#ST")
	CommandVisualPilotDataToggle   = ClientCommand("$SF")
	CommandPing                    = ClientCommand("$PI")
	CommandPong                    = ClientCommand("$PO")
	CommandServerError             = ClientCommand("$ER")
	CommandServerHeartbeat         = ClientCommand("#DL")
	CommandTextMessage             = ClientCommand("#TM")
	CommandPilotClientCom          = ClientCommand("#SB")
	CommandRevBClientParts         = ClientCommand("-MD")
	CommandRevBPilotDescription    = ClientCommand("-PD")
	CommandRegistrationInfo        = ClientCommand("!R")
	CommandRehost                  = ClientCommand("$XX")
	CommandMute                    = ClientCommand("#MU")
)

func (c ClientCommand) String() string {
	return string(c)
}

func (c ClientCommand) Index() int {
	return len(c)
}

type prefixEntry struct {
	command     ClientCommand
	messageType MessageType
}

// prefixTable 启动时构建, 之后只读; 按前缀长度降序排列以保证最长匹配
var prefixTable = buildPrefixTable(map[ClientCommand]MessageType{
	CommandAddAtc:                  TypeAddAtc,
	CommandAddPilot:                TypeAddPilot,
	CommandAtcDataUpdate:           TypeAtcDataUpdate,
	CommandAuthChallenge:           TypeAuthChallenge,
	CommandAuthResponse:            TypeAuthResponse,
	CommandClientIdentification:    TypeClientIdentification,
	CommandClientQuery:             TypeClientQuery,
	CommandClientResponse:          TypeClientResponse,
	CommandDeleteAtc:               TypeDeleteAtc,
	CommandDeletePilot:             TypeDeletePilot,
	CommandEuroscopeSimData:        TypeEuroscopeSimData,
	CommandFlightPlan:              TypeFlightPlan,
	CommandProController:           TypeProController,
	CommandFsdIdentification:       TypeFsdIdentification,
	CommandKillRequest:             TypeKillRequest,
	CommandPilotDataUpdate:         TypePilotDataUpdate,
	CommandVisualPilotDataUpdate:   TypeVisualPilotDataUpdate,
	CommandVisualPilotDataPeriodic: TypeVisualPilotDataPeriodic,
	CommandVisualPilotDataStopped:  TypeVisualPilotDataStopped,
	CommandVisualPilotDataToggle:   TypeVisualPilotDataToggle,
	CommandPing:                    TypePing,
	CommandPong:                    TypePong,
	CommandServerError:             TypeServerError,
	CommandServerHeartbeat:         TypeServerHeartbeat,
	CommandTextMessage:             TypeTextMessage,
	CommandPilotClientCom:          TypePilotClientCom,
	CommandRevBClientParts:         TypeRevBClientParts,
	CommandRevBPilotDescription:    TypeRevBPilotDescription,
	CommandRegistrationInfo:        TypeRegistrationInfo,
	CommandRehost:                  TypeRehost,
	CommandMute:                    TypeMute,
})

var commandOfType = func() map[MessageType]ClientCommand {
	result := make(map[MessageType]ClientCommand, len(prefixTable))
	for _, entry := range prefixTable {
		result[entry.messageType] = entry.command
	}
	return result
}()

func buildPrefixTable(mapping map[ClientCommand]MessageType) []prefixEntry {
	table := make([]prefixEntry, 0, len(mapping))
	for command, messageType := range mapping {
		table = append(table, prefixEntry{command: command, messageType: messageType})
	}
	sort.Slice(table, func(i, j int) bool {
		if len(table[i].command) != len(table[j].command) {
			return len(table[i].command) > len(table[j].command)
		}
		return table[i].command < table[j].command
	})
	return table
}

// CommandOf 返回报文类型对应的前缀
func CommandOf(messageType MessageType) (ClientCommand, bool) {
	command, ok := commandOfType[messageType]
	return command, ok
}

// MessageTypes 全部已注册的报文类型
func MessageTypes() []MessageType {
	result := make([]MessageType, 0, len(prefixTable))
	for _, entry := range prefixTable {
		result = append(result, entry.messageType)
	}
	return result
}
