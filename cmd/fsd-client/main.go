package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/half-nothing/fsd-client/internal/base"
	"github.com/half-nothing/fsd-client/internal/database"
	"github.com/half-nothing/fsd-client/internal/fsd_client"
	"github.com/half-nothing/fsd-client/internal/interfaces"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
	"github.com/half-nothing/fsd-client/internal/publisher"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

// logEvents 把客户端事件写入日志
func logEvents(logger log.LoggerInterface) fsd.EventHandler {
	return func(event fsd.Event) {
		switch e := event.(type) {
		case *fsd.ConnectionStatusChanged:
			logger.InfoF("Connection status changed: %s -> %s", e.Old, e.New)
		case *fsd.TextMessages:
			for _, message := range e.Messages {
				logger.InfoF("[%s -> %s] %s", message.Sender, message.Receiver, message.Message)
			}
		case *fsd.AtisReply:
			logger.InfoF("ATIS from %s:\n%s", e.Sender, e.Text)
		case *fsd.ServerError:
			logger.WarnF("Server error %s: %s %s", e.Code, e.CausingParm, e.Description)
		case *fsd.KillRequest:
			logger.WarnF("Kicked by %s: %s", e.Sender, e.Reason)
		case *fsd.SevereNetworkError:
			logger.ErrorF("Network error: %v", e.Err)
		case *fsd.Pong:
			logger.InfoF("Pong from %s, rtt %s", e.Sender, e.Rtt)
		case *fsd.RawMessage, *fsd.PilotDataUpdate, *fsd.InterimPilotDataUpdate, *fsd.VisualPilotDataUpdate:
		default:
			logger.DebugF("Event %s: %+v", event.Name(), event)
		}
	}
}

func main() {
	flag.Parse()

	defer recoverFromError()

	logger := base.NewLogger()
	logger.Init(*global.DebugMode)

	logger.InfoF("fsd-client %s initializing...", global.AppVersion)

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger)
	config := configManager.Config()

	databaseOperation, shutdownCallback, err := database.ConnectDatabase(logger, config.Database, *global.DebugMode)
	switch {
	case errors.Is(err, database.ErrDatabaseDisabled):
		logger.Info("Database disabled, network statistics will not be saved")
	case err != nil:
		logger.FatalF("Error occurred while initializing operation, details: %v", err)
		return
	default:
		cleaner.Add(shutdownCallback)
	}

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, databaseOperation)

	var sinks []fsd.RawMessageSinkInterface
	var rawPublisher *publisher.RawMessagePublisher
	if config.Publisher.Enabled {
		rawPublisher, err = publisher.NewRawMessagePublisher(logger, config.Publisher, config.Server.Name)
		if err != nil {
			logger.WarnF("Raw message publisher disabled, %v", err)
		} else {
			cleaner.Add(rawPublisher.ShutdownCallback())
			sinks = append(sinks, rawPublisher)
		}
	}

	client, err := fsd_client.StartClient(applicationContent, sinks...)
	if err != nil {
		logger.FatalF("Error occurred while creating fsd client, details: %v", err)
		return
	}
	if rawPublisher != nil {
		rawPublisher.SetSessionSource(client.SessionId)
	}
	client.Subscribe(logEvents(logger))
	client.Subscribe(func(event fsd.Event) {
		if e, ok := event.(*fsd.ConnectionStatusChanged); ok && e.New == fsd.Disconnected {
			if text := client.NetworkStatisticsText(false, "\n"); text != "" && *global.DebugMode {
				logger.DebugF("Network statistics:\n%s", strings.TrimSpace(text))
			}
		}
	})

	if *global.AutoConnect {
		if err := client.Connect(); err != nil {
			logger.FatalF("Cannot connect to %s, details: %v", config.Server.Host, err)
			return
		}
	}

	select {}
}
