package fsd_client

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

const (
	// minVisualVelocity 任一分量低于该值视为静止
	minVisualVelocity = 0.00005
	observerFrequency = 199998
	observerRange     = 300
)

func newTicker(interval time.Duration) *time.Ticker {
	if interval <= 0 {
		return nil
	}
	return time.NewTicker(interval)
}

func stopTicker(ticker **time.Ticker) {
	if *ticker != nil {
		(*ticker).Stop()
		*ticker = nil
	}
}

// startTimers 位置 配置与发送队列定时器, 插值与视觉位置按服务器开关决定
func (client *Client) startTimers() {
	client.stopTimers()
	timing := client.config.Timing
	client.positionTicker = newTicker(timing.PositionDuration)
	client.configTicker = newTicker(timing.ConfigProcessingDuration)
	client.pacerTicker = newTicker(timing.PacerDuration)
	client.pacer.Clear()
	if client.session.server.SendInterimPositions {
		client.interimTicker = newTicker(timing.InterimPositionDuration)
	}
	if client.session.server.SendVisualPositions {
		client.visualTicker = newTicker(timing.VisualPositionDuration)
	}
}

func (client *Client) stopTimers() {
	stopTicker(&client.positionTicker)
	stopTicker(&client.interimTicker)
	stopTicker(&client.visualTicker)
	stopTicker(&client.configTicker)
	stopTicker(&client.pacerTicker)
}

// SetInterimPositionReceivers 需要高频插值位置的对端呼号
func (client *Client) SetInterimPositionReceivers(callsigns ...string) {
	client.post(func() {
		clear(client.interimReceivers)
		for _, callsign := range callsigns {
			callsign = strings.ToUpper(strings.TrimSpace(callsign))
			if callsign != "" {
				client.interimReceivers[callsign] = struct{}{}
			}
		}
	})
}

// SetAdditionalOffset 叠加到所有远端机位置偏移上的附加时间
func (client *Client) SetAdditionalOffset(offset time.Duration) {
	client.post(func() {
		client.offsets.SetAdditionalOffset(offset)
	})
}

func (client *Client) canSendPosition() bool {
	return !client.Status().IsDisconnected() || client.config.Client.UnitTestMode
}

func normalizeHeading(heading float64) float64 {
	heading = math.Mod(heading, 360)
	if heading < 0 {
		heading += 360
	}
	return heading
}

func (client *Client) sendPositionUpdates() {
	if !client.canSendPosition() {
		return
	}
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	if client.session.loginMode.IsObserver() {
		client.sendQueued(&packet.AtcDataUpdate{
			Sender:       client.session.callsign,
			FrequencyKHz: observerFrequency,
			Facility:     fsd.FacilityOBS,
			VisualRange:  observerRange,
			Rating:       fsd.AtcObserver,
			Latitude:     own.Situation.Latitude,
			Longitude:    own.Situation.Longitude,
			Elevation:    0,
		})
		return
	}

	// 慢速视觉位置必须先于普通位置发送
	if client.session.server.SendVisualPositions {
		client.sendVisualPilotDataUpdate(true)
	}

	situation := own.Situation
	client.sendQueued(&packet.PilotDataUpdate{
		Mode:             own.Transponder.Mode,
		Sender:           client.session.callsign,
		Squawk:           own.Transponder.Code,
		Rating:           client.session.pilotRating,
		Latitude:         situation.Latitude,
		Longitude:        situation.Longitude,
		AltitudeTrue:     int(math.Round(situation.AltitudeTrue)),
		AltitudePressure: int(math.Round(situation.AltitudePressure)),
		GroundSpeed:      int(math.Round(situation.GroundSpeed)),
		Pitch:            situation.Pitch,
		Bank:             situation.Bank,
		Heading:          normalizeHeading(situation.Heading),
		OnGround:         own.Parts.OnGround,
	})
}

func (client *Client) sendInterimPilotDataUpdates() {
	if client.Status().IsDisconnected() || len(client.interimReceivers) == 0 {
		return
	}
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	situation := own.Situation
	receivers := make([]string, 0, len(client.interimReceivers))
	for receiver := range client.interimReceivers {
		receivers = append(receivers, receiver)
	}
	slices.Sort(receivers)
	for _, receiver := range receivers {
		client.sendQueued(&packet.InterimPilotDataUpdate{
			Sender:       client.session.callsign,
			Receiver:     receiver,
			Latitude:     situation.Latitude,
			Longitude:    situation.Longitude,
			AltitudeTrue: int(math.Round(situation.AltitudeTrue)),
			GroundSpeed:  int(math.Round(situation.GroundSpeed)),
			Pitch:        situation.Pitch,
			Bank:         situation.Bank,
			Heading:      normalizeHeading(situation.Heading),
			OnGround:     own.Parts.OnGround,
		})
	}
}

func isStationary(velocity *fsd.Velocity) bool {
	return math.Abs(velocity.X) < minVisualVelocity &&
		math.Abs(velocity.Y) < minVisualVelocity &&
		math.Abs(velocity.Z) < minVisualVelocity &&
		math.Abs(velocity.PitchRate) < minVisualVelocity &&
		math.Abs(velocity.BankRate) < minVisualVelocity &&
		math.Abs(velocity.HeadingRate) < minVisualVelocity
}

// sendVisualPilotDataUpdate slowUpdate 由位置定时器触发, 不受服务器开关与静止状态限制
func (client *Client) sendVisualPilotDataUpdate(slowUpdate bool) {
	if !client.canSendPosition() {
		return
	}
	if client.session.loginMode.IsObserver() || !client.session.server.SendVisualPositions {
		return
	}
	own := client.ownAircraft.OwnAircraft()
	if own == nil {
		return
	}
	situation := own.Situation

	if !slowUpdate {
		if isStationary(&situation.Velocity) {
			if client.stoppedSendingVisual {
				return
			}
			client.stoppedSendingVisual = true
			client.visualTrigger.Reset()
			client.visualPeriodicDue = true
		} else {
			client.stoppedSendingVisual = false
		}
		if !client.serverWantsVisual {
			return
		}
	}

	message := &packet.VisualPilotDataUpdate{
		Sender:           client.session.callsign,
		Latitude:         situation.Latitude,
		Longitude:        situation.Longitude,
		AltitudeTrue:     situation.AltitudeTrue,
		HeightAgl:        situation.AltitudeAgl,
		Pitch:            situation.Pitch,
		Bank:             situation.Bank,
		Heading:          normalizeHeading(situation.Heading),
		XVelocity:        situation.Velocity.X,
		YVelocity:        situation.Velocity.Y,
		ZVelocity:        situation.Velocity.Z,
		PitchRadPerSec:   situation.Velocity.PitchRate,
		BankRadPerSec:    situation.Velocity.BankRate,
		HeadingRadPerSec: situation.Velocity.HeadingRate,
		NoseGearAngle:    situation.Velocity.NoseGear,
	}

	switch {
	case client.stoppedSendingVisual:
		message.Variant = packet.TypeVisualPilotDataStopped
	case client.visualPeriodicDue:
		message.Variant = packet.TypeVisualPilotDataPeriodic
		client.visualPeriodicDue = client.visualTrigger.Tick()
	default:
		message.Variant = packet.TypeVisualPilotDataUpdate
		client.visualPeriodicDue = client.visualTrigger.Tick()
	}
	client.sendQueued(message)
}
