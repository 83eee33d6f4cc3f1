// Package packet
package packet

import (
	"math"
	"strings"
	"testing"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleEncode() {
	line, err := Encode(&TextMessage{Sender: "ABCD", Receiver: "ZZZZ_TWR", Message: "hey dude!"})
	if err == nil {
		_ = line + LineEnding
	}
}

func TestEncodeReferenceLines(t *testing.T) {
	tests := []struct {
		message  Message
		expected string
	}{
		{&AddAtc{Sender: "ABCD", RealName: "Jon Doe", Cid: "1234567", Password: "1234567", Rating: fsd.AtcStudent3, Protocol: 100},
			"#AAABCD:SERVER:Jon Doe:1234567:1234567:4:100"},
		{&AddPilot{Sender: "ABCD", Cid: "1234567", Password: "1234567", Rating: fsd.PilotPPL, Protocol: 100, SimType: fsd.SimMSFS95, RealName: "Jon Doe"},
			"#APABCD:SERVER:1234567:1234567:1:100:1:Jon Doe"},
		{&AtcDataUpdate{Sender: "ABCD", FrequencyKHz: 128200, Facility: fsd.FacilityAPP, VisualRange: 145, Rating: fsd.AtcController1, Latitude: 48.11028, Longitude: 8.56972, Elevation: 100},
			"%ABCD:28200:5:145:5:48.11028:8.56972:100"},
		{&AuthChallenge{Sender: "ABCD", Receiver: "SERVER", Challenge: "7a57f2dd9d360d347b"},
			"$ZCABCD:SERVER:7a57f2dd9d360d347b"},
		{&AuthResponse{Sender: "ABCD", Receiver: "SERVER", Response: "7a57f2dd9d360d347b"},
			"$ZRABCD:SERVER:7a57f2dd9d360d347b"},
		{&ClientIdentification{Sender: "ABCD", ClientId: 0xe410, ClientName: "Client", VersionMajor: 1, VersionMinor: 5, Cid: "1234567", SysUid: "1108540872", InitialChallenge: "29bbc8b1398eb38e0139"},
			"$IDABCD:SERVER:e410:Client:1:5:1234567:1108540872:29bbc8b1398eb38e0139"},
		{&ClientResponse{Sender: "ABCD", Receiver: "SERVER", QueryType: fsd.QueryCapabilities, ResponseData: []string{"MODELDESC=1", "ATCINFO=1"}},
			"$CRABCD:SERVER:CAPS:MODELDESC=1:ATCINFO=1"},
		{&DeleteAtc{Sender: "ABCD", Cid: "1234567"}, "#DAABCD:1234567"},
		{&DeletePilot{Sender: "ABCD", Cid: "1234567"}, "#DPABCD:1234567"},
		{&EuroscopeSimData{Sender: "ABCD", Model: "A320", Livery: "DLH", Latitude: 43.12578, Longitude: -72.15841, Altitude: 12000, Heading: 180, Bank: 10, Pitch: -10, GroundSpeed: 250, ThrustPercent: 50},
			"SIMDATA:ABCD:A320:DLH:0:43.1257800:-72.1584100:12000.0:180.00:10:-10:250:0:0:50:0:0.0:0"},
		{&FlightPlan{Sender: "ABCD", Receiver: "SERVER", Plan: fsd.FlightPlanData{FlightRules: fsd.FlightRulesVFR, AircraftIcaoType: "B744", TrueCruisingSpeed: 420, DepAirport: "EGLL", EstimatedDepTime: 1530, ActualDepTime: 1535, CruiseAlt: "FL350", DestAirport: "KORD", HoursEnroute: 8, MinutesEnroute: 15, FuelAvailHours: 9, FuelAvailMinutes: 30, AltAirport: "NONE", Remarks: "Unit: Test", Route: "EGLL.KORD"}},
			"$FPABCD:SERVER:V:B744:420:EGLL:1530:1535:FL350:KORD:8:15:9:30:NONE:Unit Test:EGLL.KORD"},
		{&InterimPilotDataUpdate{Sender: "ABCD", Receiver: "XYZ", Latitude: 43.12578, Longitude: -72.15841, AltitudeTrue: 12008, GroundSpeed: 400, Pitch: 1, Bank: 1, Heading: 25},
			"#SBABCD:XYZ:VI:43.12578:-72.15841:12008:400:4286566684"},
		{&KillRequest{Sender: "SUP", Receiver: "ABCD", Reason: "I don't like you!"}, "$!!SUP:ABCD:I don't like you!"},
		{&PilotDataUpdate{Mode: fsd.TransponderModeC, Sender: "ABCD", Squawk: 1200, Rating: fsd.PilotPPL, Latitude: 48.35386, Longitude: 11.78616, AltitudeTrue: 110, AltitudePressure: 111, Pitch: 1, Bank: 1, Heading: 25},
			"@N:ABCD:1200:1:48.35386:11.78616:110:0:4286566684:1"},
		{&PilotDataUpdate{Mode: fsd.TransponderModeC, Sender: "ABCD", Squawk: 1200, Rating: fsd.PilotPPL, Latitude: 48.35386, Longitude: 11.78616, AltitudeTrue: 110, AltitudePressure: 111, Heading: 25},
			"@N:ABCD:1200:1:48.35386:11.78616:110:0:284:1"},
		{&VisualPilotDataUpdate{Sender: "ABCD", Latitude: 43.1257891, Longitude: -72.1584142, AltitudeTrue: 12000.12, HeightAgl: 1404, XVelocity: -1.0001, YVelocity: 2.0001, ZVelocity: 3.0001, PitchRadPerSec: -0.0349, BankRadPerSec: 0.0524, HeadingRadPerSec: 0.0175},
			"^ABCD:43.1257891:-72.1584142:12000.12:1404.00:0:-1.0001:2.0001:3.0001:-0.0349:0.0175:0.0524:0.00"},
		{&VisualPilotDataToggle{Sender: "SERVER", Client: "ABCD", Active: true}, "$SFSERVER:ABCD:1"},
		{&Ping{Sender: "ABCD", Receiver: "SERVER", Timestamp: "85275222"}, "$PIABCD:SERVER:85275222"},
		{&Pong{Sender: "ABCD", Receiver: "SERVER", Timestamp: "85275222"}, "$POABCD:SERVER:85275222"},
		{&PlaneInfoRequest{Sender: "ABCD", Receiver: "XYZ"}, "#SBABCD:XYZ:PIR"},
		{&PlaneInformation{Sender: "ABCD", Receiver: "XYZ", Aircraft: "B744"}, "#SBABCD:XYZ:PI:GEN:EQUIPMENT=B744"},
		{&PlaneInformation{Sender: "ABCD", Receiver: "XYZ", Aircraft: "B744", Airline: "BAW", Livery: "UNION"},
			"#SBABCD:XYZ:PI:GEN:EQUIPMENT=B744:AIRLINE=BAW:LIVERY=UNION"},
		{&PlaneInformation{Sender: "ABCD", Receiver: "XYZ", Livery: "UNION"}, "#SBABCD:XYZ:PI:GEN:LIVERY=UNION"},
		{&PlaneInformationFsinn{Request: true, Sender: "ABCD", Receiver: "XYZ", AirlineIcao: "DLH", AircraftIcao: "A320", CombinedType: "L2J", ModelString: "FLIGHTFACTOR A320 LUFTHANSA D-AIPC"},
			"#SBABCD:XYZ:FSIPIR:0:DLH:A320:::::L2J:FLIGHTFACTOR A320 LUFTHANSA D-AIPC"},
		{&PlaneInformationFsinn{Sender: "ABCD", Receiver: "XYZ", AirlineIcao: "DLH", AircraftIcao: "A320", CombinedType: "L2J", ModelString: "FLIGHTFACTOR A320 LUFTHANSA D-AIPC"},
			"#SBABCD:XYZ:FSIPI:0:DLH:A320:::::L2J:FLIGHTFACTOR A320 LUFTHANSA D-AIPC"},
		{&ServerError{Sender: "SERVER", Receiver: "ABCD", Code: fsd.NoWeatherProfile, CausingParam: "EGLL", Description: "No such weather profile"},
			"$ERSERVER:ABCD:9:EGLL:No such weather profile"},
		{&TextMessage{Sender: "ABCD", Receiver: RadioReceiver([]int{124050, 135725}), Message: "hey dude!"}, "#TMABCD:@24050&@35725:hey dude!"},
		{&ClientQuery{Sender: "ABCD", Receiver: "SERVER", QueryType: fsd.QueryIsValidATC, Payload: []string{"EDDM_TWR"}}, "$CQABCD:SERVER:ATC:EDDM_TWR"},
		{&Mute{Sender: "SERVER", Receiver: "ABCD", Muted: true}, "#MUSERVER:ABCD:1"},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		line, err := Encode(test.message)
		if err != nil || line != test.expected {
			fail++
			t.Errorf("Encode(%T) = %q, %v; expected %q", test.message, line, err, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestEncodeReferenceLines: %d pass, %d fail", pass, fail)
}

func TestEncodeDropsInvalidMessages(t *testing.T) {
	invalid := []Message{
		&TextMessage{Sender: "ABCD", Receiver: "", Message: "hello"},
		&TextMessage{Sender: "ABCD", Receiver: "EDDM_TWR", Message: ""},
		&ClientQuery{Sender: "ABCD", Receiver: ""},
		&PlaneInfoRequest{Sender: "ABCD"},
		&AddPilot{Sender: "", Cid: "1"},
	}
	for _, message := range invalid {
		_, err := Encode(message)
		assert.ErrorIs(t, err, ErrInvalidMessage, "%T", message)
	}
}

func TestParsePilotDataUpdate(t *testing.T) {
	tokens := strings.Split("N:ABCD:7000:1:43.12578:-72.15841:12000:125:25132146:8", ":")
	message, err := ParsePilotDataUpdate(tokens)
	require.NoError(t, err)
	assert.Equal(t, fsd.TransponderModeC, message.Mode)
	assert.Equal(t, "ABCD", message.Sender)
	assert.Equal(t, 7000, message.Squawk)
	assert.Equal(t, fsd.PilotPPL, message.Rating)
	assert.InDelta(t, 43.12578, message.Latitude, 1e-9)
	assert.InDelta(t, -72.15841, message.Longitude, 1e-9)
	assert.Equal(t, 12000, message.AltitudeTrue)
	assert.Equal(t, 12008, message.AltitudePressure)
	assert.Equal(t, 125, message.GroundSpeed)
	assert.Less(t, math.Abs(message.Pitch-(-2)), 1.0)
	assert.Less(t, math.Abs(message.Bank-3), 1.0)
	assert.Less(t, math.Abs(message.Heading-280), 1.0)
	assert.True(t, message.OnGround)

	_, err = ParsePilotDataUpdate(tokens[:5])
	assert.ErrorIs(t, err, fsd.ErrPacketTooShort)
}

func TestParseInterimAndVisual(t *testing.T) {
	interim, err := ParseInterimPilotDataUpdate(strings.Split("ABCD:XYZ:VI:43.12578:-72.15841:12008:400:25132146", ":"))
	require.NoError(t, err)
	assert.Equal(t, "XYZ", interim.Receiver)
	assert.Equal(t, 12008, interim.AltitudeTrue)
	assert.Equal(t, 400, interim.GroundSpeed)
	assert.True(t, interim.OnGround)

	visual, err := ParseVisualPilotDataUpdate(TypeVisualPilotDataPeriodic,
		strings.Split("ABCD:43.1257891:-72.1584142:12000.12:1404.00:25132144:-1.0001:2.0001:3.0001:-0.0349:0.0175:0.0524:0.00", ":"))
	require.NoError(t, err)
	assert.Equal(t, TypeVisualPilotDataPeriodic, visual.Type())
	assert.InDelta(t, 43.1257891, visual.Latitude, 1e-9)
	assert.InDelta(t, 1404.0, visual.HeightAgl, 1e-9)
	assert.InDelta(t, -0.0349, visual.PitchRadPerSec, 1e-9)
	assert.InDelta(t, 0.0175, visual.HeadingRadPerSec, 1e-9)
	assert.InDelta(t, 0.0524, visual.BankRadPerSec, 1e-9)
}

func TestParseEuroscopeSimData(t *testing.T) {
	_, tokens, err := ParseLine("SIMDATA:ABCD:A320:DLH:0:43.1257800:-72.1584100:12000:180.00:10:-10:250:1:100:50:24:0.0:0")
	require.NoError(t, err)
	data, err := ParseEuroscopeSimData(tokens)
	require.NoError(t, err)
	assert.Equal(t, "ABCD", data.Sender)
	assert.Equal(t, "A320", data.Model)
	assert.Equal(t, "DLH", data.Livery)
	assert.InDelta(t, 12000.0, data.Altitude, 1e-9)
	assert.Equal(t, 250, data.GroundSpeed)
	assert.True(t, data.OnGround)
	assert.Equal(t, 100, data.GearPercent)
	assert.Equal(t, fsd.AircraftLights{BeaconOn: true, NavOn: true}, data.Lights)
}

func TestParseServerErrorAndText(t *testing.T) {
	serverError, err := ParseServerError(strings.Split("SERVER:ABCD:009:EGLL:No such weather profile", ":"))
	require.NoError(t, err)
	assert.Equal(t, fsd.NoWeatherProfile, serverError.Code)
	assert.False(t, serverError.Code.IsFatal())
	assert.Equal(t, "No such weather profile", serverError.Description)

	text, err := ParseTextMessage(strings.Split("ABCD:@24050&@35725:time is 12:30", ":"))
	require.NoError(t, err)
	assert.Equal(t, "time is 12:30", text.Message)
	assert.True(t, text.IsRadioMessage())
	assert.Equal(t, []int{124050, 135725}, text.Frequencies())

	supervisor, err := ParseTextMessage(strings.Split("ABCD:*S:Please help!!!", ":"))
	require.NoError(t, err)
	assert.True(t, supervisor.IsSupervisorMessage())
	assert.Nil(t, supervisor.Frequencies())
}

func TestParsePlaneInformation(t *testing.T) {
	tokens := strings.Split("ABCD:XYZ:PI:GEN:EQUIPMENT=B744:AIRLINE=BAW:LIVERY=UNION", ":")
	assert.True(t, IsGeneralPlaneInformation(tokens))
	info, err := ParsePlaneInformation(tokens)
	require.NoError(t, err)
	assert.Equal(t, &PlaneInformation{Sender: "ABCD", Receiver: "XYZ", Aircraft: "B744", Airline: "BAW", Livery: "UNION"}, info)

	fsinn, err := ParsePlaneInformationFsinn(strings.Split("ABCD:XYZ:FSIPIR:0:DLH:A320:::::L2J:MODEL", ":"))
	require.NoError(t, err)
	assert.True(t, fsinn.Request)
	assert.Equal(t, "L2J", fsinn.CombinedType)
	assert.Equal(t, "MODEL", fsinn.ModelString)
}

func TestParseClientIdentification(t *testing.T) {
	identification, err := ParseClientIdentification(strings.Split("ABCD:SERVER:e410:Client:1:5:1234567:1108540872:29bbc8b1398eb38e0139", ":"))
	require.NoError(t, err)
	assert.Equal(t, 0xe410, identification.ClientId)
	assert.Equal(t, "29bbc8b1398eb38e0139", identification.InitialChallenge)

	_, err = ParseClientIdentification(strings.Split("ABCD:SERVER:zz:Client:1:5:1234567:1108540872:29bb", ":"))
	assert.Error(t, err)
}
