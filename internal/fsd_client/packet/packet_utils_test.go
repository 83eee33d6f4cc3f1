// Package packet
package packet

import (
	"strings"
	"testing"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineEveryPrefix(t *testing.T) {
	tokens := []string{"ABCD", "SERVER", "payload"}
	pass := 0
	fail := 0
	for _, messageType := range MessageTypes() {
		command, ok := CommandOf(messageType)
		require.True(t, ok)
		line := MakePacket(command, tokens...)
		gotType, gotTokens, err := ParseLine(line + LineEnding)
		if err != nil || gotType != messageType || strings.Join(gotTokens, ":") != strings.Join(tokens, ":") {
			fail++
			t.Errorf("ParseLine(%q) = %v, %v, %v; expected %v", line, gotType, gotTokens, err, messageType)
			continue
		}
		pass++
	}
	t.Logf("TestParseLineEveryPrefix: %d pass, %d fail", pass, fail)
}

func TestParseLineEdgeCases(t *testing.T) {
	messageType, tokens, err := ParseLine("#TM")
	assert.Equal(t, TypeTextMessage, messageType)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, fsd.ErrEmptyPayload)

	messageType, tokens, err = ParseLine("?? what is this")
	assert.Equal(t, TypeUnknown, messageType)
	assert.Nil(t, tokens)
	assert.NoError(t, err)

	// #SL 与 #SB 不应混淆
	messageType, _, _ = ParseLine("#SLABCD:1:2")
	assert.Equal(t, TypeVisualPilotDataPeriodic, messageType)
	messageType, _, _ = ParseLine("#SBABCD:XYZ:PIR")
	assert.Equal(t, TypePilotClientCom, messageType)
}

func TestMakePacket(t *testing.T) {
	assert.Equal(t, "$PIABCD:SERVER:", MakePacket(CommandPing, "ABCD", "SERVER", ""))
	assert.Equal(t, "#DL", MakePacket(CommandServerHeartbeat))
}
