// Package atis
package atis

import (
	"regexp"
	"testing"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsolidator() (*Consolidator, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	consolidator := NewConsolidator(DefaultTimeout, nil)
	consolidator.TimeNow = func() time.Time { return now }
	return consolidator, &now
}

func TestLogoffPattern(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"z", true},
		{"0200z", true},
		{"12z", true},
		{"02000z", false},
		{"0200Z", false},
		{"EDDM_ATIS information A", false},
		{"0200z ", false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if DefaultLogoffPattern.MatchString(test.line) != test.expected {
			fail++
			t.Errorf("logoff pattern on %q: expected %v", test.line, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestLogoffPattern: %d pass, %d fail", pass, fail)
}

func TestConsolidatorCompletes(t *testing.T) {
	consolidator, now := newTestConsolidator()
	consolidator.Begin("EDDM_ATIS")

	result, ok := consolidator.Append("EDDM_ATIS", "Munich information A")
	require.True(t, ok)
	assert.Equal(t, Buffered, result.Outcome)

	*now = now.Add(2 * time.Second)
	result, _ = consolidator.Append("EDDM_ATIS", "Runway 26R")
	assert.Equal(t, Buffered, result.Outcome)

	result, _ = consolidator.Append("EDDM_ATIS", "1800z")
	assert.Equal(t, Completed, result.Outcome)
	assert.Equal(t, "Munich information A\nRunway 26R\n1800z", result.Text)
	assert.Equal(t, "1800z", result.LogoffTime)
	assert.False(t, consolidator.IsPending("EDDM_ATIS"))

	_, ok = consolidator.Append("EDDM_ATIS", "late line")
	assert.False(t, ok)
}

func TestConsolidatorFlushesOnTimeout(t *testing.T) {
	consolidator, now := newTestConsolidator()
	consolidator.Begin("EDDM_ATIS")
	consolidator.Append("EDDM_ATIS", "Munich information A")

	*now = now.Add(DefaultTimeout + time.Millisecond)
	result, ok := consolidator.Append("EDDM_ATIS", "Runway 26R")
	require.True(t, ok)
	assert.Equal(t, Flushed, result.Outcome)
	assert.Equal(t, "Munich information A\nRunway 26R", result.Text)
	assert.Empty(t, result.LogoffTime)
	assert.Equal(t, 0, consolidator.Len())
}

func TestConsolidatorCustomPattern(t *testing.T) {
	consolidator := NewConsolidator(time.Second, regexp.MustCompile(`^END$`))
	consolidator.Begin("LOWW_ATIS")
	result, _ := consolidator.Append("LOWW_ATIS", "1800z")
	assert.Equal(t, Buffered, result.Outcome)
	result, _ = consolidator.Append("LOWW_ATIS", "END")
	assert.Equal(t, Completed, result.Outcome)
}

func TestConsolidatorRemoveAndClear(t *testing.T) {
	consolidator, _ := newTestConsolidator()
	consolidator.Begin("A_ATIS")
	consolidator.Begin("B_ATIS")
	consolidator.Remove("A_ATIS")
	assert.False(t, consolidator.IsPending("A_ATIS"))
	assert.True(t, consolidator.IsPending("B_ATIS"))
	consolidator.Clear()
	assert.Equal(t, 0, consolidator.Len())
}

func TestAtisMap(t *testing.T) {
	atisMap := NewMap()
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineEnd, "4"))

	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineVoiceRoom, "voice.example.org/eddm_atis"))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineText, "Munich information A"))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineText, "z1"))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineText, "  Runway 26R  "))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineText, "z"))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineText, "."))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineLogoff, "1800z"))

	message := atisMap.Update("EDDM_ATIS", fsd.AtisLineEnd, "7")
	require.NotNil(t, message)
	assert.Equal(t, "voice.example.org/eddm_atis", message.VoiceRoom)
	assert.Equal(t, "Munich information A\nRunway 26R", message.Text)
	assert.Equal(t, "1800z", message.LogoffTime)
	assert.Equal(t, 8, message.LineCount)

	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineEnd, "1"))
	assert.Nil(t, atisMap.Update("EDDM_ATIS", fsd.AtisLineType("X"), "?"))
}
