// Package offset
package offset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func feed(estimator *Estimator, callsign string, deltas ...time.Duration) []time.Duration {
	results := make([]time.Duration, 0, len(deltas)+1)
	current := epoch
	results = append(results, estimator.Update(callsign, current))
	for _, delta := range deltas {
		current = current.Add(delta)
		results = append(results, estimator.Update(callsign, current))
	}
	return results
}

func TestEstimatorUpdate(t *testing.T) {
	tests := []struct {
		name     string
		deltas   []time.Duration
		expected time.Duration
	}{
		{"first update", nil, DefaultOffset},
		{"two fast updates", []time.Duration{time.Second, time.Second}, DefaultOffset},
		{"three fast updates", []time.Duration{time.Second, time.Second, time.Second}, MinimumOffset},
		{"three slow updates", []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second}, DefaultOffset},
		{"slow then fast", []time.Duration{5 * time.Second, 5 * time.Second, time.Second, time.Second, time.Second}, MinimumOffset},
		{"fast then slow", []time.Duration{time.Second, time.Second, time.Second, 5 * time.Second}, DefaultOffset},
		{"mean on the threshold", []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, DefaultOffset},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		results := feed(NewEstimator(0), "ABCD", test.deltas...)
		result := results[len(results)-1]
		if result != test.expected {
			fail++
			t.Errorf("%s: got %v, expected %v", test.name, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestEstimatorUpdate: %d pass, %d fail", pass, fail)
}

func TestEstimatorAdditionalOffset(t *testing.T) {
	estimator := NewEstimator(500 * time.Millisecond)
	results := feed(estimator, "ABCD", time.Second, time.Second, time.Second)
	// 首次更新不叠加附加偏移
	assert.Equal(t, DefaultOffset, results[0])
	assert.Equal(t, DefaultOffset+500*time.Millisecond, results[1])
	assert.Equal(t, MinimumOffset+500*time.Millisecond, results[3])
}

func TestEstimatorHistoryIsCapped(t *testing.T) {
	estimator := NewEstimator(0)
	deltas := make([]time.Duration, 0, 10)
	for i := 1; i <= 10; i++ {
		deltas = append(deltas, time.Duration(i)*time.Second)
	}
	feed(estimator, "ABCD", deltas...)

	history := estimator.History("ABCD")
	assert.Len(t, history, MaxHistory)
	assert.Equal(t, 10*time.Second, history[0])
	assert.Equal(t, 5*time.Second, history[MaxHistory-1])
	assert.Equal(t, 10*time.Second, estimator.Current("ABCD"))
}

func TestEstimatorOutOfOrderTimestamp(t *testing.T) {
	estimator := NewEstimator(0)
	estimator.Update("ABCD", epoch)
	estimator.Update("ABCD", epoch.Add(-3*time.Second))
	assert.Equal(t, 3*time.Second, estimator.Current("ABCD"))
}

func TestEstimatorZeroTimestampUsesClock(t *testing.T) {
	estimator := NewEstimator(0)
	now := epoch
	estimator.TimeNow = func() time.Time { return now }
	estimator.Update("ABCD", time.Time{})
	now = now.Add(1500 * time.Millisecond)
	estimator.Update("ABCD", time.Time{})
	assert.Equal(t, 1500*time.Millisecond, estimator.Current("ABCD"))
}

func TestEstimatorRemoveAndClear(t *testing.T) {
	estimator := NewEstimator(0)
	feed(estimator, "ABCD", time.Second)
	feed(estimator, "EFGH", time.Second)
	assert.Equal(t, 2, estimator.Len())

	estimator.Remove("ABCD")
	assert.Equal(t, DefaultOffset, estimator.Current("ABCD"))
	assert.Nil(t, estimator.History("ABCD"))
	assert.Equal(t, DefaultOffset, estimator.Update("ABCD", epoch))

	estimator.Clear()
	assert.Equal(t, 0, estimator.Len())
}
