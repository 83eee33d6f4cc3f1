package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/half-nothing/fsd-client/internal/base"
	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) *operation.DatabaseOperations {
	t.Helper()
	cfg := config.DefaultConfig().Database
	cfg.Enabled = true
	cfg.DBType = config.SQLite
	cfg.Database = filepath.Join(t.TempDir(), "test.db")
	cfg.QueryDuration = 5 * time.Second
	cfg.ConnectIdleDuration = time.Hour

	logger := base.NewLogger()
	operations, closer, err := ConnectDatabase(logger, cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = closer.Invoke(ctx)
	})
	return operations
}

func TestConnectDatabaseDisabled(t *testing.T) {
	cfg := config.DefaultConfig().Database
	cfg.Enabled = false
	_, _, err := ConnectDatabase(base.NewLogger(), cfg, false)
	assert.ErrorIs(t, err, ErrDatabaseDisabled)
}

func TestHistoryOperation(t *testing.T) {
	operations := openTestDatabase(t)
	historyOperation := operations.HistoryOperation()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if op, ok := historyOperation.(*HistoryOperation); ok {
		op.TimeNow = func() time.Time { return start }
	}
	history := historyOperation.NewHistory("session-1", "local", "1000001", "CES2352", false)
	require.NoError(t, historyOperation.SaveHistory(history))

	if op, ok := historyOperation.(*HistoryOperation); ok {
		op.TimeNow = func() time.Time { return start.Add(90 * time.Minute) }
	}
	require.NoError(t, historyOperation.EndRecordAndSaveHistory(history))

	stored, err := historyOperation.GetHistoryBySession("session-1")
	require.NoError(t, err)
	assert.Equal(t, "CES2352", stored.Callsign)
	assert.Equal(t, 5400, stored.OnlineTime)

	_, err = historyOperation.GetHistoryBySession("missing")
	assert.ErrorIs(t, err, operation.ErrHistoryNotFound)

	second := historyOperation.NewHistory("session-2", "local", "1000001", "CES2353", true)
	require.NoError(t, historyOperation.SaveHistory(second))

	histories, err := historyOperation.GetUserHistory("1000001", 10)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, "session-2", histories[0].SessionId)
}

func TestStatisticsOperation(t *testing.T) {
	operations := openTestDatabase(t)
	statisticsOperation := operations.StatisticsOperation()

	require.NoError(t, statisticsOperation.SaveNetworkStatistics("local", "session-1", nil))
	require.NoError(t, statisticsOperation.SaveNetworkStatistics("local", "session-1", map[string]int{
		"parseMessage.PilotDataUpdate": 120,
		"sendPilotDataUpdate":          24,
		"parseMessage.TextMessage":     3,
	}))

	statistics, err := statisticsOperation.GetSessionStatistics("session-1")
	require.NoError(t, err)
	require.Len(t, statistics, 3)
	assert.Equal(t, "parseMessage.PilotDataUpdate", statistics[0].Name)
	assert.Equal(t, 120, statistics[0].Count)
	assert.Equal(t, "parseMessage.TextMessage", statistics[2].Name)

	empty, err := statisticsOperation.GetSessionStatistics("session-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
