// Package database
package database

import (
	"context"
	"time"

	. "github.com/half-nothing/fsd-client/internal/interfaces/operation"
	"gorm.io/gorm"
)

type StatisticsOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewStatisticsOperation(db *gorm.DB, queryTimeout time.Duration) *StatisticsOperation {
	return &StatisticsOperation{db: db, queryTimeout: queryTimeout}
}

func (statisticsOperation *StatisticsOperation) SaveNetworkStatistics(server string, sessionId string, counters map[string]int) (err error) {
	if len(counters) == 0 {
		return nil
	}
	records := make([]*NetworkStatistic, 0, len(counters))
	for name, count := range counters {
		records = append(records, &NetworkStatistic{
			SessionId: sessionId,
			Server:    server,
			Name:      name,
			Count:     count,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), statisticsOperation.queryTimeout)
	defer cancel()

	return statisticsOperation.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, 100).Error
	})
}

func (statisticsOperation *StatisticsOperation) GetSessionStatistics(sessionId string) (statistics []*NetworkStatistic, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), statisticsOperation.queryTimeout)
	defer cancel()

	statistics = make([]*NetworkStatistic, 0)
	err = statisticsOperation.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("count desc").
		Order("name asc").
		Find(&statistics).Error
	return
}
