// Package database
package database

import (
	"context"
	"errors"
	"time"

	. "github.com/half-nothing/fsd-client/internal/interfaces/operation"
	"gorm.io/gorm"
)

type HistoryOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
	TimeNow      func() time.Time
}

func NewHistoryOperation(db *gorm.DB, queryTimeout time.Duration) *HistoryOperation {
	return &HistoryOperation{db: db, queryTimeout: queryTimeout, TimeNow: time.Now}
}

func (historyOperation *HistoryOperation) NewHistory(sessionId string, server string, cid string, callsign string, isObserver bool) (history *History) {
	now := historyOperation.TimeNow()
	return &History{
		SessionId:  sessionId,
		Server:     server,
		Cid:        cid,
		Callsign:   callsign,
		IsObserver: isObserver,
		StartTime:  now,
		EndTime:    now,
		OnlineTime: 0,
	}
}

func (historyOperation *HistoryOperation) SaveHistory(history *History) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), historyOperation.queryTimeout)
	defer cancel()

	return historyOperation.db.WithContext(ctx).Save(history).Error
}

func (historyOperation *HistoryOperation) EndRecordAndSaveHistory(history *History) (err error) {
	history.EndTime = historyOperation.TimeNow()
	history.OnlineTime = int(history.EndTime.Sub(history.StartTime).Seconds())
	return historyOperation.SaveHistory(history)
}

func (historyOperation *HistoryOperation) GetHistoryBySession(sessionId string) (history *History, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), historyOperation.queryTimeout)
	defer cancel()

	history = &History{}
	err = historyOperation.db.WithContext(ctx).Where("session_id = ?", sessionId).First(history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHistoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (historyOperation *HistoryOperation) GetUserHistory(cid string, limit int) (histories []*History, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), historyOperation.queryTimeout)
	defer cancel()

	histories = make([]*History, 0, limit)
	err = historyOperation.db.WithContext(ctx).
		Where("cid = ?", cid).
		Order("start_time desc").
		Limit(limit).
		Find(&histories).Error
	return
}
