// Package operation
package operation

import (
	"time"
)

// History 一次完整的网络会话
type History struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	SessionId  string    `gorm:"size:36;uniqueIndex;not null" json:"session_id"`
	Server     string    `gorm:"size:64;index;not null" json:"server"`
	Cid        string    `gorm:"size:16;index;not null" json:"cid"`
	Callsign   string    `gorm:"size:16;index;not null" json:"callsign"`
	IsObserver bool      `gorm:"default:0;not null" json:"is_observer"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	OnlineTime int       `gorm:"default:0;not null" json:"online_time"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// NetworkStatistic 会话结束时保存的报文计数
type NetworkStatistic struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	SessionId string    `gorm:"size:36;index;not null" json:"session_id"`
	Server    string    `gorm:"size:64;index;not null" json:"server"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Count     int       `gorm:"default:0;not null" json:"count"`
	CreatedAt time.Time `json:"-"`
}
