package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState tracks the last upstream history pull per account address.
type SyncState struct {
	Address       string         `gorm:"primaryKey;type:varchar(64)"`
	WatermarkTS   *int64         `gorm:"comment:latest event timestamp seen"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz"`
	LastError     *string        `gorm:"type:text"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb"`
}

func (SyncState) TableName() string {
	return "sync_state"
}
