package models

import "time"

// SentinelAbsent marks mask/temperature fields the device did not send.
const SentinelAbsent = 255

// AttendanceEvent is one check-in/out punch uploaded through ATTLOG.
// (DeviceSN, PIN, Timestamp, VerifyType) is the dedup key; replayed
// uploads never create a second row.
type AttendanceEvent struct {
	ID          uint      `gorm:"primaryKey"`
	DeviceSN    string    `gorm:"size:64;uniqueIndex:idx_att_dedup;not null"`
	PIN         string    `gorm:"size:32;uniqueIndex:idx_att_dedup;not null"`
	Timestamp   time.Time `gorm:"uniqueIndex:idx_att_dedup"`
	VerifyType  int       `gorm:"uniqueIndex:idx_att_dedup"`
	Status      int
	WorkCode    string `gorm:"size:32"`
	MaskFlag    int    `gorm:"default:255"`
	Temperature float64
	CreatedAt   time.Time
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}
