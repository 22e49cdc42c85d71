package models

import "time"

// DeviceCommand is one protocol instruction queued for a terminal.
// A command is pending while ReturnValue is empty; rows are never
// deleted so the table doubles as the delivery audit trail.
type DeviceCommand struct {
	ID           uint   `gorm:"primaryKey"`
	DeviceSN     string `gorm:"size:64;index;not null"`
	Content      string `gorm:"type:text"`
	CommitTime   time.Time
	TransferTime *time.Time
	ReturnedTime *time.Time
	ReturnValue  string `gorm:"size:16;default:''"`
	ReturnInfo   string `gorm:"type:text"`
}

func (DeviceCommand) TableName() string {
	return "device_commands"
}

func (c *DeviceCommand) Pending() bool {
	return c.ReturnValue == ""
}
