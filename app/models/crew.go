package models

import "time"

// CrewMember is the directory entry reconciliation resolves a device
// PIN against. Full crew CRUD lives outside this service.
type CrewMember struct {
	ID          uint   `gorm:"primaryKey"`
	PIN         string `gorm:"size:32;uniqueIndex;not null"`
	Name        string `gorm:"size:128"`
	AirlineCode string `gorm:"size:8;index"`
	PhotoPath   string `gorm:"size:255"`
	Active      bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CrewMember) TableName() string {
	return "crew_members"
}
