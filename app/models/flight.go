package models

import "time"

type AssignmentStatus string

const (
	AssignmentPlanned    AssignmentStatus = "PLANNED"
	AssignmentReconciled AssignmentStatus = "RECONCILED"
)

// FlightAssignment schedules a crew member on a flight. Reconciliation
// moves it Planned -> Reconciled exactly once.
type FlightAssignment struct {
	ID           uint             `gorm:"primaryKey"`
	CrewID       uint             `gorm:"index:idx_assignment;not null"`
	AirlineCode  string           `gorm:"size:8;index:idx_assignment"`
	FlightNumber string           `gorm:"size:16"`
	FlightDate   string           `gorm:"size:10;index:idx_assignment"` // YYYY-MM-DD
	FlightTime   string           `gorm:"size:8"`                       // HH:MM:SS
	Status       AssignmentStatus `gorm:"size:16;default:'PLANNED'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (FlightAssignment) TableName() string {
	return "flight_assignments"
}

// CheckIn records the admitted punch that reconciled an assignment.
type CheckIn struct {
	ID           uint   `gorm:"primaryKey"`
	AssignmentID uint   `gorm:"index;not null"`
	DeviceSN     string `gorm:"size:64"`
	Date         string `gorm:"size:10"` // YYYY-MM-DD
	Time         string `gorm:"size:8"`  // HH:MM:SS
	CreatedAt    time.Time
}

func (CheckIn) TableName() string {
	return "check_ins"
}
