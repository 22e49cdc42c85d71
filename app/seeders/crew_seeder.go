package seeders

import (
	"time"

	"gorm.io/gorm"

	"crewpush/app/models"
)

// SeedCrew loads a small demo roster when the crew table is empty so a
// fresh install can exercise the reconciliation flow end to end.
func SeedCrew(db *gorm.DB) error {
	var count int64
	db.Model(&models.CrewMember{}).Count(&count)
	if count > 0 {
		return nil
	}

	crew := []models.CrewMember{
		{PIN: "7001", Name: "M. Herrera", AirlineCode: "CM", Active: true},
		{PIN: "7002", Name: "L. Tanaka", AirlineCode: "CM", Active: true},
		{PIN: "7003", Name: "A. Osei", AirlineCode: "AV", Active: true},
	}
	for i := range crew {
		if err := db.Create(&crew[i]).Error; err != nil {
			return err
		}
	}

	today := time.Now().Format("2006-01-02")
	assignments := []models.FlightAssignment{
		{CrewID: crew[0].ID, AirlineCode: "CM", FlightNumber: "CM302", FlightDate: today, FlightTime: "08:30:00", Status: models.AssignmentPlanned},
		{CrewID: crew[1].ID, AirlineCode: "CM", FlightNumber: "CM415", FlightDate: today, FlightTime: "14:10:00", Status: models.AssignmentPlanned},
		{CrewID: crew[2].ID, AirlineCode: "AV", FlightNumber: "AV221", FlightDate: today, FlightTime: "09:45:00", Status: models.AssignmentPlanned},
	}
	for i := range assignments {
		if err := db.Create(&assignments[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
