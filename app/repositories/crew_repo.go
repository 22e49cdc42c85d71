package repositories

import (
	"gorm.io/gorm"

	"crewpush/app/models"
)

type CrewRepository struct {
	DB *gorm.DB
}

func NewCrewRepository(db *gorm.DB) *CrewRepository {
	return &CrewRepository{DB: db}
}

func (r *CrewRepository) FindActiveByPin(pin string) (*models.CrewMember, error) {
	var c models.CrewMember
	result := r.DB.Where("pin = ? AND active = ?", pin, true).First(&c)
	if result.Error != nil {
		return nil, result.Error
	}
	return &c, nil
}
