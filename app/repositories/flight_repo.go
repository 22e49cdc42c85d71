package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/models"
)

// ErrAlreadyReconciled signals that the status guard rejected the
// transition; another event reconciled the assignment first.
var ErrAlreadyReconciled = errors.New("assignment already reconciled")

type FlightRepository struct {
	DB *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{DB: db}
}

func (r *FlightRepository) FindPlanned(crewID uint, airlineCode, date string) (*models.FlightAssignment, error) {
	var a models.FlightAssignment
	result := r.DB.
		Where("crew_id = ? AND airline_code = ? AND flight_date = ? AND status = ?",
			crewID, airlineCode, date, models.AssignmentPlanned).
		First(&a)
	if result.Error != nil {
		return nil, result.Error
	}
	return &a, nil
}

// Reconcile flips the assignment Planned -> Reconciled and inserts the
// check-in row in one transaction. The status re-check in the WHERE
// clause is the concurrency guard: a second writer affects zero rows
// and the whole transaction rolls back.
func (r *FlightRepository) Reconcile(assignmentID uint, checkIn *models.CheckIn) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FlightAssignment{}).
			Where("id = ? AND status = ?", assignmentID, models.AssignmentPlanned).
			Update("status", models.AssignmentReconciled)
		if result.Error != nil {
			return errors.Wrap(result.Error, "transition assignment")
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyReconciled
		}
		return errors.Wrap(tx.Create(checkIn).Error, "create check-in")
	})
}
