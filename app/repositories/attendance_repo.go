package repositories

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/models"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Exists checks the dedup key. The unique index on the same columns
// backs this up under concurrent uploads.
func (r *AttendanceRepository) Exists(sn, pin string, ts time.Time, verifyType int) (bool, error) {
	var count int64
	result := r.DB.Model(&models.AttendanceEvent{}).
		Where("device_sn = ? AND pin = ? AND timestamp = ? AND verify_type = ?",
			sn, pin, ts, verifyType).
		Count(&count)
	return count > 0, errors.Wrap(result.Error, "attendance exists")
}

func (r *AttendanceRepository) Create(ev *models.AttendanceEvent) error {
	return errors.Wrap(r.DB.Create(ev).Error, "create attendance event")
}
