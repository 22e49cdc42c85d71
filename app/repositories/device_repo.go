package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/models"
)

type DeviceRepository struct {
	DB *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{DB: db}
}

func (r *DeviceRepository) GetBySerial(sn string) (*models.Device, error) {
	var d models.Device
	result := r.DB.Where("serial_number = ?", sn).First(&d)
	if result.Error != nil {
		return nil, result.Error
	}
	return &d, nil
}

func (r *DeviceRepository) Create(d *models.Device) error {
	return errors.Wrap(r.DB.Create(d).Error, "create device")
}

// UpdateFields writes only the named columns. Touch-updates go through
// here so stamp columns are never reset by a routine poll.
func (r *DeviceRepository) UpdateFields(sn string, fields map[string]interface{}) error {
	result := r.DB.Model(&models.Device{}).
		Where("serial_number = ?", sn).
		Updates(fields)
	return errors.Wrap(result.Error, "update device fields")
}
