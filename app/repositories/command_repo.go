package repositories

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/models"
)

type CommandRepository struct {
	DB *gorm.DB
}

func NewCommandRepository(db *gorm.DB) *CommandRepository {
	return &CommandRepository{DB: db}
}

func (r *CommandRepository) Create(cmd *models.DeviceCommand) error {
	return errors.Wrap(r.DB.Create(cmd).Error, "create command")
}

// PendingByDevice returns undelivered commands for a device in FIFO
// order. A command is pending while its return value is empty.
func (r *CommandRepository) PendingByDevice(sn string, limit int) ([]models.DeviceCommand, error) {
	var cmds []models.DeviceCommand
	result := r.DB.
		Where("device_sn = ? AND return_value = ''", sn).
		Order("id asc").
		Limit(limit).
		Find(&cmds)
	return cmds, errors.Wrap(result.Error, "list pending commands")
}

// MarkTransmitted stamps the transfer time once; commands already
// stamped keep their original time, so redelivery is idempotent here.
func (r *CommandRepository) MarkTransmitted(cmds []models.DeviceCommand, at time.Time) error {
	if len(cmds) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(cmds))
	for _, c := range cmds {
		ids = append(ids, c.ID)
	}
	result := r.DB.Model(&models.DeviceCommand{}).
		Where("id IN ? AND transfer_time IS NULL", ids).
		Update("transfer_time", at)
	return errors.Wrap(result.Error, "mark transmitted")
}

// MarkReturned records the device acknowledgement. An unknown ID is
// reported as gorm.ErrRecordNotFound so the caller can log and move on.
func (r *CommandRepository) MarkReturned(id uint, returnValue, returnInfo string, at time.Time) error {
	result := r.DB.Model(&models.DeviceCommand{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"return_value":  returnValue,
			"return_info":   returnInfo,
			"returned_time": at,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "mark returned")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ByIDs re-reads commands, used by the immediate-execute path where
// the same rows are consulted within one HTTP exchange.
func (r *CommandRepository) ByIDs(ids []uint) ([]models.DeviceCommand, error) {
	var cmds []models.DeviceCommand
	result := r.DB.Where("id IN ?", ids).Order("id asc").Find(&cmds)
	return cmds, errors.Wrap(result.Error, "load commands by id")
}
