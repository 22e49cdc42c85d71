package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crewpush/app/models"
)

type TerminalUserRepository struct {
	DB *gorm.DB
}

func NewTerminalUserRepository(db *gorm.DB) *TerminalUserRepository {
	return &TerminalUserRepository{DB: db}
}

// Upsert replaces any prior record for the same (serial, PIN)
// atomically; there is never a window where the user does not exist.
func (r *TerminalUserRepository) Upsert(u *models.TerminalUser) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_sn"}, {Name: "pin"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "privilege", "password", "card", "grp", "time_zone", "updated_at",
		}),
	}).Create(u)
	return errors.Wrap(result.Error, "upsert terminal user")
}

func (r *TerminalUserRepository) Exists(sn, pin string) (bool, error) {
	var count int64
	result := r.DB.Model(&models.TerminalUser{}).
		Where("device_sn = ? AND pin = ?", sn, pin).
		Count(&count)
	return count > 0, errors.Wrap(result.Error, "terminal user exists")
}

func (r *TerminalUserRepository) GetByPIN(sn, pin string) (*models.TerminalUser, error) {
	var u models.TerminalUser
	result := r.DB.Where("device_sn = ? AND pin = ?", sn, pin).First(&u)
	if result.Error != nil {
		return nil, result.Error
	}
	return &u, nil
}

// SetPhoto attaches an uploaded photo to an existing record. A miss is
// reported as gorm.ErrRecordNotFound, not an upsert.
func (r *TerminalUserRepository) SetPhoto(sn, pin, name string, size int, content string) error {
	result := r.DB.Model(&models.TerminalUser{}).
		Where("device_sn = ? AND pin = ?", sn, pin).
		Updates(map[string]interface{}{
			"photo_name":    name,
			"photo_size":    size,
			"photo_content": content,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "set photo")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertTemplate stores a biometric template keyed by
// (serial, PIN, slot, type). Caller must have checked that the user
// record exists; templates never dangle.
func (r *TerminalUserRepository) UpsertTemplate(t *models.BiometricTemplate) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "device_sn"}, {Name: "pin"}, {Name: "slot_index"}, {Name: "type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"version", "valid", "template", "updated_at",
		}),
	}).Create(t)
	return errors.Wrap(result.Error, "upsert template")
}
