package models

import "time"

// TerminalUser is the per-device user record, keyed by (serial, PIN).
// It is written both by admin-driven sync and by the device reporting
// enrollment back through OPERLOG.
type TerminalUser struct {
	ID        uint   `gorm:"primaryKey"`
	DeviceSN  string `gorm:"size:64;uniqueIndex:idx_terminal_user;not null"`
	PIN       string `gorm:"size:32;uniqueIndex:idx_terminal_user;not null"`
	Name      string `gorm:"size:64"`
	Privilege int
	Password  string `gorm:"size:64"`
	Card      string `gorm:"size:32"`
	Grp       string `gorm:"size:16"`
	TimeZone  string `gorm:"size:32"`

	PhotoName    string `gorm:"size:128"`
	PhotoSize    int
	PhotoContent string `gorm:"type:longtext"` // base64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TerminalUser) TableName() string {
	return "terminal_users"
}

// BiometricTemplate stores an opaque template blob for a terminal
// user, keyed by slot index and biometric type. Matching happens on
// the device; the server only round-trips the data.
type BiometricTemplate struct {
	ID        uint   `gorm:"primaryKey"`
	DeviceSN  string `gorm:"size:64;uniqueIndex:idx_bio_template;not null"`
	PIN       string `gorm:"size:32;uniqueIndex:idx_bio_template;not null"`
	SlotIndex int    `gorm:"uniqueIndex:idx_bio_template"`
	Type      int    `gorm:"uniqueIndex:idx_bio_template"`
	Version   string `gorm:"size:16"`
	Valid     int
	Template  string `gorm:"type:longtext"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BiometricTemplate) TableName() string {
	return "biometric_templates"
}
