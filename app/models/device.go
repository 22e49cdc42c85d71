package models

import "time"

type DeviceState string

const (
	StateOnline  DeviceState = "ONLINE"
	StateOffline DeviceState = "OFFLINE"
)

// A device that has not polled for this long reads as Offline
// regardless of its stored state.
const StaleAfter = 10 * time.Minute

type Device struct {
	ID           uint        `gorm:"primaryKey"`
	SerialNumber string      `gorm:"size:64;uniqueIndex;not null"`
	State        DeviceState `gorm:"size:16;default:'ONLINE'"`
	IPAddress    string      `gorm:"size:64"`
	Language     string      `gorm:"size:16"`
	PushVersion  string      `gorm:"size:32"`
	CommKey      string      `gorm:"size:64"`

	// DEV_FUNS positional flags: fingerprint, face, user photo,
	// bio photo, bio data.
	DevFuns string `gorm:"size:32"`

	FirmwareVersion  string `gorm:"size:64"`
	FpVersion        string `gorm:"size:32"`
	FaceVersion      string `gorm:"size:32"`
	UserCount        int
	FingerprintCount int
	FaceCount        int
	TransactionCount int

	// Per-stream checkpoints echoed back to the device so it does
	// not re-upload acknowledged records.
	AttlogStamp   string `gorm:"size:32;default:'0'"`
	OperlogStamp  string `gorm:"size:32;default:'0'"`
	AttphotoStamp string `gorm:"size:32;default:'0'"`
	BiodataStamp  string `gorm:"size:32;default:'0'"`
	IdcardStamp   string `gorm:"size:32;default:'0'"`
	ErrorlogStamp string `gorm:"size:32;default:'0'"`

	TimeZone     string `gorm:"size:8;default:'+0000'"`
	LastActivity time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveState is a read-time projection; it is never written back.
func (d *Device) EffectiveState(now time.Time) DeviceState {
	if now.Sub(d.LastActivity) > StaleAfter {
		return StateOffline
	}
	return d.State
}
