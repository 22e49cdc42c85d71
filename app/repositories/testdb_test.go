package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewpush/app/models"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Device{},
		&models.DeviceCommand{},
		&models.TerminalUser{},
		&models.BiometricTemplate{},
		&models.AttendanceEvent{},
		&models.CrewMember{},
		&models.FlightAssignment{},
		&models.CheckIn{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
