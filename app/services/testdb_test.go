package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewpush/app/models"
	"crewpush/app/repositories"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

// noopNotifier keeps tests quiet and counts emissions.
type noopNotifier struct {
	calls int
}

func (n *noopNotifier) PlanningChanged(crewID, assignmentID uint) {
	n.calls++
}

func newServices(t *testing.T, db *gorm.DB) (*DeviceService, *CommandService, *IngestService, *ReconcileService, *noopNotifier) {
	t.Helper()
	cmdRepo := repositories.NewCommandRepository(db)
	devRepo := repositories.NewDeviceRepository(db)
	userRepo := repositories.NewTerminalUserRepository(db)
	attRepo := repositories.NewAttendanceRepository(db)
	crewRepo := repositories.NewCrewRepository(db)
	flightRepo := repositories.NewFlightRepository(db)

	photos := &PhotoService{Root: t.TempDir(), cache: make(map[string][]byte)}
	cmdSvc := NewCommandService(cmdRepo, devRepo, photos)
	devSvc := NewDeviceService(devRepo, cmdSvc)
	notifier := &noopNotifier{}
	reconcileSvc := NewReconcileService(crewRepo, flightRepo, notifier)
	ingestSvc := NewIngestService(userRepo, attRepo, reconcileSvc)
	return devSvc, cmdSvc, ingestSvc, reconcileSvc, notifier
}
