package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewpush/app/models"
	"crewpush/app/repositories"
	"crewpush/app/seeders"
	"crewpush/app/services"
	"crewpush/config"
	"crewpush/controllers"
	"crewpush/server"
)

func main() {
	fmt.Println("--- CREWPUSH TERMINAL SERVER ---")

	if err := config.LoadConfig("config.yml"); err != nil {
		log.Fatalf("[Error] Failed to load config.yml: %v", err)
	}

	fmt.Println("[Init] Connecting to MySQL...")
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db, err := gorm.Open(mysql.Open(config.AppConfig.Server.DBDSN), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("[Error] DB connection failed: %v", err)
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
		log.Fatalf("[Error] migration failed: %v", err)
	}

	if err := seeders.SeedCrew(db); err != nil {
		log.Printf("[Warning] crew seeding failed: %v", err)
	}

	// Repositories
	cmdRepo := repositories.NewCommandRepository(db)
	devRepo := repositories.NewDeviceRepository(db)
	userRepo := repositories.NewTerminalUserRepository(db)
	attRepo := repositories.NewAttendanceRepository(db)
	crewRepo := repositories.NewCrewRepository(db)
	flightRepo := repositories.NewFlightRepository(db)

	// Services
	photos := services.NewPhotoService(config.AppConfig.Photos.Dir)
	defer photos.Close()
	cmdSvc := services.NewCommandService(cmdRepo, devRepo, photos)
	devSvc := services.NewDeviceService(devRepo, cmdSvc)
	reconcileSvc := services.NewReconcileService(crewRepo, flightRepo, services.LogNotifier{})
	ingestSvc := services.NewIngestService(userRepo, attRepo, reconcileSvc)
	uploads := services.NewUploadStore(config.AppConfig.Uploads.Dir)

	controllers.Init(devSvc, cmdSvc, ingestSvc, uploads)
	fmt.Println("[Init] Service layer initialized.")

	srv := server.New(config.AppConfig.Server.Addr)
	fmt.Printf("[Server] Listening on %s\n", config.AppConfig.Server.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[Error] server stopped: %v", err)
	}
}
