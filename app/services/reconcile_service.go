package services

import (
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/metrics"
	"crewpush/app/models"
	"crewpush/app/repositories"
)

// AdmissionWindow is how long after scheduled departure a punch still
// admits. Exactly scheduled+window admits; one second later rejects.
const AdmissionWindow = 2 * time.Hour

type Outcome int

const (
	OutcomeReconciled Outcome = iota
	OutcomeUnknownCrew
	OutcomeNoAssignment
	OutcomeOutsideWindow
	OutcomeAlreadyReconciled
	OutcomeError
)

type ReconcileService struct {
	Crew     *repositories.CrewRepository
	Flights  *repositories.FlightRepository
	Notifier Notifier
}

func NewReconcileService(crew *repositories.CrewRepository, flights *repositories.FlightRepository, notifier Notifier) *ReconcileService {
	return &ReconcileService{Crew: crew, Flights: flights, Notifier: notifier}
}

// Reconcile matches a fresh attendance event to a planned flight
// assignment. Every non-admitted outcome is an expected, logged drop;
// the device never sees a business result.
func (s *ReconcileService) Reconcile(ev *models.AttendanceEvent) Outcome {
	crew, err := s.Crew.FindActiveByPin(ev.PIN)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Reconcile] no active crew for PIN %s, dropping event", ev.PIN)
		return OutcomeUnknownCrew
	}
	if err != nil {
		log.Printf("[Reconcile] crew lookup failed for PIN %s: %v", ev.PIN, err)
		return OutcomeError
	}

	date := ev.Timestamp.Format("2006-01-02")
	asg, err := s.Flights.FindPlanned(crew.ID, crew.AirlineCode, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Reconcile] no planned assignment for crew %d (%s) on %s", crew.ID, crew.AirlineCode, date)
		return OutcomeNoAssignment
	}
	if err != nil {
		log.Printf("[Reconcile] assignment lookup failed for crew %d: %v", crew.ID, err)
		return OutcomeError
	}

	scheduled, err := time.ParseInLocation("2006-01-02 15:04:05",
		asg.FlightDate+" "+asg.FlightTime, time.Local)
	if err != nil {
		log.Printf("[Reconcile] assignment %d has unparseable schedule %q %q", asg.ID, asg.FlightDate, asg.FlightTime)
		return OutcomeError
	}
	if ev.Timestamp.After(scheduled.Add(AdmissionWindow)) {
		log.Printf("[Reconcile] event for crew %d outside admission window (actual %s, scheduled %s)",
			crew.ID, ev.Timestamp.Format("15:04:05"), asg.FlightTime)
		return OutcomeOutsideWindow
	}

	checkIn := &models.CheckIn{
		AssignmentID: asg.ID,
		DeviceSN:     ev.DeviceSN,
		Date:         date,
		Time:         ev.Timestamp.Format("15:04:05"),
	}
	if err := s.Flights.Reconcile(asg.ID, checkIn); err != nil {
		if errors.Is(err, repositories.ErrAlreadyReconciled) {
			log.Printf("[Reconcile] assignment %d already reconciled, dropping event", asg.ID)
			return OutcomeAlreadyReconciled
		}
		log.Printf("[Reconcile] failed to reconcile assignment %d: %v", asg.ID, err)
		return OutcomeError
	}

	metrics.Reconciliations.Inc()
	log.Printf("[Reconcile] crew %d checked in for flight %s on %s at %s",
		crew.ID, asg.FlightNumber, date, checkIn.Time)
	s.Notifier.PlanningChanged(crew.ID, asg.ID)
	return OutcomeReconciled
}
