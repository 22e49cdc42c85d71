package services

import (
	"log"

	"github.com/google/uuid"
)

// Notifier receives planning-changed events for downstream push
// delivery. Calls are fire-and-forget; a failed notification never
// rolls back a reconciliation.
type Notifier interface {
	PlanningChanged(crewID, assignmentID uint)
}

// LogNotifier is the in-process stand-in for the real dispatcher.
type LogNotifier struct{}

func (LogNotifier) PlanningChanged(crewID, assignmentID uint) {
	log.Printf("[Notify] planning changed event %s crew=%d assignment=%d",
		uuid.NewString(), crewID, assignmentID)
}
