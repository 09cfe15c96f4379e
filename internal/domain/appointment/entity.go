package appointment

import (
	"time"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves an appointment along one edge of the state machine,
// filling the timestamp columns the new status owns. The record is left
// untouched on an illegal edge.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}

	return nil
}

// Cancel transitions to CANCELLED and records who asked for it.
func Cancel(ap *models.Appointment, by Actor, now time.Time) error {
	if err := Transition(ap, StatusCancelled, now); err != nil {
		return err
	}

	actor := string(by)
	ap.CancelledBy = &actor
	return nil
}
