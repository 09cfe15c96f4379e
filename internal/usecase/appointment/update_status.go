package appointment

import (
	"context"
	"time"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	notif notifier
	audit auditTrail

	storeTimeout time.Duration
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	notif notifier,
	auditTrail auditTrail,
	storeTimeout time.Duration,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:         repo,
		notif:        notif,
		audit:        auditTrail,
		storeTimeout: storeTimeout,
	}
}

// Execute applies one edge of the status machine. An illegal edge
// fails with invalid_transition and leaves the record unchanged.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	newStatus domain.Status,
	actorUserID *uint,
) (*models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidationFailure, "unknown status")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	if err := domain.Transition(ap, newStatus, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	startLabel := ap.StartTime.Format("Mon, 02 Jan 2006 15:04")

	uc.notif.Dispatch(notification.Event{
		UserID:  ap.PatientID,
		Type:    models.NotificationAppointment,
		Title:   "Appointment " + statusLabel(newStatus),
		Message: "Your consultation with Dr. " + ap.Physician.Name + " on " + startLabel + " is now " + statusLabel(newStatus) + ".",
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"status":         ap.Status,
		},
	})

	uc.audit.Dispatch(auditEvent(actorUserID, "appointment_status_updated", ap.ID, map[string]any{
		"from": previous,
		"to":   string(newStatus),
	}))

	return ap, nil
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusConfirmed:
		return "confirmed"
	case domain.StatusCompleted:
		return "completed"
	case domain.StatusCancelled:
		return "cancelled"
	case domain.StatusNoShow:
		return "marked as no-show"
	}
	return string(s)
}
