package appointment

import (
	"context"
	"time"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

type CancelAppointment struct {
	repo  domain.Repository
	notif notifier
	mail  mailQueue
	audit auditTrail

	storeTimeout time.Duration
}

func NewCancelAppointment(
	repo domain.Repository,
	notif notifier,
	mail mailQueue,
	auditTrail auditTrail,
	storeTimeout time.Duration,
) *CancelAppointment {
	return &CancelAppointment{
		repo:         repo,
		notif:        notif,
		mail:         mail,
		audit:        auditTrail,
		storeTimeout: storeTimeout,
	}
}

// Execute cancels an appointment on behalf of the given actor. The
// cancellation commits whenever the status machine allows it; the
// email and pushes that follow are best effort.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	cancelledBy domain.Actor,
	actorUserID *uint,
) (*models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if !domain.IsValidActor(cancelledBy) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidationFailure, "unknown cancelling actor")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Patients and physicians may only touch their own appointments;
	// a foreign one looks missing.
	if actorUserID != nil {
		switch cancelledBy {
		case domain.ActorPatient:
			if ap.PatientID != *actorUserID {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
		case domain.ActorPhysician:
			if ap.PhysicianID != *actorUserID {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
		}
	}

	now := time.Now()
	if err := domain.Cancel(ap, cancelledBy, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	startLabel := ap.StartTime.Format("Mon, 02 Jan 2006 15:04")

	uc.mail.Dispatch(ap.Patient.Email, mailer.KindCancellation, map[string]string{
		"patient_name":   ap.Patient.Name,
		"physician_name": ap.Physician.Name,
		"start_time":     startLabel,
		"cancelled_by":   string(cancelledBy),
	})

	uc.notif.Dispatch(notification.Event{
		UserID:  ap.PatientID,
		Type:    models.NotificationAppointment,
		Title:   "Appointment cancelled",
		Message: "Your consultation on " + startLabel + " was cancelled by the " + string(cancelledBy) + ".",
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"cancelled_by":   string(cancelledBy),
		},
	})

	uc.notif.Dispatch(notification.Event{
		UserID:  ap.PhysicianID,
		Type:    models.NotificationAppointment,
		Title:   "Appointment cancelled",
		Message: "The consultation with " + ap.Patient.Name + " on " + startLabel + " was cancelled by the " + string(cancelledBy) + ".",
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"cancelled_by":   string(cancelledBy),
		},
	})

	uc.audit.Dispatch(auditEvent(actorUserID, "appointment_cancelled", ap.ID, map[string]any{
		"cancelled_by": string(cancelledBy),
	}))

	return ap, nil
}
