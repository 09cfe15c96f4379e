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

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID   uint
	PhysicianID uint
	ServiceID   uint

	StartTime time.Time
	EndTime   time.Time

	ConsultationType string
	Symptoms         string
	Notes            string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	notif notifier
	mail  mailQueue
	audit auditTrail

	storeTimeout   time.Duration
	enforceWindows bool
}

func NewBookAppointment(
	repo domain.Repository,
	notif notifier,
	mail mailQueue,
	auditTrail auditTrail,
	storeTimeout time.Duration,
	enforceWindows bool,
) *BookAppointment {
	return &BookAppointment{
		repo:           repo,
		notif:          notif,
		mail:           mail,
		audit:          auditTrail,
		storeTimeout:   storeTimeout,
		enforceWindows: enforceWindows,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	// --------------------------------------------------
	// Input shape
	// --------------------------------------------------
	if !in.StartTime.Before(in.EndTime) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidationFailure, "start_time must precede end_time")
	}
	if !domain.IsValidConsultationType(in.ConsultationType) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidationFailure, "unknown consultation type")
	}

	// --------------------------------------------------
	// Patient
	// --------------------------------------------------
	patient, err := uc.repo.GetUserByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Physician + coarse availability switch
	// --------------------------------------------------
	physician, err := uc.repo.GetUserByID(ctx, in.PhysicianID)
	if err != nil || physician.Role != models.RolePhysician {
		return nil, httperr.ErrBusiness(httperr.CodePhysicianUnavailable)
	}
	if !physician.IsAvailable {
		return nil, httperr.ErrBusiness(httperr.CodePhysicianUnavailable)
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Weekly availability windows
	// --------------------------------------------------
	if uc.enforceWindows {
		windows, err := uc.repo.ListWindows(ctx, in.PhysicianID)
		if err != nil {
			return nil, err
		}
		if !domain.WithinWindows(windows, in.StartTime, in.EndTime) {
			if !domain.HasWindowsForDay(windows, in.StartTime) {
				return nil, httperr.ErrBusinessf(httperr.CodeOutsideWindow, "no availability declared for that day")
			}
			return nil, httperr.ErrBusiness(httperr.CodeOutsideWindow)
		}
	}

	// --------------------------------------------------
	// Conflict check + insert, one atomic unit
	// --------------------------------------------------
	// Midnight in the slot's own location, so the calendar day never
	// shifts for non-UTC clinics.
	y, m, d := in.StartTime.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, in.StartTime.Location())

	ap := &models.Appointment{
		PatientID:        in.PatientID,
		PhysicianID:      in.PhysicianID,
		ServiceID:        in.ServiceID,
		AppointmentDate:  day,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Status:           string(domain.InitialStatus()),
		ConsultationType: in.ConsultationType,
		Symptoms:         in.Symptoms,
		Notes:            in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfSlotFree(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Side effects: best effort, never roll back the booking
	// --------------------------------------------------
	startLabel := in.StartTime.Format("Mon, 02 Jan 2006 15:04")

	uc.mail.Dispatch(patient.Email, mailer.KindBookingConfirmation, map[string]string{
		"patient_name":      patient.Name,
		"physician_name":    physician.Name,
		"consultation_type": in.ConsultationType,
		"start_time":        startLabel,
	})

	uc.notif.Dispatch(notification.Event{
		UserID:  patient.ID,
		Type:    models.NotificationAppointment,
		Title:   "Appointment requested",
		Message: "Your consultation with Dr. " + physician.Name + " on " + startLabel + " is pending confirmation.",
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"status":         ap.Status,
		},
	})

	uc.notif.Dispatch(notification.Event{
		UserID:  physician.ID,
		Type:    models.NotificationAppointment,
		Title:   "New appointment request",
		Message: patient.Name + " requested a " + service.Name + " on " + startLabel + ".",
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"status":         ap.Status,
		},
	})

	uc.audit.Dispatch(auditEvent(&in.PatientID, "appointment_booked", ap.ID, map[string]any{
		"physician_id": in.PhysicianID,
		"service_id":   in.ServiceID,
	}))

	return ap, nil
}
