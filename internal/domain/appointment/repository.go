package appointment

import (
	"context"
	"time"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

// ListFilter drives the admin listing: free-text search across patient,
// physician and service names plus an optional status filter. Pagination
// applies after filtering.
type ListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type Repository interface {
	// -------- Users / services --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfSlotFree runs the overlap check and the insert
	// as one atomic unit so two concurrent bookings for the same slot
	// cannot both succeed.
	CreateAppointmentIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListWindows(
		ctx context.Context,
		physicianID uint,
	) ([]models.AvailabilityWindow, error)

	ReplaceWindows(
		ctx context.Context,
		physicianID uint,
		windows []models.AvailabilityWindow,
	) error

	SetAvailabilityStatus(
		ctx context.Context,
		physicianID uint,
		isAvailable bool,
	) error

	// -------- Listings --------
	ListForPhysician(
		ctx context.Context,
		physicianID uint,
		page int,
		limit int,
	) ([]models.Appointment, int64, error)

	ListForPatient(
		ctx context.Context,
		patientID uint,
		page int,
		limit int,
	) ([]models.Appointment, int64, error)

	ListAll(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, int64, error)

	ListAppointmentsForDay(
		ctx context.Context,
		physicianID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
