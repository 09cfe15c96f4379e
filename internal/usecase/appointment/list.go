package appointment

import (
	"context"
	"time"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

const defaultPageSize = 20

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}

// ======================================================
// Per-physician listing
// ======================================================

type ListPhysicianAppointments struct {
	repo         domain.Repository
	storeTimeout time.Duration
}

func NewListPhysicianAppointments(
	repo domain.Repository,
	storeTimeout time.Duration,
) *ListPhysicianAppointments {
	return &ListPhysicianAppointments{repo: repo, storeTimeout: storeTimeout}
}

func (uc *ListPhysicianAppointments) Execute(
	ctx context.Context,
	physicianID uint,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	page, limit = normalizePage(page, limit)
	return uc.repo.ListForPhysician(ctx, physicianID, page, limit)
}

// ======================================================
// Per-patient listing
// ======================================================

type ListPatientAppointments struct {
	repo         domain.Repository
	storeTimeout time.Duration
}

func NewListPatientAppointments(
	repo domain.Repository,
	storeTimeout time.Duration,
) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo, storeTimeout: storeTimeout}
}

func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	page, limit = normalizePage(page, limit)
	return uc.repo.ListForPatient(ctx, patientID, page, limit)
}

// ======================================================
// Admin listing with search
// ======================================================

type ListAllAppointments struct {
	repo         domain.Repository
	storeTimeout time.Duration
}

func NewListAllAppointments(
	repo domain.Repository,
	storeTimeout time.Duration,
) *ListAllAppointments {
	return &ListAllAppointments{repo: repo, storeTimeout: storeTimeout}
}

func (uc *ListAllAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return uc.repo.ListAll(ctx, filter)
}
