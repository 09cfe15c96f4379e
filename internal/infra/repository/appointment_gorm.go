package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// translateError folds store-level failures into the business taxonomy.
// Postgres exclusion/unique violations on the overlap constraint are a
// slot conflict; deadline hits are transient and safe to retry.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23P01 exclusion_violation, 23505 unique_violation
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return httperr.ErrBusiness(httperr.CodeTransientStoreFailure)
	}

	return err
}

// --------------------------------------------------
// Users / services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var held []uint
		if err := conflictScope(tx, ap).Pluck("id", &held).Error; err != nil {
			return err
		}

		if len(held) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		return tx.Create(ap).Error
	})

	return translateError(err)
}

// conflictScope selects, with a row lock, the physician's non-terminal
// appointments whose half-open interval overlaps the candidate slot.
// Postgres rejects FOR UPDATE on aggregate queries, so the rows are
// locked and counted client-side.
func conflictScope(tx *gorm.DB, ap *models.Appointment) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"physician_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			ap.PhysicianID,
			domain.NonTerminalStatuses(),
			ap.EndTime,
			ap.StartTime,
		)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Physician").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, translateError(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translateError(r.db.WithContext(ctx).Save(ap).Error)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWindows(
	ctx context.Context,
	physicianID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := windowsScope(r.db.WithContext(ctx), physicianID).
		Find(&windows).Error; err != nil {
		return nil, translateError(err)
	}

	return windows, nil
}

// windowsScope orders a physician's weekly windows the way clients
// render them, weekday first then opening time.
func windowsScope(db *gorm.DB, physicianID uint) *gorm.DB {
	return db.
		Where("physician_id = ?", physicianID).
		Order("day_of_week ASC, start_time ASC")
}

// ReplaceWindows swaps the physician's full window set in one
// transaction. A reader never observes a half-replaced set.
func (r *AppointmentGormRepository) ReplaceWindows(
	ctx context.Context,
	physicianID uint,
	windows []models.AvailabilityWindow,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("physician_id = ?", physicianID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		if len(windows) == 0 {
			return nil
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].PhysicianID = physicianID
		}

		return tx.Create(&windows).Error
	})

	return translateError(err)
}

func (r *AppointmentGormRepository) SetAvailabilityStatus(
	ctx context.Context,
	physicianID uint,
	isAvailable bool,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", physicianID, models.RolePhysician).
		Update("is_available", isAvailable)

	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForPhysician(
	ctx context.Context,
	physicianID uint,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {
	return r.listByColumn(ctx, "physician_id", physicianID, page, limit)
}

func (r *AppointmentGormRepository) ListForPatient(
	ctx context.Context,
	patientID uint,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {
	return r.listByColumn(ctx, "patient_id", patientID, page, limit)
}

func (r *AppointmentGormRepository) listByColumn(
	ctx context.Context,
	column string,
	id uint,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(column+" = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Physician").
		Preload("Service").
		Order("start_time DESC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN users AS patients ON patients.id = appointments.patient_id").
		Joins("JOIN users AS physicians ON physicians.id = appointments.physician_id").
		Joins("JOIN services ON services.id = appointments.service_id")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"patients.name ILIKE ? OR physicians.name ILIKE ? OR services.name ILIKE ?",
			like, like, like,
		)
	}

	if filter.Status != "" {
		q = q.Where("appointments.status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Physician").
		Preload("Service").
		Order("appointments.start_time DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Find(&apps).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	physicianID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"physician_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			physicianID, domain.NonTerminalStatuses(), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, translateError(err)
	}

	return apps, nil
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
