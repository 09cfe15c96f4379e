package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/dto"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/httpresp"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/models"
	ucAppointment "github.com/careconnect/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC          *ucAppointment.BookAppointment
	cancelUC        *ucAppointment.CancelAppointment
	updateStatusUC  *ucAppointment.UpdateAppointmentStatus
	listPhysicianUC *ucAppointment.ListPhysicianAppointments
	listPatientUC   *ucAppointment.ListPatientAppointments
	listAllUC       *ucAppointment.ListAllAppointments
	freeSlotsUC     *ucAppointment.GetFreeSlots

	tz string
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	updateStatusUC *ucAppointment.UpdateAppointmentStatus,
	listPhysicianUC *ucAppointment.ListPhysicianAppointments,
	listPatientUC *ucAppointment.ListPatientAppointments,
	listAllUC *ucAppointment.ListAllAppointments,
	freeSlotsUC *ucAppointment.GetFreeSlots,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:          bookUC,
		cancelUC:        cancelUC,
		updateStatusUC:  updateStatusUC,
		listPhysicianUC: listPhysicianUC,
		listPatientUC:   listPatientUC,
		listAllUC:       listAllUC,
		freeSlotsUC:     freeSlotsUC,
		tz:              tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PhysicianID uint `json:"physician_id" binding:"required"`
	ServiceID   uint `json:"service_id" binding:"required"`

	// Patient defaults to the caller; admins may book on behalf.
	PatientID uint `json:"patient_id"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	ConsultationType string `json:"consultation_type" binding:"required"`
	Symptoms         string `json:"symptoms"`
	Notes            string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := c.MustGet(middleware.ContextUserRole).(string)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid request data.")
		return
	}

	patientID := callerID
	if callerRole == models.RoleAdmin && req.PatientID != 0 {
		patientID = req.PatientID
	}

	start, err := parseDateTime(h.tz, req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid date or start time.")
		return
	}
	end, err := parseDateTime(h.tz, req.Date, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid end time.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID:        patientID,
		PhysicianID:      req.PhysicianID,
		ServiceID:        req.ServiceID,
		StartTime:        start,
		EndTime:          end,
		ConsultationType: req.ConsultationType,
		Symptoms:         req.Symptoms,
		Notes:            req.Notes,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_book")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid appointment id.")
		return
	}

	actor := domain.Actor(callerRole)

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), actor, &callerID)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_cancel")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid request data.")
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		uint(id),
		domain.Status(req.Status),
		&callerID,
	)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LISTINGS
// ======================================================

// ListMine lists the caller's own appointments, on whichever side of
// the booking they sit.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := c.MustGet(middleware.ContextUserRole).(string)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var (
		apps  []models.Appointment
		total int64
		err   error
	)

	if callerRole == models.RolePhysician {
		apps, total, err = h.listPhysicianUC.Execute(c.Request.Context(), callerID, page, limit)
	} else {
		apps, total, err = h.listPatientUC.Execute(c.Request.Context(), callerID, page, limit)
	}
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_list")
		return
	}

	httpresp.Paged(c, dto.FromAppointments(apps), total, page, limit)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	apps, total, err := h.listAllUC.Execute(c.Request.Context(), domain.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_list")
		return
	}

	httpresp.Paged(c, dto.FromAppointments(apps), total, page, limit)
}

// ======================================================
// FREE SLOTS
// ======================================================

func (h *AppointmentHandler) FreeSlots(c *gin.Context) {
	physicianID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid physician id.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Missing or invalid service_id.")
		return
	}

	date, err := parseDate(h.tz, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid date.")
		return
	}

	slots, err := h.freeSlotsUC.Execute(c.Request.Context(), uint(physicianID), uint(serviceID), date)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_list_slots")
		return
	}

	httpresp.List(c, slots)
}
