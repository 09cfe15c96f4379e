package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/clinic-scheduler/internal/audit"
	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/httpresp"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

// auditTrail is the fire-and-forget audit sink.
type auditTrail interface {
	Dispatch(ev audit.Event)
}

type AvailabilityHandler struct {
	repo  domain.Repository
	audit auditTrail

	storeTimeout time.Duration
}

func NewAvailabilityHandler(repo domain.Repository, auditTrail auditTrail, storeTimeout time.Duration) *AvailabilityHandler {
	return &AvailabilityHandler{repo: repo, audit: auditTrail, storeTimeout: storeTimeout}
}

type AvailabilityWindowConfig struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

type ReplaceWindowsRequest struct {
	Windows []AvailabilityWindowConfig `json:"windows"`
}

type SetAvailabilityStatusRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func (h *AvailabilityHandler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.storeTimeout)
}

// GetMine returns the caller's own windows.
func (h *AvailabilityHandler) GetMine(c *gin.Context) {
	physicianID := c.MustGet(middleware.ContextUserID).(uint)
	h.respondWindows(c, physicianID)
}

// GetForPhysician is the read patients use when picking a slot.
func (h *AvailabilityHandler) GetForPhysician(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid physician id.")
		return
	}
	h.respondWindows(c, uint(id))
}

func (h *AvailabilityHandler) respondWindows(c *gin.Context, physicianID uint) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	windows, err := h.repo.ListWindows(ctx, physicianID)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_get_windows")
		return
	}

	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	httpresp.OK(c, windows)
}

// Update atomically replaces the caller's full window set. An empty
// set is valid and clears the calendar.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	physicianID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReplaceWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid request data.")
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		window := models.AvailabilityWindow{
			PhysicianID: physicianID,
			DayOfWeek:   w.DayOfWeek,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: w.IsAvailable,
		}
		if !domain.ValidWindow(window) {
			httperr.BadRequest(c, httperr.CodeValidationFailure, "Malformed availability window.")
			return
		}
		windows = append(windows, window)
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.repo.ReplaceWindows(ctx, physicianID, windows); err != nil {
		httperr.FromBusiness(c, err, "failed_to_replace_windows")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &physicianID,
		Action:   "availability_windows_replaced",
		Entity:   "availability_window",
		Metadata: map[string]any{"count": len(windows)},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetStatus flips the physician-level kill switch, independent of the
// weekly calendar.
func (h *AvailabilityHandler) SetStatus(c *gin.Context) {
	physicianID := c.MustGet(middleware.ContextUserID).(uint)

	var req SetAvailabilityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Invalid request data.")
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.repo.SetAvailabilityStatus(ctx, physicianID, *req.IsAvailable); err != nil {
		httperr.FromBusiness(c, err, "failed_to_set_status")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &physicianID,
		Action:   "availability_status_changed",
		Entity:   "physician",
		EntityID: &physicianID,
		Metadata: map[string]any{"is_available": *req.IsAvailable},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
