package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/httpresp"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/storage"
)

const maxAvatarBytes = 5 << 20

type PhysicianHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewPhysicianHandler(db *gorm.DB, uploader *storage.Uploader) *PhysicianHandler {
	return &PhysicianHandler{db: db, uploader: uploader}
}

type physicianDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	AvatarURL   string `json:"avatar_url"`
	IsAvailable bool   `json:"is_available"`
}

// List is the public directory patients browse before booking.
func (h *PhysicianHandler) List(c *gin.Context) {
	q := h.db.Model(&models.User{}).Where("role = ?", models.RolePhysician)

	if specialty := c.Query("specialty"); specialty != "" {
		q = q.Where("specialty ILIKE ?", "%"+specialty+"%")
	}

	var physicians []models.User
	if err := q.Order("name ASC").Find(&physicians).Error; err != nil {
		httperr.Internal(c, "failed_to_list_physicians", "Unexpected error.")
		return
	}

	out := make([]physicianDTO, 0, len(physicians))
	for _, p := range physicians {
		out = append(out, physicianDTO{
			ID:          p.ID,
			Name:        p.Name,
			Specialty:   p.Specialty,
			AvatarURL:   p.AvatarURL,
			IsAvailable: p.IsAvailable,
		})
	}

	httpresp.List(c, out)
}

// UploadAvatar stores a new profile photo for the calling physician.
func (h *PhysicianHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationFailure, "Missing avatar file.")
		return
	}
	defer file.Close()

	limited := http.MaxBytesReader(c.Writer, file, maxAvatarBytes)

	url, err := h.uploader.UploadAvatar(c.Request.Context(), userID, limited)
	if err != nil {
		if httperr.BusinessCode(err) == httperr.CodeValidationFailure {
			httperr.BadRequest(c, httperr.CodeValidationFailure, "Unsupported image.")
			return
		}
		httperr.Internal(c, "failed_to_upload_avatar", "Unexpected error.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_avatar", "Unexpected error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
