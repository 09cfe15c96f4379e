package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromBusiness maps a core error onto the HTTP surface. Internal store
// diagnostics never leak to the client.
func FromBusiness(c *gin.Context, err error, fallback string) {
	switch BusinessCode(err) {
	case CodeNotFound:
		NotFound(c, CodeNotFound, "Resource not found.")
	case CodeInvalidTransition:
		Conflict(c, CodeInvalidTransition, "Appointment status does not allow this change.")
	case CodeSlotConflict:
		Conflict(c, CodeSlotConflict, "The requested time slot is already taken.")
	case CodePhysicianUnavailable:
		Conflict(c, CodePhysicianUnavailable, "Physician is not accepting appointments.")
	case CodeOutsideWindow:
		BadRequest(c, CodeOutsideWindow, "Requested time is outside the physician's availability.")
	case CodeValidationFailure:
		BadRequest(c, CodeValidationFailure, "Invalid request data.")
	case CodeTransientStoreFailure:
		Write(c, 503, CodeTransientStoreFailure, "Temporary storage failure, please retry.")
	default:
		Internal(c, fallback, "Unexpected error.")
	}
}
