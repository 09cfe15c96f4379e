package httperr

import "errors"

// Stable business error codes returned by the scheduling core.
const (
	CodeNotFound              = "not_found"
	CodeInvalidTransition     = "invalid_transition"
	CodeSlotConflict          = "slot_conflict"
	CodePhysicianUnavailable  = "physician_unavailable"
	CodeOutsideWindow         = "outside_availability_window"
	CodeValidationFailure     = "validation_failure"
	CodeTransientStoreFailure = "transient_store_failure"
)

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" for
// anything else.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
