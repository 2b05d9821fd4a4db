package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		BadRequest(w, appErr.Message, nil)
	case apperror.KindNotFound:
		NotFound(w, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Message)
	case apperror.KindPolicyViolation:
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "POLICY_VIOLATION",
				Message: appErr.Message,
			},
		})
	case apperror.KindForbidden:
		Forbidden(w, appErr.Message)
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
