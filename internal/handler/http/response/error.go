package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Overtime domain errors
	case errors.Is(err, overtime.ErrInvalidTimeFormat),
		errors.Is(err, overtime.ErrInvalidDateFormat),
		errors.Is(err, overtime.ErrIncompleteSecondInterval),
		errors.Is(err, overtime.ErrOverlappingIntervals),
		errors.Is(err, overtime.ErrInvalidPeriod),
		errors.Is(err, overtime.ErrUnknownBranchKey):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, overtime.ErrInvalidEntryID),
		errors.Is(err, overtime.ErrEntryNotFound):
		NotFound(w, "Overtime entry not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch with this name already exists")
	case errors.Is(err, branch.ErrBranchInUse):
		Conflict(w, "Branch still has employees assigned")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
