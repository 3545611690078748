package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Date text errors carry the offending input
	var parseErr *datetext.ParseError
	if errors.As(err, &parseErr) {
		BadRequest(w, "Unable to parse date expression", map[string]string{
			"text":   parseErr.Text,
			"reason": parseErr.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, calendar.ErrSessionNotFound):
		NotFound(w, "Calendar session not found")
	case errors.Is(err, calendar.ErrInvalidYear):
		BadRequest(w, "Invalid year", nil)
	case errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, "Invalid month", nil)
	case errors.Is(err, calendar.ErrUnknownAction):
		BadRequest(w, "Unknown action", nil)
	case errors.Is(err, calendar.ErrUnknownView):
		BadRequest(w, "Unknown view", nil)
	case errors.Is(err, calendar.ErrInvalidEventRange):
		BadRequest(w, "Invalid event date range", nil)
	case errors.Is(err, calendar.ErrDateParse):
		BadRequest(w, "Unable to parse date expression", nil)
	case errors.Is(err, calendar.ErrDataFetch):
		BadGateway(w, "Leave data is unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
