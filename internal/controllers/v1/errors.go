package v1

import (
	"errors"
	"net/http"

	"github.com/spendwise/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errMonthInvalid = errors.New("the month must be specified as YYYY-MM")

var errCleanupConfirmation = errors.New("the confirmation for deleting all resources is not correct")

// Export errors
var errDateRangeInvalid = errors.New("the 'from' date must not be after the 'to' date")
