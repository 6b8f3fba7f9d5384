package services

import (
	"errors"
	"net/http"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
)

// aggregateStatus maps aggregate failure codes onto HTTP statuses. The
// invariant-violation code is a semantic rejection of an otherwise
// well-formed request, hence 422 rather than 400.
func aggregateStatus(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// apiError converts any service-layer failure into an *apierr.Error.
// Aggregate errors keep their code; everything else falls back to the
// supplied code with a 500.
func apiError(fallbackCode string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return apierr.New(aggregateStatus(aggErr.Code), string(aggErr.Code), err)
	}
	return apierr.New(http.StatusInternalServerError, fallbackCode, err)
}
