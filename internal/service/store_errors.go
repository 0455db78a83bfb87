package service

import (
	"errors"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/metrics"
	"course-hub-api/internal/response"
)

// storeError translates a docstore failure into the AppError the handlers
// map to HTTP statuses. notFoundMessage is the client-facing message for a
// missing record; raw store errors only ever reach the logs via Details.
func storeError(m *metrics.Metrics, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return response.NewAppError(response.ErrCodeNotFound, notFoundMessage, "")
	case errors.Is(err, docstore.ErrBusy):
		if m != nil {
			m.IncrementStoreBusy()
		}
		return response.NewAppError(response.ErrCodeStoreBusy, "The store is busy, please retry", err.Error())
	default:
		return response.NewAppError(response.ErrCodeStorage, "Storage operation failed", err.Error())
	}
}
