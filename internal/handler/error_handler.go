package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, err error) {
	// Services normally wrap store errors, but translate raw ones too.
	if errors.Is(err, docstore.ErrNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Not found")
		return
	}
	if errors.Is(err, docstore.ErrBusy) {
		response.SendError(c, http.StatusServiceUnavailable, response.ErrCodeStoreBusy, "The store is busy, please retry")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		response.SendError(c, statusCode, appErr.Code, appErr.Message)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	case response.ErrCodeStoreBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
