package response

import "github.com/gin-gonic/gin"

// Error codes shared by services and the HTTP error mapper.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeStoreBusy     = "STORE_BUSY"
	ErrCodeStorage       = "STORAGE_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is the error type services return. Details are for logs only and
// are never sent to the client.
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " (" + e.Details + ")"
	}
	return e.Code + ": " + e.Message
}

// NewAppError creates an AppError with the given code, message and details.
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response shape.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// SendSuccess writes a success envelope with the given status and payload.
func SendSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SendError writes an error envelope. The message must already be safe to
// show to a client.
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}
