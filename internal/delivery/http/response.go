package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"elitex/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// SuccessWithWarning sends a success response carrying a warning message,
// used when a write landed in the local cache but the remote sync failed.
func SuccessWithWarning(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message, nil)
}

// ConflictResponse sends a 409 Conflict response
func ConflictResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusConflict, message, nil)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return ErrorResponse(c, http.StatusInternalServerError, message, errMsg)
}

// LedgerErrorResponse maps ledger error taxonomy onto HTTP statuses.
func LedgerErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return BadRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		return BadRequestResponse(c, "Insufficient balance")
	case errors.Is(err, domain.ErrNotPending):
		return ConflictResponse(c, "Transaction has already been decided")
	case errors.Is(err, domain.ErrUserNotFound):
		return NotFoundResponse(c, "User not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NotFoundResponse(c, "Transaction not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return ConflictResponse(c, "Email already registered")
	case errors.Is(err, domain.ErrUnauthenticated):
		return UnauthorizedResponse(c, "Not authenticated")
	default:
		return InternalServerErrorResponse(c, "Operation failed", err)
	}
}
