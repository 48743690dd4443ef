package core

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrBadRequest         ErrorCode = "MDR_BAD_REQUEST"
	ErrNotFound           ErrorCode = "MDR_NOT_FOUND"
	ErrLakehouseNotFound  ErrorCode = "MDR_LAKEHOUSE_NOT_FOUND"
	ErrNoMatchingEndpoint ErrorCode = "MDR_NO_MATCHING_ENDPOINT"
	ErrTriggerFailed      ErrorCode = "MDR_TRIGGER_FAILED"
	ErrPollFailed         ErrorCode = "MDR_POLL_FAILED"
	ErrRefreshTimeout     ErrorCode = "MDR_REFRESH_TIMEOUT"
	ErrUpstream           ErrorCode = "MDR_UPSTREAM_ERROR"
	ErrInternal           ErrorCode = "MDR_INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest:
		return 400
	case ErrNotFound, ErrLakehouseNotFound, ErrNoMatchingEndpoint:
		return 404
	case ErrTriggerFailed, ErrPollFailed, ErrUpstream:
		return 502
	case ErrRefreshTimeout:
		return 504
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// CodeOf extracts the error code, defaulting to MDR_INTERNAL for
// errors that did not originate here.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// AsAppError coerces any error into an AppError for API responses.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(ErrInternal, err.Error())
}
