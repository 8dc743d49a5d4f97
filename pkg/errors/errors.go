package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrInternal
	ErrInvalidWeekday
	ErrIncompleteBooking
	ErrSlotConflict
	ErrUpstreamUnavailable
	ErrTimeout
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status for the error
// middleware.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrInvalidWeekday, ErrIncompleteBooking:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrSlotConflict:
		return http.StatusConflict
	case ErrUpstreamUnavailable:
		return http.StatusBadGateway
	case ErrTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Is allows errors.Is matching on the code regardless of wrapped cause.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

func NotFound(resource string, err error) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s not found", resource), Err: err}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: ErrBadRequest, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

func Unauthorized(err error) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: "unauthorized", Err: err}
}

// InvalidWeekday marks an unrecognized weekday name. Nothing was booked.
func InvalidWeekday(name string) *AppError {
	return &AppError{Code: ErrInvalidWeekday, Message: fmt.Sprintf("unrecognized weekday %q", name)}
}

// IncompleteBooking marks a commit attempted with missing draft fields.
// The draft is left intact; nothing was booked.
func IncompleteBooking(missing string) *AppError {
	return &AppError{Code: ErrIncompleteBooking, Message: fmt.Sprintf("booking is incomplete: missing %s", missing)}
}

// SlotConflict marks a create that lost the race for a slot. Nothing was
// booked; the caller should refresh availability and retry.
func SlotConflict(err error) *AppError {
	return &AppError{Code: ErrSlotConflict, Message: "the selected slot was just taken", Err: err}
}

// UpstreamUnavailable marks a store that could not be reached. Nothing
// was booked; safe to retry.
func UpstreamUnavailable(store string, err error) *AppError {
	return &AppError{Code: ErrUpstreamUnavailable, Message: fmt.Sprintf("%s store unavailable", store), Err: err}
}

// Timeout marks a store call that exceeded its deadline. Nothing was
// booked; safe to retry.
func Timeout(op string, err error) *AppError {
	return &AppError{Code: ErrTimeout, Message: fmt.Sprintf("%s timed out", op), Err: err}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal if err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code
	}
	return ErrInternal
}
