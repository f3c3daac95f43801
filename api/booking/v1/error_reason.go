package v1

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

// ErrorReason enumerates the failure reasons of the booking service.
type ErrorReason string

const (
	ErrorReason_INVALID_ROUTE        ErrorReason = "INVALID_ROUTE"
	ErrorReason_SEAT_UNAVAILABLE     ErrorReason = "SEAT_UNAVAILABLE"
	ErrorReason_BOOKING_FAILED       ErrorReason = "BOOKING_FAILED"
	ErrorReason_TICKET_NOT_FOUND     ErrorReason = "TICKET_NOT_FOUND"
	ErrorReason_INCONSISTENT_STATE   ErrorReason = "INCONSISTENT_STATE"
	ErrorReason_PERSISTENCE_DEGRADED ErrorReason = "PERSISTENCE_DEGRADED"
	ErrorReason_TRAIN_NOT_FOUND      ErrorReason = "TRAIN_NOT_FOUND"
	ErrorReason_USER_NOT_FOUND       ErrorReason = "USER_NOT_FOUND"
	ErrorReason_USER_ALREADY_EXISTS  ErrorReason = "USER_ALREADY_EXISTS"
	ErrorReason_INVALID_CREDENTIALS  ErrorReason = "INVALID_CREDENTIALS"
	ErrorReason_INVALID_ARGUMENT     ErrorReason = "INVALID_ARGUMENT"
)

func (x ErrorReason) String() string { return string(x) }

func IsInvalidRoute(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_INVALID_ROUTE.String() && e.Code == 400
}

func ErrorInvalidRoute(format string, args ...interface{}) *errors.Error {
	return errors.New(400, ErrorReason_INVALID_ROUTE.String(), fmt.Sprintf(format, args...))
}

func IsSeatUnavailable(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_SEAT_UNAVAILABLE.String() && e.Code == 409
}

func ErrorSeatUnavailable(format string, args ...interface{}) *errors.Error {
	return errors.New(409, ErrorReason_SEAT_UNAVAILABLE.String(), fmt.Sprintf(format, args...))
}

func IsBookingFailed(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_BOOKING_FAILED.String() && e.Code == 500
}

func ErrorBookingFailed(format string, args ...interface{}) *errors.Error {
	return errors.New(500, ErrorReason_BOOKING_FAILED.String(), fmt.Sprintf(format, args...))
}

func IsTicketNotFound(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_TICKET_NOT_FOUND.String() && e.Code == 404
}

func ErrorTicketNotFound(format string, args ...interface{}) *errors.Error {
	return errors.New(404, ErrorReason_TICKET_NOT_FOUND.String(), fmt.Sprintf(format, args...))
}

func IsInconsistentState(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_INCONSISTENT_STATE.String() && e.Code == 500
}

func ErrorInconsistentState(format string, args ...interface{}) *errors.Error {
	return errors.New(500, ErrorReason_INCONSISTENT_STATE.String(), fmt.Sprintf(format, args...))
}

func IsPersistenceDegraded(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_PERSISTENCE_DEGRADED.String() && e.Code == 503
}

func ErrorPersistenceDegraded(format string, args ...interface{}) *errors.Error {
	return errors.New(503, ErrorReason_PERSISTENCE_DEGRADED.String(), fmt.Sprintf(format, args...))
}

func IsTrainNotFound(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_TRAIN_NOT_FOUND.String() && e.Code == 404
}

func ErrorTrainNotFound(format string, args ...interface{}) *errors.Error {
	return errors.New(404, ErrorReason_TRAIN_NOT_FOUND.String(), fmt.Sprintf(format, args...))
}

func IsUserNotFound(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_USER_NOT_FOUND.String() && e.Code == 404
}

func ErrorUserNotFound(format string, args ...interface{}) *errors.Error {
	return errors.New(404, ErrorReason_USER_NOT_FOUND.String(), fmt.Sprintf(format, args...))
}

func IsUserAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_USER_ALREADY_EXISTS.String() && e.Code == 409
}

func ErrorUserAlreadyExists(format string, args ...interface{}) *errors.Error {
	return errors.New(409, ErrorReason_USER_ALREADY_EXISTS.String(), fmt.Sprintf(format, args...))
}

func IsInvalidCredentials(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_INVALID_CREDENTIALS.String() && e.Code == 401
}

func ErrorInvalidCredentials(format string, args ...interface{}) *errors.Error {
	return errors.New(401, ErrorReason_INVALID_CREDENTIALS.String(), fmt.Sprintf(format, args...))
}

func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	e := errors.FromError(err)
	return e.Reason == ErrorReason_INVALID_ARGUMENT.String() && e.Code == 400
}

func ErrorInvalidArgument(format string, args ...interface{}) *errors.Error {
	return errors.New(400, ErrorReason_INVALID_ARGUMENT.String(), fmt.Sprintf(format, args...))
}
