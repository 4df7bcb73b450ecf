package httperr

import "errors"

// Business error codes produced by the scheduling core.
const (
	CodeInvalidDateOrTime = "invalid_date_or_time"
	CodeInvalidPhone      = "invalid_phone"
	CodeInvalidDuration   = "invalid_duration"

	CodeServiceNotFound     = "service_not_found"
	CodeClientNotFound      = "client_not_found"
	CodeEmployeeNotFound    = "employee_not_found"
	CodeAppointmentNotFound = "appointment_not_found"

	CodeClientDoubleBooked = "client_double_booked"
	CodeEmployeeOverlap    = "employee_overlap"
	CodeTerminalState      = "terminal_state"

	CodeCoordinationFailure = "coordination_failure"
	CodeBusy                = "busy"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness reports whether err carries a business code at all.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
