package appointment

import "github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinalized Status = "finalized"
	StatusCancelled Status = "cancelled"
)

// Terminal states admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Transition guards
// ===============================

// Every mutating operation consults these instead of comparing the raw
// column value at its call site.

func CanEdit(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeTerminalState)
	}
	return nil
}

func CanFinalize(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeTerminalState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeTerminalState)
	}
	return nil
}
