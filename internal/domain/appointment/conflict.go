package appointment

import (
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

// Conflict rules over the scheduled appointments of one day. The inputs
// must come from a locked scan inside the reserving transaction; the
// functions themselves are pure.
//
// The two rules are intentionally asymmetric: a client is only rejected
// for the identical start minute (back-to-back client visits are fine),
// while an employee is rejected for any interval overlap.

// CheckClientSlot enforces the exact-start-time rule for a client.
// excludeID skips the appointment being edited.
func CheckClientSlot(start time.Time, existing []models.Appointment, excludeID uint) error {
	start = start.Truncate(time.Minute)

	for _, ap := range existing {
		if ap.ID == excludeID {
			continue
		}
		if ap.StartTime.Truncate(time.Minute).Equal(start) {
			return httperr.ErrBusiness(httperr.CodeClientDoubleBooked)
		}
	}
	return nil
}

// CheckEmployeeSlot enforces the interval-overlap rule for an employee.
func CheckEmployeeSlot(proposed Interval, existing []models.Appointment, excludeID uint) error {
	for _, ap := range existing {
		if ap.ID == excludeID {
			continue
		}
		if proposed.Overlaps(Interval{Start: ap.StartTime, End: ap.EndTime}) {
			return httperr.ErrBusiness(httperr.CodeEmployeeOverlap)
		}
	}
	return nil
}
