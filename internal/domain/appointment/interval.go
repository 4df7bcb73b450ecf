package appointment

import (
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
)

// Interval is the half-open slot [Start, End) an appointment occupies,
// at minute granularity within one calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval derives the slot from a start time and the service duration.
func NewInterval(start time.Time, duration time.Duration) (Interval, error) {
	if duration <= 0 {
		return Interval{}, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	start = start.Truncate(time.Minute)
	return Interval{
		Start: start,
		End:   start.Add(duration),
	}, nil
}

// Overlaps uses the strict half-open test: a slot ending exactly when
// another begins does not overlap it.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// DayBounds returns the [midnight, midnight+24h) window containing t,
// in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
