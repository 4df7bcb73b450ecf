package appointment

import (
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(),
	)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	return t, nil
}

func parseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(),
	)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	return t, nil
}
