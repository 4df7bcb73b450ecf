package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

var errBadPeriod = errors.New("bad period value")

type period struct {
	start time.Time
	end   time.Time
}

// parseSalePeriod turns the sales filters into a half-open time window.
// Accepted pairs: dia + "2006-01-02", semana + "2006-W23",
// mes + "2006-01", ano + "2006". Empty filter means today.
func parseSalePeriod(filter, value string) (period, error) {
	loc := timezone.Location()

	if filter == "" || value == "" {
		start, _ := dayWindow(timezone.Now())
		return period{start: start, end: start.Add(24 * time.Hour)}, nil
	}

	switch filter {
	case "dia":
		t, err := time.ParseInLocation("2006-01-02", value, loc)
		if err != nil {
			return period{}, errBadPeriod
		}
		return period{start: t, end: t.Add(24 * time.Hour)}, nil

	case "semana":
		parts := strings.SplitN(value, "-W", 2)
		if len(parts) != 2 {
			return period{}, errBadPeriod
		}
		year, err1 := strconv.Atoi(parts[0])
		week, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || week < 1 || week > 53 {
			return period{}, errBadPeriod
		}
		start := isoWeekStart(year, week, loc)
		return period{start: start, end: start.AddDate(0, 0, 7)}, nil

	case "mes":
		t, err := time.ParseInLocation("2006-01", value, loc)
		if err != nil {
			return period{}, errBadPeriod
		}
		return period{start: t, end: t.AddDate(0, 1, 0)}, nil

	case "ano":
		year, err := strconv.Atoi(value)
		if err != nil || year < 2000 || year > 2100 {
			return period{}, errBadPeriod
		}
		start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		return period{start: start, end: start.AddDate(1, 0, 0)}, nil
	}

	return period{}, errBadPeriod
}

func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// isoWeekStart returns the Monday of the given ISO week. January 4th is
// always inside ISO week 1.
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)

	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}
