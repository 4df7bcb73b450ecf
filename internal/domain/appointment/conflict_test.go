package appointment

import (
	"testing"
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

func scheduledAt(id uint, hour, min, durationMin int) models.Appointment {
	start := at(hour, min)
	return models.Appointment{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(time.Duration(durationMin) * time.Minute),
		Status:    string(StatusScheduled),
	}
}

func TestCheckEmployeeSlot(t *testing.T) {
	existing := []models.Appointment{scheduledAt(1, 10, 0, 30)}

	// 10:15 overlaps 10:00-10:30.
	slot, _ := NewInterval(at(10, 15), 30*time.Minute)
	if err := CheckEmployeeSlot(slot, existing, 0); !httperr.IsBusiness(err, httperr.CodeEmployeeOverlap) {
		t.Fatalf("expected employee_overlap, got %v", err)
	}

	// 10:30 touches but does not overlap.
	slot, _ = NewInterval(at(10, 30), 30*time.Minute)
	if err := CheckEmployeeSlot(slot, existing, 0); err != nil {
		t.Fatalf("touching slot rejected: %v", err)
	}
}

func TestCheckEmployeeSlot_ExcludesSelf(t *testing.T) {
	existing := []models.Appointment{scheduledAt(7, 10, 0, 30)}

	// Editing appointment 7 onto its own slot is not a conflict.
	slot, _ := NewInterval(at(10, 15), 30*time.Minute)
	if err := CheckEmployeeSlot(slot, existing, 7); err != nil {
		t.Fatalf("self-overlap rejected: %v", err)
	}
}

func TestCheckClientSlot(t *testing.T) {
	existing := []models.Appointment{scheduledAt(3, 9, 0, 30)}

	if err := CheckClientSlot(at(9, 0), existing, 0); !httperr.IsBusiness(err, httperr.CodeClientDoubleBooked) {
		t.Fatalf("expected client_double_booked, got %v", err)
	}

	// The client rule is exact-time only: an overlapping but distinct
	// start is allowed.
	if err := CheckClientSlot(at(9, 15), existing, 0); err != nil {
		t.Fatalf("adjacent client slot rejected: %v", err)
	}

	if err := CheckClientSlot(at(9, 0), existing, 3); err != nil {
		t.Fatalf("self exact-time rejected: %v", err)
	}
}

func TestCheckClientSlot_SecondPrecisionNoise(t *testing.T) {
	existing := []models.Appointment{scheduledAt(4, 9, 0, 30)}

	if err := CheckClientSlot(at(9, 0).Add(20*time.Second), existing, 0); !httperr.IsBusiness(err, httperr.CodeClientDoubleBooked) {
		t.Fatalf("expected minute-granular match, got %v", err)
	}
}
