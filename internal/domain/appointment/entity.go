package appointment

import (
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Finalize(ap *models.Appointment, now time.Time) error {
	if err := CanFinalize(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusFinalized)
	ap.FinalizedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}
