package appointment

import (
	"context"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/audit"
	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a scheduled appointment: the history record and the
// state flip commit together. No sale is created.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		now := timezone.Now()
		if err := domain.Cancel(ap, now); err != nil {
			return err
		}

		day, _ := domain.DayBounds(ap.StartTime)

		rec := &models.HistoryRecord{
			AppointmentID:  ap.ID,
			ClientID:       ap.ClientID,
			EmployeeID:     ap.EmployeeID,
			ServiceID:      ap.ServiceID,
			Date:           day,
			StartTime:      ap.StartTime,
			ResultingState: string(domain.StatusCancelled),
		}
		if err := tx.CreateHistoryRecord(ctx, rec); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		cancelled = ap
		return nil
	})

	if err != nil {
		return nil, coordinationError("cancel", appointmentID, err)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
