package appointment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/audit"
	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

type FinalizeAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinalizeAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinalizeAppointment {
	return &FinalizeAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute finalizes a scheduled appointment: one sale (priced at this
// moment), one history record, and the state flip commit together or
// not at all.
func (uc *FinalizeAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	paymentMethod string,
) (*models.Appointment, error) {

	var finalized *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		now := timezone.Now()
		if err := domain.Finalize(ap, now); err != nil {
			return err
		}

		service, err := tx.GetService(ctx, ap.ServiceID)
		if err != nil {
			return err
		}

		day, _ := domain.DayBounds(ap.StartTime)

		sale := &models.Sale{
			Folio:         uuid.NewString(),
			ClientID:      ap.ClientID,
			EmployeeID:    ap.EmployeeID,
			ServiceID:     ap.ServiceID,
			Date:          day,
			Amount:        service.Price,
			PaymentMethod: paymentMethod,
		}
		if err := tx.CreateSale(ctx, sale); err != nil {
			return err
		}

		rec := &models.HistoryRecord{
			AppointmentID:  ap.ID,
			ClientID:       ap.ClientID,
			EmployeeID:     ap.EmployeeID,
			ServiceID:      ap.ServiceID,
			Date:           day,
			StartTime:      ap.StartTime,
			ResultingState: string(domain.StatusFinalized),
		}
		if err := tx.CreateHistoryRecord(ctx, rec); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		finalized = ap
		return nil
	})

	if err != nil {
		return nil, coordinationError("finalize", appointmentID, err)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_finalized",
		Entity:   "appointment",
		EntityID: &finalized.ID,
	})

	return finalized, nil
}

// coordinationError lets business rejections (terminal state, not found,
// busy) pass through and folds storage failures of the atomic group into
// a single coordination_failure code.
func coordinationError(op string, id uint, err error) error {
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}

	log.Printf("%s appointment %d: side-effect group aborted: %v", op, id, err)
	return httperr.ErrBusiness(httperr.CodeCoordinationFailure)
}
