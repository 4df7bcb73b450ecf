package appointment

import (
	"context"
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/audit"
	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// Either an existing client id, or name+phone for implicit creation.
	ClientID    uint
	ClientName  string
	ClientPhone string

	EmployeeID uint
	ServiceID  uint

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetEmployee(ctx, in.EmployeeID); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	slot, err := domain.NewInterval(start, time.Duration(service.DurationMin)*time.Minute)
	if err != nil {
		return nil, err
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(slot.Start)

	var created *models.Appointment

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		clientDay, err := tx.ListScheduledForClientDay(ctx, client.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := domain.CheckClientSlot(slot.Start, clientDay, 0); err != nil {
			return err
		}

		employeeDay, err := tx.ListScheduledForEmployeeDay(ctx, in.EmployeeID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := domain.CheckEmployeeSlot(slot, employeeDay, 0); err != nil {
			return err
		}

		ap := &models.Appointment{
			ClientID:   client.ID,
			EmployeeID: in.EmployeeID,
			ServiceID:  in.ServiceID,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     string(domain.InitialStatus()),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeClientDoubleBooked) ||
			httperr.IsBusiness(err, httperr.CodeEmployeeOverlap) {

			uc.audit.Dispatch(audit.Event{
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"employee_id": in.EmployeeID,
					"client_id":   client.ID,
					"start":       slot.Start,
					"end":         slot.End,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		return uc.repo.GetClient(ctx, in.ClientID)
	}

	if !validators.IsValidPhone(in.ClientPhone) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPhone)
	}

	return uc.repo.GetOrCreateClientByPhone(ctx, in.ClientName, in.ClientPhone)
}
