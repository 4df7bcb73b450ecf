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

type EditAppointmentInput struct {
	AppointmentID uint

	EmployeeID uint
	ServiceID  uint
	Date       string
	Time       string

	// Optional update of the client record itself; an edit never moves
	// the appointment to another client.
	ClientName  string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	start, err := parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	if in.ClientPhone != "" && !validators.IsValidPhone(in.ClientPhone) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPhone)
	}

	current, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(domain.Status(current.Status)); err != nil {
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

	dayStart, dayEnd := domain.DayBounds(slot.Start)

	var updated *models.Appointment

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// Re-read under lock: the state may have turned terminal
		// between the first read and here.
		ap, err := tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
			return err
		}

		clientDay, err := tx.ListScheduledForClientDay(ctx, ap.ClientID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := domain.CheckClientSlot(slot.Start, clientDay, ap.ID); err != nil {
			return err
		}

		employeeDay, err := tx.ListScheduledForEmployeeDay(ctx, in.EmployeeID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := domain.CheckEmployeeSlot(slot, employeeDay, ap.ID); err != nil {
			return err
		}

		ap.EmployeeID = in.EmployeeID
		ap.ServiceID = in.ServiceID
		ap.StartTime = slot.Start
		ap.EndTime = slot.End

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		// Same transaction as the slot move: a failure here must take
		// the move down with it.
		if err := applyClientIdentity(ctx, tx, ap.ClientID, in); err != nil {
			return err
		}

		updated = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}

// applyClientIdentity updates the client row itself; an edit never moves
// the appointment to another client. The phone was validated before the
// transaction opened.
func applyClientIdentity(
	ctx context.Context,
	tx domain.Repository,
	clientID uint,
	in EditAppointmentInput,
) error {

	if in.ClientName == "" && in.ClientPhone == "" {
		return nil
	}

	client, err := tx.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	if in.ClientName != "" {
		client.Name = in.ClientName
	}
	if in.ClientPhone != "" {
		client.Phone = in.ClientPhone
	}

	return tx.UpdateClient(ctx, client)
}
