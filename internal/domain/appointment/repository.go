package appointment

import (
	"context"
	"time"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// GetOrCreateClientByPhone is idempotent: a second call with the
	// same phone returns the existing row.
	GetOrCreateClientByPhone(
		ctx context.Context,
		name string,
		phone string,
	) (*models.Client, error)

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Appointment (reserve / conflict scan) --------
	//
	// The two ListScheduled* scans take row locks and must run inside
	// InTx; they return only non-terminal appointments.

	ListScheduledForEmployeeDay(
		ctx context.Context,
		employeeID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListScheduledForClientDay(
		ctx context.Context,
		clientID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate locks the row; InTx only.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Side-effect records --------
	CreateSale(
		ctx context.Context,
		sale *models.Sale,
	) error

	CreateHistoryRecord(
		ctx context.Context,
		rec *models.HistoryRecord,
	) error

	// -------- Read projections --------
	ListForEmployeeDay(
		ctx context.Context,
		employeeID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListForClient(
		ctx context.Context,
		clientID uint,
		limit int,
	) ([]models.Appointment, error)

	// -------- Transaction scope --------
	//
	// InTx runs fn against a transaction-bound repository. Lock waits
	// are bounded; a scope contended past the bound surfaces as the
	// busy business error. Everything fn writes commits together or
	// not at all.
	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
