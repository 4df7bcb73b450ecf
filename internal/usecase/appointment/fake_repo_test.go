package appointment

import (
	"context"
	"time"

	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
)

// fakeRepo keeps everything in maps and gives InTx real all-or-nothing
// semantics by snapshotting state and restoring it when fn fails.
type fakeRepo struct {
	employees    map[uint]models.Employee
	services     map[uint]models.Service
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
	sales        []models.Sale
	history      []models.HistoryRecord

	nextClientID      uint
	nextAppointmentID uint

	failSale         bool
	failHistory      bool
	failClientUpdate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		employees: map[uint]models.Employee{
			1: {ID: 1, Name: "Ana", Active: true},
			2: {ID: 2, Name: "Luis", Active: true},
		},
		services: map[uint]models.Service{
			1: {ID: 1, Name: "Pedicure clinico", DurationMin: 30, Price: 350},
			2: {ID: 2, Name: "Valoracion", DurationMin: 45, Price: 500},
		},
		clients:           map[uint]models.Client{},
		appointments:      map[uint]models.Appointment{},
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

// -------- Catalog --------

func (r *fakeRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeEmployeeNotFound)
	}
	return &emp, nil
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return &svc, nil
}

func (r *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &client, nil
}

func (r *fakeRepo) GetOrCreateClientByPhone(_ context.Context, name, phone string) (*models.Client, error) {
	for _, client := range r.clients {
		if client.Phone == phone {
			return &client, nil
		}
	}

	client := models.Client{ID: r.nextClientID, Name: name, Phone: phone}
	r.nextClientID++
	r.clients[client.ID] = client
	return &client, nil
}

func (r *fakeRepo) UpdateClient(_ context.Context, client *models.Client) error {
	if r.failClientUpdate {
		return context.DeadlineExceeded
	}
	r.clients[client.ID] = *client
	return nil
}

// -------- Appointment --------

func (r *fakeRepo) ListScheduledForEmployeeDay(_ context.Context, employeeID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EmployeeID == employeeID &&
			ap.Status == string(domain.StatusScheduled) &&
			!ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListScheduledForClientDay(_ context.Context, clientID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID &&
			ap.Status == string(domain.StatusScheduled) &&
			!ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = r.nextAppointmentID
	r.nextAppointmentID++
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *fakeRepo) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.GetAppointment(ctx, id)
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.appointments[ap.ID] = *ap
	return nil
}

// -------- Side-effect records --------

func (r *fakeRepo) CreateSale(_ context.Context, sale *models.Sale) error {
	if r.failSale {
		return context.DeadlineExceeded
	}
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeRepo) CreateHistoryRecord(_ context.Context, rec *models.HistoryRecord) error {
	if r.failHistory {
		return context.DeadlineExceeded
	}
	r.history = append(r.history, *rec)
	return nil
}

// -------- Read projections --------

func (r *fakeRepo) ListForEmployeeDay(_ context.Context, employeeID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EmployeeID == employeeID &&
			!ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForClient(_ context.Context, clientID uint, limit int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, ap)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// -------- Transaction scope --------

func (r *fakeRepo) InTx(_ context.Context, fn func(tx domain.Repository) error) error {
	snapClients := cloneMap(r.clients)
	snapAppointments := cloneMap(r.appointments)
	snapSales := append([]models.Sale(nil), r.sales...)
	snapHistory := append([]models.HistoryRecord(nil), r.history...)
	snapNextClient := r.nextClientID
	snapNextAppointment := r.nextAppointmentID

	if err := fn(r); err != nil {
		r.clients = snapClients
		r.appointments = snapAppointments
		r.sales = snapSales
		r.history = snapHistory
		r.nextClientID = snapNextClient
		r.nextAppointmentID = snapNextAppointment
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ domain.Repository = (*fakeRepo)(nil)
