package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/HealthyFeetMX/clinic-scheduler/internal/domain/appointment"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/httperr"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/models"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/timezone"
)

const testDay = "2026-03-02"

func mustStart(t *testing.T, hm string) time.Time {
	t.Helper()
	start, err := time.ParseInLocation("2006-01-02 15:04", testDay+" "+hm, timezone.Location())
	if err != nil {
		t.Fatalf("bad test time %q: %v", hm, err)
	}
	return start
}

func book(t *testing.T, repo *fakeRepo, employeeID uint, phone, hm string) *models.Appointment {
	t.Helper()
	ap, err := NewCreateAppointment(repo, nil).Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Cliente " + phone,
		ClientPhone: phone,
		EmployeeID:  employeeID,
		ServiceID:   1,
		Date:        testDay,
		Time:        hm,
	})
	if err != nil {
		t.Fatalf("booking %s for employee %d failed: %v", hm, employeeID, err)
	}
	return ap
}

// ======================================================
// CREATE
// ======================================================

func TestCreate_EmployeeOverlap(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, nil)

	book(t, repo, 1, "5550000001", "10:00")

	// 10:15 falls inside the 10:00-10:30 slot held by employee 1.
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Otra",
		ClientPhone: "5550000002",
		EmployeeID:  1,
		ServiceID:   1,
		Date:        testDay,
		Time:        "10:15",
	})
	if !httperr.IsBusiness(err, httperr.CodeEmployeeOverlap) {
		t.Fatalf("expected employee_overlap, got %v", err)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("rejected booking left %d appointments", len(repo.appointments))
	}

	// 10:30 starts where the held slot ends.
	book(t, repo, 1, "5550000002", "10:30")

	// The slot is free on another employee's calendar.
	book(t, repo, 2, "5550000003", "10:15")

	if len(repo.appointments) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(repo.appointments))
	}
}

func TestCreate_ClientDoubleBooked(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, nil)

	first := book(t, repo, 1, "5551234567", "09:00")

	// Same client, same day, same start time, different employee.
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Carmen",
		ClientPhone: "5551234567",
		EmployeeID:  2,
		ServiceID:   1,
		Date:        testDay,
		Time:        "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeClientDoubleBooked) {
		t.Fatalf("expected client_double_booked, got %v", err)
	}

	// A different start time is fine even though the intervals overlap;
	// the client rule is exact-time only.
	second := book(t, repo, 2, "5551234567", "09:15")

	if second.ClientID != first.ClientID {
		t.Fatalf("phone lookup created a second client: %d vs %d", second.ClientID, first.ClientID)
	}
	if len(repo.clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(repo.clients))
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, nil)

	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{
			"bad date",
			CreateAppointmentInput{ClientPhone: "5550000001", ClientName: "X", EmployeeID: 1, ServiceID: 1, Date: "02/03/2026", Time: "10:00"},
			httperr.CodeInvalidDateOrTime,
		},
		{
			"bad time",
			CreateAppointmentInput{ClientPhone: "5550000001", ClientName: "X", EmployeeID: 1, ServiceID: 1, Date: testDay, Time: "25:00"},
			httperr.CodeInvalidDateOrTime,
		},
		{
			"short phone",
			CreateAppointmentInput{ClientPhone: "55512345", ClientName: "X", EmployeeID: 1, ServiceID: 1, Date: testDay, Time: "10:00"},
			httperr.CodeInvalidPhone,
		},
		{
			"unknown employee",
			CreateAppointmentInput{ClientPhone: "5550000001", ClientName: "X", EmployeeID: 99, ServiceID: 1, Date: testDay, Time: "10:00"},
			httperr.CodeEmployeeNotFound,
		},
		{
			"unknown service",
			CreateAppointmentInput{ClientPhone: "5550000001", ClientName: "X", EmployeeID: 1, ServiceID: 99, Date: testDay, Time: "10:00"},
			httperr.CodeServiceNotFound,
		},
		{
			"unknown client id",
			CreateAppointmentInput{ClientID: 42, EmployeeID: 1, ServiceID: 1, Date: testDay, Time: "10:00"},
			httperr.CodeClientNotFound,
		},
	}

	for _, tc := range cases {
		if _, err := uc.Execute(context.Background(), tc.in); !httperr.IsBusiness(err, tc.code) {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}

	if len(repo.appointments) != 0 {
		t.Fatalf("rejected inputs created %d appointments", len(repo.appointments))
	}
}

// ======================================================
// FINALIZE
// ======================================================

func TestFinalize_SaleAndHistoryCommitTogether(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "11:00")

	// Price changes after booking; the sale carries the price at the
	// moment of finalization.
	svc := repo.services[1]
	svc.Price = 400
	repo.services[1] = svc

	got, err := NewFinalizeAppointment(repo, nil).Execute(context.Background(), ap.ID, "efectivo")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if got.Status != string(domain.StatusFinalized) || got.FinalizedAt == nil {
		t.Fatalf("appointment not finalized: %+v", got)
	}

	if len(repo.sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(repo.sales))
	}
	sale := repo.sales[0]
	if sale.Amount != 400 {
		t.Errorf("sale amount = %v, want price at finalization 400", sale.Amount)
	}
	if sale.PaymentMethod != "efectivo" {
		t.Errorf("sale payment method = %q", sale.PaymentMethod)
	}
	if sale.Folio == "" {
		t.Error("sale folio is empty")
	}

	if len(repo.history) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(repo.history))
	}
	rec := repo.history[0]
	if rec.AppointmentID != ap.ID || rec.ResultingState != string(domain.StatusFinalized) {
		t.Fatalf("unexpected history record: %+v", rec)
	}
	if !rec.StartTime.Equal(mustStart(t, "11:00")) {
		t.Errorf("history start = %s", rec.StartTime)
	}
}

func TestFinalize_TerminalIsRejectedOnce(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "11:00")

	uc := NewFinalizeAppointment(repo, nil)
	if _, err := uc.Execute(context.Background(), ap.ID, "efectivo"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	// A second finalize must not add another sale or history record.
	if _, err := uc.Execute(context.Background(), ap.ID, "tarjeta"); !httperr.IsBusiness(err, httperr.CodeTerminalState) {
		t.Fatalf("expected terminal_state, got %v", err)
	}
	if len(repo.sales) != 1 || len(repo.history) != 1 {
		t.Fatalf("re-finalize duplicated records: %d sales, %d history", len(repo.sales), len(repo.history))
	}
}

func TestFinalize_RollsBackAsAGroup(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "11:00")

	// The sale insert succeeds, the history insert fails: nothing may
	// survive, including the already-written sale and the state flip.
	repo.failHistory = true

	_, err := NewFinalizeAppointment(repo, nil).Execute(context.Background(), ap.ID, "efectivo")
	if !httperr.IsBusiness(err, httperr.CodeCoordinationFailure) {
		t.Fatalf("expected coordination_failure, got %v", err)
	}

	if len(repo.sales) != 0 || len(repo.history) != 0 {
		t.Fatalf("partial commit: %d sales, %d history", len(repo.sales), len(repo.history))
	}
	if got := repo.appointments[ap.ID]; got.Status != string(domain.StatusScheduled) {
		t.Fatalf("appointment left in %q after aborted finalize", got.Status)
	}

	// Retryable once the fault clears.
	repo.failHistory = false
	if _, err := NewFinalizeAppointment(repo, nil).Execute(context.Background(), ap.ID, "efectivo"); err != nil {
		t.Fatalf("retry after fault failed: %v", err)
	}
	if len(repo.sales) != 1 || len(repo.history) != 1 {
		t.Fatalf("retry wrote %d sales, %d history", len(repo.sales), len(repo.history))
	}
}

// ======================================================
// CANCEL
// ======================================================

func TestCancel_HistoryOnlyNoSale(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "12:00")

	got, err := NewCancelAppointment(repo, nil).Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
		t.Fatalf("appointment not cancelled: %+v", got)
	}

	if len(repo.sales) != 0 {
		t.Fatalf("cancel created %d sales", len(repo.sales))
	}
	if len(repo.history) != 1 || repo.history[0].ResultingState != string(domain.StatusCancelled) {
		t.Fatalf("unexpected history: %+v", repo.history)
	}

	// A cancelled slot no longer blocks the employee's calendar.
	book(t, repo, 1, "5550000002", "12:00")
}

func TestCancel_TerminalRejectsFurtherTransitions(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "12:00")

	if _, err := NewCancelAppointment(repo, nil).Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := NewCancelAppointment(repo, nil).Execute(context.Background(), ap.ID); !httperr.IsBusiness(err, httperr.CodeTerminalState) {
		t.Fatalf("re-cancel: expected terminal_state, got %v", err)
	}
	if _, err := NewFinalizeAppointment(repo, nil).Execute(context.Background(), ap.ID, "efectivo"); !httperr.IsBusiness(err, httperr.CodeTerminalState) {
		t.Fatalf("finalize after cancel: expected terminal_state, got %v", err)
	}
	if len(repo.history) != 1 || len(repo.sales) != 0 {
		t.Fatalf("terminal rejections wrote records: %d history, %d sales", len(repo.history), len(repo.sales))
	}
}

// ======================================================
// EDIT
// ======================================================

func TestEdit_MovesWithinOwnSlot(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	// 10:15 overlaps only the appointment's own previous slot.
	got, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "10:15",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !got.StartTime.Equal(mustStart(t, "10:15")) {
		t.Fatalf("start = %s, want 10:15", got.StartTime)
	}
	if !got.EndTime.Equal(mustStart(t, "10:45")) {
		t.Fatalf("end = %s, want 10:45", got.EndTime)
	}
}

func TestEdit_ConflictLeavesRecordUnchanged(t *testing.T) {
	repo := newFakeRepo()
	book(t, repo, 1, "5550000001", "10:00")
	ap := book(t, repo, 1, "5550000002", "11:00")

	_, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "10:15",
	})
	if !httperr.IsBusiness(err, httperr.CodeEmployeeOverlap) {
		t.Fatalf("expected employee_overlap, got %v", err)
	}

	if got := repo.appointments[ap.ID]; !got.StartTime.Equal(mustStart(t, "11:00")) {
		t.Fatalf("rejected edit moved the appointment to %s", got.StartTime)
	}
}

func TestEdit_ServiceChangeRecomputesEnd(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	got, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    2,
		ServiceID:     2, // 45 minutes
		Date:          testDay,
		Time:          "10:00",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got.EmployeeID != 2 || got.ServiceID != 2 {
		t.Fatalf("reassignment not applied: %+v", got)
	}
	if !got.EndTime.Equal(mustStart(t, "10:45")) {
		t.Fatalf("end = %s, want 10:45 for 45-minute service", got.EndTime)
	}
}

func TestEdit_UpdatesClientIdentityInPlace(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	got, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "10:00",
		ClientName:    "Carmen Reyes",
		ClientPhone:   "5559999999",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	// The appointment stays with the same client row; the row itself
	// is what changes.
	if got.ClientID != ap.ClientID {
		t.Fatalf("edit moved appointment to client %d", got.ClientID)
	}
	client := repo.clients[ap.ClientID]
	if client.Name != "Carmen Reyes" || client.Phone != "5559999999" {
		t.Fatalf("client row not updated: %+v", client)
	}
	if len(repo.clients) != 1 {
		t.Fatalf("identity update created a new client row")
	}
}

func TestEdit_InvalidPhoneRejectsWholeEdit(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	_, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "16:00",
		ClientPhone:   "123",
	})
	if !httperr.IsBusiness(err, httperr.CodeInvalidPhone) {
		t.Fatalf("expected invalid_phone, got %v", err)
	}

	// The rejection must leave nothing behind: neither the slot move
	// nor the phone change.
	if got := repo.appointments[ap.ID]; !got.StartTime.Equal(mustStart(t, "10:00")) {
		t.Fatalf("rejected edit moved the appointment to %s", got.StartTime)
	}
	if client := repo.clients[ap.ClientID]; client.Phone != "5550000001" {
		t.Fatalf("rejected edit changed the client phone to %q", client.Phone)
	}
}

func TestEdit_ClientUpdateFailureRollsBackMove(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	repo.failClientUpdate = true

	_, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "16:00",
		ClientName:    "Nuevo Nombre",
	})
	if err == nil {
		t.Fatal("expected error from failing client update")
	}

	if got := repo.appointments[ap.ID]; !got.StartTime.Equal(mustStart(t, "10:00")) {
		t.Fatalf("failed edit left the appointment at %s", got.StartTime)
	}
	if client := repo.clients[ap.ClientID]; client.Name != "Cliente 5550000001" {
		t.Fatalf("failed edit left the client renamed to %q", client.Name)
	}
}

func TestEdit_TerminalAppointmentIsImmutable(t *testing.T) {
	repo := newFakeRepo()
	ap := book(t, repo, 1, "5550000001", "10:00")

	if _, err := NewFinalizeAppointment(repo, nil).Execute(context.Background(), ap.ID, "efectivo"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	_, err := NewEditAppointment(repo, nil).Execute(context.Background(), EditAppointmentInput{
		AppointmentID: ap.ID,
		EmployeeID:    1,
		ServiceID:     1,
		Date:          testDay,
		Time:          "16:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeTerminalState) {
		t.Fatalf("expected terminal_state, got %v", err)
	}
	if got := repo.appointments[ap.ID]; !got.StartTime.Equal(mustStart(t, "10:00")) {
		t.Fatalf("rejected edit moved a finalized appointment to %s", got.StartTime)
	}
}
