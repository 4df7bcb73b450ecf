package models

import "time"

// HistoryRecord is the append-only audit trail of terminal transitions.
// Rows are inserted by the finalize/cancel transaction and never updated.
type HistoryRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `json:"appointment_id"`
	ClientID      uint `json:"client_id"`
	EmployeeID    uint `json:"employee_id"`
	ServiceID     uint `json:"service_id"`

	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`

	ResultingState string `gorm:"size:20;not null" json:"resulting_state"`

	CreatedAt time.Time `json:"created_at"`
}
