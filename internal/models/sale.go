package models

import "time"

// Sale is written once when an appointment is finalized. Amount is the
// service price at that moment, never re-derived later.
type Sale struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Folio string `gorm:"size:36;uniqueIndex" json:"folio"`

	ClientID   uint `json:"client_id"`
	EmployeeID uint `json:"employee_id"`
	ServiceID  uint `json:"service_id"`

	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `gorm:"size:30" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
}
