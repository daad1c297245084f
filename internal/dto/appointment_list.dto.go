package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentListDTO is one agenda row. Placeholders (blocked, early leave) have no
// client, product or price.
type AppointmentListDTO struct {
	ID        uint      `json:"id"`
	BarberID  uint      `json:"barber_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`

	ProductID   *uint            `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Notes       string           `json:"notes,omitempty"`

	// Settled is true once a transaction is linked to the appointment.
	Settled bool `json:"settled"`
}
