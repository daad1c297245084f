package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BarbershopID  uint            `gorm:"index" json:"barbershop_id"`
	ClientID      *uint           `json:"client_id"`
	AppointmentID uint            `gorm:"uniqueIndex" json:"appointment_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:30;not null" json:"payment_method"`
	Status        string          `gorm:"size:20;default:'paid'" json:"status"`
	Reference     uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"reference"`

	CreatedAt time.Time `json:"created_at"`
}

type Commission struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	BarbershopID         uint            `gorm:"index:idx_commissions_shop_status" json:"barbershop_id"`
	AppointmentID        uint            `gorm:"uniqueIndex" json:"appointment_id"`
	UserID               uint            `gorm:"index" json:"user_id"`
	ServiceAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"service_amount"`
	CommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"commission_percentage"`
	CommissionAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"commission_amount"`
	Status               string          `gorm:"size:20;default:'pending';index:idx_commissions_shop_status" json:"status"`
	PaidAt               *time.Time      `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
}
