package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClubPlan struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Interval    string          `gorm:"size:20;default:'monthly'" json:"interval"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	IsPublished bool            `gorm:"default:false" json:"is_published"`

	Items []PlanItem `gorm:"foreignKey:PlanID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanItem: a nil or zero QuantityLimit means unlimited.
type PlanItem struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	PlanID          uint `gorm:"uniqueIndex:ux_plan_items_plan_product" json:"plan_id"`
	BarberProductID uint `gorm:"uniqueIndex:ux_plan_items_plan_product" json:"barber_product_id"`
	QuantityLimit   *int `json:"quantity_limit"`
}

type Subscription struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	BarbershopID uint     `gorm:"index" json:"barbershop_id"`
	ClientID     uint     `gorm:"index" json:"client_id"`
	Client       Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	PlanID       uint     `json:"plan_id"`
	Plan         ClubPlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plan"`

	Status        string     `gorm:"size:20;default:'pending'" json:"status"`
	NextDueDate   *time.Time `json:"next_due_date"`
	PaymentOrigin string     `gorm:"size:20;default:'gateway'" json:"payment_origin"`
	GatewayRef    string     `gorm:"size:100;index" json:"gateway_ref"`
	CheckoutURL   string     `gorm:"size:512" json:"checkout_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UsageRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SubscriptionID  uint      `gorm:"index:idx_usage_sub_product_used" json:"subscription_id"`
	BarberProductID uint      `gorm:"index:idx_usage_sub_product_used" json:"barber_product_id"`
	AppointmentID   uint      `gorm:"uniqueIndex" json:"appointment_id"`
	UsedAt          time.Time `gorm:"index:idx_usage_sub_product_used" json:"used_at"`
}
