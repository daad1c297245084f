package club

import (
	"context"

	"github.com/shopspring/decimal"
)

type SubscribeRequest struct {
	SubscriptionID uint
	PlanName       string
	Amount         decimal.Decimal
	PayerEmail     string
}

type Checkout struct {
	GatewayRef string
	URL        string
	Status     string
}

// PaymentGateway starts, cancels and inspects recurring charges.
type PaymentGateway interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (*Checkout, error)
	Cancel(ctx context.Context, gatewayRef string) error
	Lookup(ctx context.Context, gatewayRef string) (string, error)
}
