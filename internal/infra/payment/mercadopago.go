package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/infra/breaker"
)

// PreapprovalAPI is the part of the Mercado Pago preapproval client in use.
type PreapprovalAPI interface {
	Create(ctx context.Context, request preapproval.Request) (*preapproval.Response, error)
	Get(ctx context.Context, id string) (*preapproval.Response, error)
	Update(ctx context.Context, id string, request preapproval.UpdateRequest) (*preapproval.Response, error)
}

// MercadoPago starts monthly recurring charges through preapprovals.
type MercadoPago struct {
	api      PreapprovalAPI
	backURL  string
	currency string
	cb       *gobreaker.CircuitBreaker
}

func NewMercadoPago(accessToken, backURL string, log *zap.Logger) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return NewMercadoPagoWithAPI(preapproval.NewClient(cfg), backURL, log), nil
}

func NewMercadoPagoWithAPI(api PreapprovalAPI, backURL string, log *zap.Logger) *MercadoPago {
	return &MercadoPago{
		api:      api,
		backURL:  backURL,
		currency: "BRL",
		cb:       breaker.New("mercadopago", log),
	}
}

func (m *MercadoPago) Subscribe(ctx context.Context, req club.SubscribeRequest) (*club.Checkout, error) {
	if req.PayerEmail == "" {
		return nil, errors.New("mercadopago: payer email is required")
	}

	amount, _ := req.Amount.Round(2).Float64()

	res, err := breaker.Do(m.cb, func() (*preapproval.Response, error) {
		return m.api.Create(ctx, preapproval.Request{
			Reason:            req.PlanName,
			ExternalReference: strconv.FormatUint(uint64(req.SubscriptionID), 10),
			PayerEmail:        req.PayerEmail,
			BackURL:           m.backURL,
			Status:            "pending",
			AutoRecurring: &preapproval.AutoRecurringRequest{
				Frequency:         1,
				FrequencyType:     "months",
				TransactionAmount: amount,
				CurrencyID:        m.currency,
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preapproval: %w", err)
	}

	return &club.Checkout{
		GatewayRef: res.ID,
		URL:        res.InitPoint,
		Status:     res.Status,
	}, nil
}

func (m *MercadoPago) Cancel(ctx context.Context, gatewayRef string) error {
	_, err := breaker.Do(m.cb, func() (*preapproval.Response, error) {
		return m.api.Update(ctx, gatewayRef, preapproval.UpdateRequest{Status: "cancelled"})
	})
	if err != nil {
		return fmt.Errorf("mercadopago cancel preapproval %s: %w", gatewayRef, err)
	}
	return nil
}

// Lookup returns the raw preapproval status; club.FromGateway maps it.
func (m *MercadoPago) Lookup(ctx context.Context, gatewayRef string) (string, error) {
	res, err := breaker.Do(m.cb, func() (*preapproval.Response, error) {
		return m.api.Get(ctx, gatewayRef)
	})
	if err != nil {
		return "", fmt.Errorf("mercadopago get preapproval %s: %w", gatewayRef, err)
	}
	return res.Status, nil
}

// Compile-time check
var _ club.PaymentGateway = (*MercadoPago)(nil)
