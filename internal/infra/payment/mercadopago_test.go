package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/domain/club"
)

type fakePreapproval struct {
	created preapproval.Request
	updated preapproval.UpdateRequest
	status  string
	err     error
}

func (f *fakePreapproval) Create(_ context.Context, req preapproval.Request) (*preapproval.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = req
	return &preapproval.Response{ID: "pre-1", InitPoint: "https://mp.test/checkout/pre-1", Status: "pending"}, nil
}

func (f *fakePreapproval) Get(_ context.Context, id string) (*preapproval.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &preapproval.Response{ID: id, Status: f.status}, nil
}

func (f *fakePreapproval) Update(_ context.Context, id string, req preapproval.UpdateRequest) (*preapproval.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = req
	return &preapproval.Response{ID: id, Status: req.Status}, nil
}

func TestSubscribeCreatesMonthlyPreapproval(t *testing.T) {
	api := &fakePreapproval{}
	mp := NewMercadoPagoWithAPI(api, "https://shop.test/back", zap.NewNop())

	co, err := mp.Subscribe(context.Background(), club.SubscribeRequest{
		SubscriptionID: 12,
		PlanName:       "Clube Corte",
		Amount:         decimal.RequireFromString("89.90"),
		PayerEmail:     "ana@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pre-1", co.GatewayRef)
	assert.Equal(t, "https://mp.test/checkout/pre-1", co.URL)
	assert.Equal(t, "12", api.created.ExternalReference)
	assert.Equal(t, "months", api.created.AutoRecurring.FrequencyType)
	assert.InDelta(t, 89.90, api.created.AutoRecurring.TransactionAmount, 0.001)
}

func TestSubscribeRequiresEmail(t *testing.T) {
	mp := NewMercadoPagoWithAPI(&fakePreapproval{}, "", zap.NewNop())

	_, err := mp.Subscribe(context.Background(), club.SubscribeRequest{SubscriptionID: 1})
	assert.Error(t, err)
}

func TestLookupAndCancel(t *testing.T) {
	api := &fakePreapproval{status: "authorized"}
	mp := NewMercadoPagoWithAPI(api, "", zap.NewNop())

	status, err := mp.Lookup(context.Background(), "pre-1")
	require.NoError(t, err)
	mapped, ok := club.FromGateway(status)
	assert.True(t, ok)
	assert.Equal(t, club.StatusActive, mapped)

	require.NoError(t, mp.Cancel(context.Background(), "pre-1"))
	assert.Equal(t, "cancelled", api.updated.Status)
}

func TestGatewayErrorsAreWrapped(t *testing.T) {
	boom := errors.New("503")
	mp := NewMercadoPagoWithAPI(&fakePreapproval{err: boom}, "", zap.NewNop())

	_, err := mp.Lookup(context.Background(), "pre-1")
	assert.ErrorIs(t, err, boom)
}
