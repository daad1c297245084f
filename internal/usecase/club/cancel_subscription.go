package club

import (
	"context"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type CancelSubscription struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewCancelSubscription(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CancelSubscription {
	return &CancelSubscription{repo: repo, gateway: gateway, audit: audit, metrics: m}
}

// Execute stops future charges first, then marks the subscription canceled.
func (uc *CancelSubscription) Execute(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	subscriptionID uint,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetSubscription(ctx, barbershopID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if domain.SubscriptionStatus(sub.Status).IsTerminal() {
		return nil, httperr.Conflict("invalid_state")
	}

	if sub.GatewayRef != "" && uc.gateway != nil {
		err := uc.gateway.Cancel(ctx, sub.GatewayRef)
		uc.metrics.GatewayCall("cancel", err)
		if err != nil {
			return nil, httperr.Upstream("payment_gateway_unavailable", err)
		}
	}

	sub.Status = string(domain.StatusCanceled)
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorID,
		Action:       "subscription_canceled",
		Entity:       "subscription",
		EntityID:     &sub.ID,
	})

	return sub, nil
}
