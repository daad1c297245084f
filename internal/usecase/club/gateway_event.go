package club

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

// ApplyGatewayEvent re-reads a subscription's state from the gateway after a webhook.
// The webhook body is never trusted; only the reference is.
type ApplyGatewayEvent struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
	log     *zap.Logger
}

func NewApplyGatewayEvent(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	clock timezone.Clock,
	log *zap.Logger,
) *ApplyGatewayEvent {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplyGatewayEvent{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
		metrics: m,
		clock:   clock,
		log:     log,
	}
}

func (uc *ApplyGatewayEvent) Execute(
	ctx context.Context,
	gatewayRef string,
) (*models.Subscription, error) {

	if gatewayRef == "" {
		return nil, httperr.Validation("invalid_request")
	}
	if uc.gateway == nil {
		return nil, httperr.Upstream("payment_gateway_unavailable", errGatewayNotConfigured)
	}

	sub, err := uc.repo.GetSubscriptionByGatewayRef(ctx, gatewayRef)
	if err != nil {
		return nil, err
	}

	raw, err := uc.gateway.Lookup(ctx, gatewayRef)
	uc.metrics.GatewayCall("lookup", err)
	if err != nil {
		return nil, httperr.Upstream("payment_gateway_unavailable", err)
	}

	next, ok := domain.FromGateway(raw)
	if !ok {
		uc.log.Warn("unknown gateway status", zap.String("status", raw), zap.String("ref", gatewayRef))
		return sub, nil
	}

	current := domain.SubscriptionStatus(sub.Status)
	if next == current || current.IsTerminal() {
		return sub, nil
	}

	if next == domain.StatusActive {
		other, err := uc.repo.GetActiveSubscription(ctx, sub.BarbershopID, sub.ClientID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != sub.ID {
			return nil, httperr.Conflict("subscription_already_active")
		}

		shop, err := uc.repo.GetBarbershopByID(ctx, sub.BarbershopID)
		if err != nil {
			return nil, err
		}
		due := uc.clock.NowIn(shop.Timezone).AddDate(0, 1, 0)
		sub.NextDueDate = &due
	}

	sub.Status = string(next)
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.Conflict("subscription_already_active")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: sub.BarbershopID,
		Action:       "subscription_" + string(next),
		Entity:       "subscription",
		EntityID:     &sub.ID,
		Metadata:     map[string]any{"gateway_status": raw},
	})

	return sub, nil
}
