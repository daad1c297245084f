package club

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
	"github.com/BruksfildServices01/barber-club/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type SubscribeInput struct {
	BarbershopID uint
	PlanID       uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	// ActorID is set when staff enrols the client; only staff may use the manual origin.
	ActorID *uint
	Origin  string
}

// ======================================================
// USE CASE
// ======================================================

type Subscribe struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
	log     *zap.Logger
}

func NewSubscribe(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	clock timezone.Clock,
	log *zap.Logger,
) *Subscribe {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Subscribe{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
		metrics: m,
		clock:   clock,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Subscribe) Execute(
	ctx context.Context,
	in SubscribeInput,
) (*models.Subscription, error) {

	origin := in.Origin
	if origin == "" {
		origin = domain.OriginGateway
	}
	if origin != domain.OriginGateway && origin != domain.OriginManual {
		return nil, httperr.Validation("invalid_request")
	}
	if origin == domain.OriginManual && in.ActorID == nil {
		return nil, httperr.Forbidden("owner_only")
	}

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" || strings.TrimSpace(in.ClientPhone) == "" {
		return nil, httperr.Validation("invalid_request")
	}
	phone, ok := validators.NormalizePhone(in.ClientPhone)
	if !ok {
		return nil, httperr.Validation("invalid_phone")
	}
	in.ClientPhone = phone

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Plano precisa estar à venda
	// --------------------------------------------------
	plan, err := uc.repo.GetPlan(ctx, in.BarbershopID, in.PlanID)
	if err != nil {
		return nil, err
	}
	if !domain.IsPurchasable(plan) {
		return nil, httperr.Validation("plan_not_available")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Uma assinatura ativa por cliente
	// --------------------------------------------------
	active, err := uc.repo.GetActiveSubscription(ctx, in.BarbershopID, client.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, httperr.Conflict("subscription_already_active")
	}

	sub := &models.Subscription{
		BarbershopID:  in.BarbershopID,
		ClientID:      client.ID,
		PlanID:        plan.ID,
		Status:        string(domain.StatusPending),
		PaymentOrigin: origin,
	}

	if origin == domain.OriginManual {
		now := uc.clock.NowIn(shop.Timezone)
		due := now.AddDate(0, 1, 0)
		sub.Status = string(domain.StatusActive)
		sub.NextDueDate = &due
	}

	if err := uc.repo.CreateSubscription(ctx, sub); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.Conflict("subscription_already_active")
		}
		return nil, err
	}

	if origin == domain.OriginGateway {
		if err := uc.checkout(ctx, sub, plan, client); err != nil {
			return nil, err
		}
	}

	sub.Plan = *plan

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "subscription_created",
		Entity:       "subscription",
		EntityID:     &sub.ID,
		Metadata:     map[string]any{"plan_id": plan.ID, "origin": origin},
	})

	return sub, nil
}

// checkout asks the gateway for a payment link. A failed request cancels the pending subscription.
func (uc *Subscribe) checkout(
	ctx context.Context,
	sub *models.Subscription,
	plan *models.ClubPlan,
	client *models.Client,
) error {

	var (
		co  *domain.Checkout
		err error
	)
	if uc.gateway == nil {
		err = errGatewayNotConfigured
	} else {
		co, err = uc.gateway.Subscribe(ctx, domain.SubscribeRequest{
			SubscriptionID: sub.ID,
			PlanName:       plan.Name,
			Amount:         plan.Price,
			PayerEmail:     client.Email,
		})
	}
	uc.metrics.GatewayCall("subscribe", err)

	if err != nil {
		uc.log.Error("gateway subscribe failed",
			zap.Uint("subscription_id", sub.ID),
			zap.Error(err),
		)

		sub.Status = string(domain.StatusCanceled)
		if uerr := uc.repo.UpdateSubscription(ctx, sub); uerr != nil {
			uc.log.Error("cancel pending subscription failed",
				zap.Uint("subscription_id", sub.ID),
				zap.Error(uerr),
			)
		}
		return httperr.Upstream("payment_gateway_unavailable", err)
	}

	sub.GatewayRef = co.GatewayRef
	sub.CheckoutURL = co.URL

	return uc.repo.UpdateSubscription(ctx, sub)
}
