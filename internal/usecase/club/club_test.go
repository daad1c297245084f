package club

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

var clock = timezone.FixedClock{At: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}

func limit(n int) *int { return &n }

func newPlan(t *testing.T, repo *memClubRepo, publish bool) *models.ClubPlan {
	t.Helper()
	plans := NewPlans(repo, nil)

	plan, err := plans.Create(context.Background(), 1, 99, PlanInput{
		Name:  "Clube Corte",
		Price: decimal.RequireFromString("89.90"),
		Items: []PlanItemInput{{ProductID: 100, QuantityLimit: limit(2)}},
	})
	require.NoError(t, err)
	assert.False(t, plan.IsPublished)

	if publish {
		plan, err = plans.SetPublished(context.Background(), 1, 99, plan.ID, true)
		require.NoError(t, err)
	}
	return plan
}

func subscribeInput(planID uint) SubscribeInput {
	return SubscribeInput{
		BarbershopID: 1,
		PlanID:       planID,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ClientEmail:  "joao@example.com",
	}
}

func TestDraftPlanIsNotSold(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, false)

	_, shopPlans, err := NewStorefront(repo).Execute(context.Background(), "navalha")
	require.NoError(t, err)
	assert.Empty(t, shopPlans)

	_, err = NewSubscribe(repo, &fakeGateway{}, nil, nil, clock, nil).Execute(context.Background(), subscribeInput(plan.ID))
	assert.True(t, httperr.IsBusiness(err, "plan_not_available"))
}

func TestStorefrontHidesInactivePlans(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)

	_, shopPlans, err := NewStorefront(repo).Execute(context.Background(), "navalha")
	require.NoError(t, err)
	assert.Len(t, shopPlans, 1)

	inactive := false
	_, err = NewPlans(repo, nil).Update(context.Background(), 1, 99, plan.ID, PlanInput{
		Name:     plan.Name,
		Price:    plan.Price,
		IsActive: &inactive,
		Items:    []PlanItemInput{{ProductID: 100}},
	})
	require.NoError(t, err)

	_, shopPlans, err = NewStorefront(repo).Execute(context.Background(), "navalha")
	require.NoError(t, err)
	assert.Empty(t, shopPlans)
}

func TestPlanRejectsUnknownProduct(t *testing.T) {
	_, err := NewPlans(newMemClubRepo(), nil).Create(context.Background(), 1, 99, PlanInput{
		Name:  "Clube",
		Items: []PlanItemInput{{ProductID: 555}},
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestSubscribeStoresCheckout(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)

	sub, err := NewSubscribe(repo, &fakeGateway{}, nil, nil, clock, nil).Execute(context.Background(), subscribeInput(plan.ID))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), sub.Status)
	assert.Equal(t, "pre-1", sub.GatewayRef)
	assert.NotEmpty(t, sub.CheckoutURL)
}

func TestSubscribeGatewayFailureCancels(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)

	_, err := NewSubscribe(repo, &fakeGateway{fail: true}, nil, nil, clock, nil).Execute(context.Background(), subscribeInput(plan.ID))
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindUpstream))

	subs, err := NewListSubscriptions(repo).Execute(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, string(domain.StatusCanceled), subs[0].Status)
}

func TestOneActiveSubscriptionPerClient(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)
	actor := uint(99)

	in := subscribeInput(plan.ID)
	in.Origin = domain.OriginManual
	in.ActorID = &actor

	uc := NewSubscribe(repo, nil, nil, nil, clock, nil)
	sub, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), sub.Status)
	require.NotNil(t, sub.NextDueDate)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "subscription_already_active"))
}

func TestManualOriginNeedsStaff(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)

	in := subscribeInput(plan.ID)
	in.Origin = domain.OriginManual

	_, err := NewSubscribe(repo, nil, nil, nil, clock, nil).Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestGatewayEventActivates(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)
	gw := &fakeGateway{}

	sub, err := NewSubscribe(repo, gw, nil, nil, clock, nil).Execute(context.Background(), subscribeInput(plan.ID))
	require.NoError(t, err)

	gw.status = "authorized"
	updated, err := NewApplyGatewayEvent(repo, gw, nil, nil, clock, nil).Execute(context.Background(), sub.GatewayRef)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), updated.Status)
	assert.NotNil(t, updated.NextDueDate)

	gw.status = "paused"
	updated, err = NewApplyGatewayEvent(repo, gw, nil, nil, clock, nil).Execute(context.Background(), sub.GatewayRef)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusOverdue), updated.Status)
}

func TestGatewayEventUnknownRef(t *testing.T) {
	_, err := NewApplyGatewayEvent(newMemClubRepo(), &fakeGateway{}, nil, nil, clock, nil).Execute(context.Background(), "nope")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCancelSubscription(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)
	gw := &fakeGateway{}

	sub, err := NewSubscribe(repo, gw, nil, nil, clock, nil).Execute(context.Background(), subscribeInput(plan.ID))
	require.NoError(t, err)

	uc := NewCancelSubscription(repo, gw, nil, nil)
	cancelled, err := uc.Execute(context.Background(), 1, 99, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), cancelled.Status)
	assert.Equal(t, []string{"pre-1"}, gw.cancelled)

	_, err = uc.Execute(context.Background(), 1, 99, sub.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCreditExhaustedThisMonth(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)
	actor := uint(99)

	in := subscribeInput(plan.ID)
	in.Origin = domain.OriginManual
	in.ActorID = &actor
	sub, err := NewSubscribe(repo, nil, nil, nil, clock, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	// February usage does not count toward March.
	repo.usage = []models.UsageRecord{
		{SubscriptionID: sub.ID, BarberProductID: 100, UsedAt: time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)},
		{SubscriptionID: sub.ID, BarberProductID: 100, UsedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)},
	}

	m := NewMembership(repo, clock)
	active, err := m.ActiveMembership(context.Background(), 1, sub.ClientID)
	require.NoError(t, err)
	require.NotNil(t, active)

	check, err := m.CheckCreditAvailable(context.Background(), &repo.shop, active, 100)
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, 1, check.Remaining)

	repo.usage = append(repo.usage, models.UsageRecord{SubscriptionID: sub.ID, BarberProductID: 100, UsedAt: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)})

	check, err = m.CheckCreditAvailable(context.Background(), &repo.shop, active, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditCheck{Covered: true, Allowed: false, Remaining: 0}, check)

	uncovered, err := m.CheckCreditAvailable(context.Background(), &repo.shop, active, 101)
	require.NoError(t, err)
	assert.False(t, uncovered.Covered)
}

func TestMembershipCheck(t *testing.T) {
	repo := newMemClubRepo()
	plan := newPlan(t, repo, true)
	m := NewMembership(repo, clock)

	sub, _, err := m.Check(context.Background(), 1, 4242, 100)
	require.NoError(t, err)
	assert.Nil(t, sub)

	actor := uint(99)
	in := subscribeInput(plan.ID)
	in.Origin = domain.OriginManual
	in.ActorID = &actor
	created, err := NewSubscribe(repo, nil, nil, nil, clock, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	sub, credit, err := m.Check(context.Background(), 1, created.ClientID, 100)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, credit.Covered)
	assert.True(t, credit.Allowed)

	_, _, err = m.Check(context.Background(), 2, created.ClientID, 100)
	assert.True(t, httperr.IsBusiness(err, "barbershop_not_found"))
}
