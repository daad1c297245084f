package club

import (
	"context"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

// Membership answers "is this client a member, and can they redeem this service now".
type Membership struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewMembership(repo domain.Repository, clock timezone.Clock) *Membership {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	return &Membership{repo: repo, clock: clock}
}

// ActiveMembership returns nil when the client has no active subscription.
func (m *Membership) ActiveMembership(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Subscription, error) {
	return m.repo.GetActiveSubscription(ctx, barbershopID, clientID)
}

// CheckCreditAvailable counts usage since the start of the current cycle in the shop's zone.
func (m *Membership) CheckCreditAvailable(
	ctx context.Context,
	shop *models.Barbershop,
	sub *models.Subscription,
	productID uint,
) (domain.CreditCheck, error) {

	if sub == nil || domain.SubscriptionStatus(sub.Status) != domain.StatusActive {
		return domain.CreditCheck{}, nil
	}

	item := domain.ItemFor(&sub.Plan, productID)
	if item == nil {
		return domain.CreditCheck{}, nil
	}

	loc := timezone.Location(shop.Timezone)
	since := domain.CycleStart(m.clock.NowIn(shop.Timezone), loc)

	used, err := m.repo.CountUsageSince(ctx, sub.ID, productID, since)
	if err != nil {
		return domain.CreditCheck{}, err
	}

	return domain.CheckCredit(item, used), nil
}

// Check loads the client's active subscription and its credit for productID.
// A nil subscription means the client is not a member.
func (m *Membership) Check(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
	productID uint,
) (*models.Subscription, domain.CreditCheck, error) {

	shop, err := m.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, domain.CreditCheck{}, err
	}

	sub, err := m.ActiveMembership(ctx, barbershopID, clientID)
	if err != nil || sub == nil {
		return nil, domain.CreditCheck{}, err
	}

	credit, err := m.CheckCreditAvailable(ctx, shop, sub, productID)
	if err != nil {
		return nil, domain.CreditCheck{}, err
	}
	return sub, credit, nil
}
