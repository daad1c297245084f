package settlement

import (
	"context"

	"github.com/shopspring/decimal"

	apptdomain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

// Quote is what the "finish appointment" form is pre-filled with.
type Quote struct {
	AppointmentID uint                   `json:"appointment_id"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentMethod string                 `json:"payment_method"`
	Covered       bool                   `json:"covered"`
	Member        bool                   `json:"member"`
	Credit        clubdomain.CreditCheck `json:"credit"`
}

type QuoteSettlement struct {
	store domain.Store
	clock timezone.Clock
}

func NewQuoteSettlement(store domain.Store, clock timezone.Clock) *QuoteSettlement {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	return &QuoteSettlement{store: store, clock: clock}
}

func (uc *QuoteSettlement) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*Quote, error) {

	shop, err := uc.store.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.store.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := apptdomain.CanComplete(apptdomain.Status(ap.Status)); err != nil {
		return nil, err
	}

	q := &Quote{
		AppointmentID: ap.ID,
		Amount:        decimal.Zero,
		PaymentMethod: string(domain.MethodCash),
	}

	if ap.BarberProductID == nil {
		return q, nil
	}

	product, err := uc.store.GetProduct(ctx, barbershopID, *ap.BarberProductID)
	if err != nil {
		return nil, err
	}
	q.Amount = product.Price

	if ap.ClientID == nil {
		return q, nil
	}

	sub, err := uc.store.GetActiveSubscription(ctx, barbershopID, *ap.ClientID)
	if err != nil || sub == nil {
		return q, err
	}
	q.Member = true

	item := clubdomain.ItemFor(&sub.Plan, product.ID)
	if item == nil {
		return q, nil
	}

	now := uc.clock.NowIn(shop.Timezone)
	used, err := uc.store.CountUsageSince(ctx, sub.ID, product.ID, clubdomain.CycleStart(now, timezone.Location(shop.Timezone)))
	if err != nil {
		return nil, err
	}

	q.Credit = clubdomain.CheckCredit(item, used)
	if q.Credit.Allowed {
		q.Covered = true
		q.Amount = decimal.Zero
		q.PaymentMethod = string(domain.MethodMembershipBalance)
	}

	return q, nil
}
