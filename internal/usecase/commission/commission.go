package commission

import (
	"context"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/commission"
	settlement "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

type ShopLookup interface {
	Timezone(ctx context.Context, barbershopID uint) (string, error)
}

type Payouts struct {
	repo  domain.Repository
	shops ShopLookup
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewPayouts(
	repo domain.Repository,
	shops ShopLookup,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *Payouts {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	return &Payouts{repo: repo, shops: shops, audit: audit, clock: clock}
}

// ListPending groups the month's unpaid commissions per professional.
func (uc *Payouts) ListPending(
	ctx context.Context,
	barbershopID uint,
	year int,
	month int,
) ([]domain.ProfessionalCommissions, error) {

	start, end, _, err := uc.window(ctx, barbershopID, year, month)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListByStatus(ctx, barbershopID, settlement.CommissionPending, start, end)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListBarbers(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	return domain.GroupByProfessional(rows, barbers), nil
}

// Payout marks every pending commission of userIDs in the month as paid, in one statement.
func (uc *Payouts) Payout(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	year int,
	month int,
	userIDs []uint,
) (int64, error) {

	userIDs = slices.Compact(slices.Sorted(slices.Values(userIDs)))
	userIDs = slices.DeleteFunc(userIDs, func(id uint) bool { return id == 0 })
	if len(userIDs) == 0 {
		return 0, httperr.Validation("empty_selection")
	}

	start, end, tz, err := uc.window(ctx, barbershopID, year, month)
	if err != nil {
		return 0, err
	}

	n, err := uc.repo.MarkPaid(ctx, barbershopID, userIDs, start, end, uc.clock.NowIn(tz))
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorID,
		Action:       "commissions_paid",
		Entity:       "commission",
		Metadata: map[string]any{
			"user_ids": userIDs,
			"period":   start.Format("2006-01"),
			"rows":     n,
		},
	})

	return n, nil
}

func (uc *Payouts) window(ctx context.Context, barbershopID uint, year, month int) (time.Time, time.Time, string, error) {
	if month < 1 || month > 12 || year < 2000 {
		return time.Time{}, time.Time{}, "", httperr.Validation("invalid_date_or_time")
	}

	tz, err := uc.shops.Timezone(ctx, barbershopID)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}

	start, end := domain.MonthRange(year, time.Month(month), timezone.Location(tz))
	return start, end, tz, nil
}
