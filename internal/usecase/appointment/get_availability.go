package appointment

import (
	"context"
	"slices"
	"time"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	return &GetAvailability{repo: repo, clock: clock}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.DurationMin <= 0 {
		return nil, httperr.Validation("invalid_duration")
	}

	loc := timezone.Location(shop.Timezone)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	schedule, err := uc.repo.GetWeeklySchedule(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	window, err := domain.ResolveWorkingHours(schedule, date, domain.PolicyFor(shop.ScheduleFallback))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []domain.Slot{}, nil
	}

	bookings, err := uc.repo.GetBookingsForDate(ctx, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	now := uc.clock.NowIn(shop.Timezone)

	slots := slices.Collect(domain.GenerateSlots(domain.SlotParams{
		Window:    window,
		Bookings:  domain.BookingsFromModels(bookings),
		Duration:  time.Duration(product.DurationMin) * time.Minute,
		Interval:  time.Duration(in.IntervalMin) * time.Minute,
		Now:       now,
		NotBefore: earliestBookable(shop.MinAdvanceMinutes, now, in.Public),
	}))
	if slots == nil {
		slots = []domain.Slot{}
	}

	return slots, nil
}

// earliestBookable applies the shop's minimum notice to public requests only.
func earliestBookable(minAdvance int, now time.Time, public bool) time.Time {
	if !public || minAdvance <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(minAdvance) * time.Minute)
}
