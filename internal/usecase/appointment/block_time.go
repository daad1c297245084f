package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

type BlockTimeInput struct {
	BarbershopID uint
	BarberID     uint
	ActorID      uint

	// Kind is blocked or early_leave.
	Kind string

	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

// BlockTime reserves a range on a professional's calendar without a client.
type BlockTime struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewBlockTime(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *BlockTime {
	return &BlockTime{repo: repo, audit: audit, metrics: m}
}

func (uc *BlockTime) Execute(
	ctx context.Context,
	in BlockTimeInput,
) (*models.Appointment, error) {

	kind := domain.Status(in.Kind)
	if kind == "" {
		kind = domain.StatusBlocked
	}
	if !kind.IsPlaceholder() {
		return nil, httperr.Validation("invalid_status")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(in.Date, in.StartTime, shop.Timezone)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}
	end, err := timezone.ParseDateTime(in.Date, in.EndTime, shop.Timezone)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}
	if !end.After(start) {
		return nil, httperr.Validation("invalid_duration")
	}

	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(kind),
		Notes:        in.Notes,
	}

	err = commitBooking(ctx, uc.repo, uc.metrics, ap, func(_ []models.WorkingHours, bookings []domain.Booking) error {
		if domain.HasConflict(bookings, start, end.Sub(start)) {
			return httperr.Conflict("slot_unavailable")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(string(kind))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.ActorID,
		Action:       "time_blocked",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
