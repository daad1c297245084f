package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// slotCheck decides, under the professional's lock, whether ap may be inserted.
type slotCheck func(schedule []models.WorkingHours, bookings []domain.Booking) error

// commitBooking locks the professional, re-reads the day and inserts ap when check passes.
// A concurrent writer that slips past the lock is stopped by the exclusion constraint.
func commitBooking(
	ctx context.Context,
	repo domain.Repository,
	m *metrics.Metrics,
	ap *models.Appointment,
	check slotCheck,
) error {

	err := repo.WithinBookingTx(ctx, func(tx domain.BookingTx) error {
		if err := tx.LockBarber(ctx, ap.BarberID); err != nil {
			return err
		}

		schedule, err := tx.GetWeeklySchedule(ctx, ap.BarberID)
		if err != nil {
			return err
		}

		existing, err := tx.GetBookingsForDate(ctx, ap.BarberID, ap.StartTime)
		if err != nil {
			return err
		}

		if err := check(schedule, domain.BookingsFromModels(existing)); err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, ap)
	})

	switch {
	case err == nil:
		return nil
	case httperr.IsExclusionConflict(err):
		m.BookingConflict("constraint")
		return httperr.Conflict("slot_unavailable")
	case httperr.IsBusiness(err, "slot_unavailable"):
		m.BookingConflict("check")
	}
	return err
}

// workingSlotCheck validates a client booking against working hours, breaks and the calendar.
func workingSlotCheck(
	shop *models.Barbershop,
	start time.Time,
	duration time.Duration,
	now time.Time,
	notBefore time.Time,
) slotCheck {
	return func(schedule []models.WorkingHours, bookings []domain.Booking) error {
		window, err := domain.ResolveWorkingHours(schedule, start, domain.PolicyFor(shop.ScheduleFallback))
		if err != nil {
			return err
		}
		return domain.CheckSlot(window, bookings, start, duration, now, notBefore).Err()
	}
}
