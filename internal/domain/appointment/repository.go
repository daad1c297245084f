package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

// ScheduleRepository is everything the availability calculator reads.
type ScheduleRepository interface {
	// GetWeeklySchedule returns every weekday row of the professional; empty means "never configured".
	GetWeeklySchedule(
		ctx context.Context,
		barberID uint,
	) ([]models.WorkingHours, error)

	// GetBookingsForDate returns bookings overlapping date's calendar day, cancelled ones included.
	GetBookingsForDate(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.Appointment, error)
}

type Repository interface {
	ScheduleRepository

	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Professional --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	// -------- Product --------
	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.BarberProduct, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// WithinBookingTx runs fn in one database transaction.
	WithinBookingTx(
		ctx context.Context,
		fn func(tx BookingTx) error,
	) error
}

// BookingTx is the commit path of a booking: lock, re-read, insert.
type BookingTx interface {
	ScheduleRepository

	// LockBarber serialises booking writers for one professional until the transaction ends.
	LockBarber(
		ctx context.Context,
		barberID uint,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
