package appointment

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// memRepo is an in-memory domain.Repository. WithinBookingTx holds txMu for the
// whole callback, which is what LockBarber gives us against Postgres.
type memRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	shop     models.Barbershop
	barbers  map[uint]models.User
	products map[uint]models.BarberProduct
	schedule map[uint][]models.WorkingHours

	appointments []models.Appointment
	clients      []models.Client
	nextID       uint

	// insertErr simulates the database rejecting the insert.
	insertErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		shop: models.Barbershop{
			ID:               1,
			Name:             "Navalha",
			Timezone:         "America/Sao_Paulo",
			ScheduleFallback: domain.FallbackOpen,
		},
		barbers: map[uint]models.User{
			10: {ID: 10, BarbershopID: 1, Name: "Carlos"},
		},
		products: map[uint]models.BarberProduct{
			100: {ID: 100, BarbershopID: 1, Name: "Corte", DurationMin: 60, Active: true},
			101: {ID: 101, BarbershopID: 1, Name: "Barba", DurationMin: 30, Active: true},
		},
		schedule: map[uint][]models.WorkingHours{
			10: {{
				BarberID:   10,
				Weekday:    int(time.Monday),
				StartTime:  "09:00",
				EndTime:    "18:00",
				LunchStart: "12:00",
				LunchEnd:   "13:00",
				Active:     true,
			}},
		},
		nextID: 1,
	}
}

func (r *memRepo) GetWeeklySchedule(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WorkingHours(nil), r.schedule[barberID]...), nil
}

func (r *memRepo) GetBookingsForDate(_ context.Context, barberID uint, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && domain.Overlaps(ap.StartTime, ap.EndTime, dayStart, dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != r.shop.ID {
		return nil, httperr.NotFound("barbershop_not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *memRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.User, error) {
	u, ok := r.barbers[barberID]
	if !ok || u.BarbershopID != barbershopID {
		return nil, httperr.NotFound("barber_not_found")
	}
	return &u, nil
}

func (r *memRepo) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	p, ok := r.products[productID]
	if !ok || p.BarbershopID != barbershopID || !p.Active {
		return nil, httperr.NotFound("product_not_found")
	}
	return &p, nil
}

func (r *memRepo) GetOrCreateClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{ID: uint(len(r.clients) + 1), BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return &c, nil
}

func (r *memRepo) GetAppointment(_ context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.BarbershopID == barbershopID {
			return &ap, nil
		}
	}
	return nil, httperr.NotFound("appointment_not_found")
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return httperr.NotFound("appointment_not_found")
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarbershopID != barbershopID || (barberID != 0 && ap.BarberID != barberID) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) WithinBookingTx(_ context.Context, fn func(tx domain.BookingTx) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *memRepo) LockBarber(context.Context, uint) error { return nil }

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return r.insertErr
	}
	ap.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memRepo) seed(barberID uint, start, end time.Time, status domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments = append(r.appointments, models.Appointment{
		ID:           r.nextID,
		BarbershopID: r.shop.ID,
		BarberID:     barberID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(status),
	})
	r.nextID++
}
