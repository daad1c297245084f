package settlement

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type memState struct {
	appointments map[uint]models.Appointment
	usage        []models.UsageRecord
	transactions []models.Transaction
	commissions  []models.Commission
	nextID       uint
}

func (s memState) clone() memState {
	return memState{
		appointments: maps.Clone(s.appointments),
		usage:        slices.Clone(s.usage),
		transactions: slices.Clone(s.transactions),
		commissions:  slices.Clone(s.commissions),
		nextID:       s.nextID,
	}
}

// memStore serialises WithinTx calls, which stands in for the row locks, and
// restores a snapshot when a transaction or savepoint fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	shop     models.Barbershop
	barbers  map[uint]models.User
	products map[uint]models.BarberProduct
	subs     map[uint]models.Subscription
	state    memState

	failUsage      error
	failCommission error
	failUpdate     error
}

func newMemStore() *memStore {
	return &memStore{
		shop:     models.Barbershop{ID: 1, Timezone: "America/Sao_Paulo"},
		barbers:  map[uint]models.User{},
		products: map[uint]models.BarberProduct{},
		subs:     map[uint]models.Subscription{},
		state:    memState{appointments: map[uint]models.Appointment{}, nextID: 1000},
	}
}

func (s *memStore) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != s.shop.ID {
		return nil, httperr.NotFound("barbershop_not_found")
	}
	shop := s.shop
	return &shop, nil
}

func (s *memStore) GetAppointment(_ context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.state.appointments[appointmentID]
	if !ok || ap.BarbershopID != barbershopID {
		return nil, httperr.NotFound("appointment_not_found")
	}
	return &ap, nil
}

func (s *memStore) GetBarber(_ context.Context, barbershopID, userID uint) (*models.User, error) {
	u, ok := s.barbers[userID]
	if !ok || u.BarbershopID != barbershopID {
		return nil, httperr.NotFound("barber_not_found")
	}
	return &u, nil
}

func (s *memStore) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	p, ok := s.products[productID]
	if !ok || p.BarbershopID != barbershopID {
		return nil, httperr.NotFound("product_not_found")
	}
	return &p, nil
}

func (s *memStore) GetActiveSubscription(_ context.Context, barbershopID, clientID uint) (*models.Subscription, error) {
	for _, sub := range s.subs {
		if sub.BarbershopID == barbershopID && sub.ClientID == clientID && sub.Status == "active" {
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *memStore) CountUsageSince(_ context.Context, subscriptionID, productID uint, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.state.usage {
		if u.SubscriptionID == subscriptionID && u.BarberProductID == productID && !u.UsedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.guard(func() error { return fn(s) })
}

func (s *memStore) Savepoint(_ context.Context, fn func(tx domain.Tx) error) error {
	return s.guard(func() error { return fn(s) })
}

func (s *memStore) guard(fn func() error) error {
	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) LockAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	return s.GetAppointment(ctx, barbershopID, appointmentID)
}

func (s *memStore) LockActiveSubscription(ctx context.Context, barbershopID, clientID uint) (*models.Subscription, error) {
	return s.GetActiveSubscription(ctx, barbershopID, clientID)
}

func (s *memStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.state.transactions {
		if existing.AppointmentID == t.AppointmentID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	t.ID = s.state.nextID
	s.state.nextID++
	s.state.transactions = append(s.state.transactions, *t)
	return nil
}

func (s *memStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if s.failUpdate != nil {
		return s.failUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.appointments[ap.ID] = *ap
	return nil
}

func (s *memStore) CreateUsageRecord(_ context.Context, u *models.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// simulated write succeeds before failing, so the savepoint has something to undo
	s.state.usage = append(s.state.usage, *u)
	return s.failUsage
}

func (s *memStore) CreateCommission(_ context.Context, c *models.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.commissions = append(s.state.commissions, *c)
	return s.failCommission
}
