package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-club/internal/domain/club"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// SettlementGormStore backs both the store and its transactions; inside
// WithinTx the db handle is the open transaction.
type SettlementGormStore struct {
	db *gorm.DB
}

func NewSettlementGormStore(db *gorm.DB) *SettlementGormStore {
	return &SettlementGormStore{db: db}
}

func (s *SettlementGormStore) WithinTx(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SettlementGormStore{db: tx})
	})
}

// Savepoint relies on gorm turning a nested Transaction into SAVEPOINT / ROLLBACK TO.
func (s *SettlementGormStore) Savepoint(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SettlementGormStore{db: tx})
	})
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (s *SettlementGormStore) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return getBarbershopByID(ctx, s.db, id)
}

func (s *SettlementGormStore) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (s *SettlementGormStore) GetBarber(ctx context.Context, barbershopID, userID uint) (*models.User, error) {
	return getBarber(ctx, s.db, barbershopID, userID)
}

// GetProduct ignores the active flag: a service retired after booking still settles.
func (s *SettlementGormStore) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.BarberProduct, error) {

	var product models.BarberProduct
	if err := s.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", productID, barbershopID).
		First(&product).Error; err != nil {
		return nil, notFound(err, "product_not_found")
	}
	return &product, nil
}

func (s *SettlementGormStore) GetActiveSubscription(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Subscription, error) {
	return activeSubscription(s.db.WithContext(ctx), barbershopID, clientID)
}

func (s *SettlementGormStore) CountUsageSince(
	ctx context.Context,
	subscriptionID uint,
	productID uint,
	since time.Time,
) (int, error) {
	return countUsageSince(s.db.WithContext(ctx), subscriptionID, productID, since)
}

// --------------------------------------------------
// Locks
// --------------------------------------------------

func (s *SettlementGormStore) LockAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (s *SettlementGormStore) LockActiveSubscription(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Subscription, error) {

	db := s.db.WithContext(ctx)

	var sub models.Subscription
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barbershop_id = ? AND client_id = ? AND status = ?", barbershopID, clientID, string(club.StatusActive)).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Plan is loaded apart so the lock stays on the subscription row only.
	if err := db.Preload("Items").First(&sub.Plan, sub.PlanID).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (s *SettlementGormStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *SettlementGormStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (s *SettlementGormStore) CreateUsageRecord(ctx context.Context, u *models.UsageRecord) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *SettlementGormStore) CreateCommission(ctx context.Context, c *models.Commission) error {
	return s.db.WithContext(ctx).Create(c).Error
}

// Compile-time check
var (
	_ domain.Store = (*SettlementGormStore)(nil)
	_ domain.Tx    = (*SettlementGormStore)(nil)
)
