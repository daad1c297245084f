package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type ClubGormRepository struct {
	db *gorm.DB
}

func NewClubGormRepository(db *gorm.DB) *ClubGormRepository {
	return &ClubGormRepository{db: db}
}

// --------------------------------------------------
// Plans
// --------------------------------------------------

func (r *ClubGormRepository) CreatePlan(ctx context.Context, p *models.ClubPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ClubGormRepository) UpdatePlan(ctx context.Context, p *models.ClubPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ClubGormRepository) ReplacePlanItems(
	ctx context.Context,
	planID uint,
	items []models.PlanItem,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.PlanItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].PlanID = planID
		}
		return tx.Create(&items).Error
	})
}

func (r *ClubGormRepository) GetPlan(
	ctx context.Context,
	barbershopID uint,
	planID uint,
) (*models.ClubPlan, error) {

	var plan models.ClubPlan
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND barbershop_id = ?", planID, barbershopID).
		First(&plan).Error; err != nil {
		return nil, notFound(err, "plan_not_found")
	}
	return &plan, nil
}

func (r *ClubGormRepository) ListPlans(
	ctx context.Context,
	barbershopID uint,
) ([]models.ClubPlan, error) {

	var plans []models.ClubPlan
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("barbershop_id = ?", barbershopID).
		Order("price ASC, id ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *ClubGormRepository) ListPublishedPlans(
	ctx context.Context,
	barbershopID uint,
) ([]models.ClubPlan, error) {

	var plans []models.ClubPlan
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("barbershop_id = ? AND is_active = ? AND is_published = ?", barbershopID, true, true).
		Order("price ASC, id ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

func (r *ClubGormRepository) GetActiveSubscription(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Subscription, error) {
	return activeSubscription(r.db.WithContext(ctx), barbershopID, clientID)
}

func (r *ClubGormRepository) GetSubscription(
	ctx context.Context,
	barbershopID uint,
	subscriptionID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("id = ? AND barbershop_id = ?", subscriptionID, barbershopID).
		First(&sub).Error; err != nil {
		return nil, notFound(err, "subscription_not_found")
	}
	return &sub, nil
}

func (r *ClubGormRepository) GetSubscriptionByGatewayRef(
	ctx context.Context,
	ref string,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("gateway_ref = ?", ref).
		First(&sub).Error; err != nil {
		return nil, notFound(err, "subscription_not_found")
	}
	return &sub, nil
}

func (r *ClubGormRepository) ListSubscriptions(
	ctx context.Context,
	barbershopID uint,
	status string,
) ([]models.Subscription, error) {

	q := r.db.WithContext(ctx).
		Preload("Plan").
		Preload("Client").
		Where("barbershop_id = ?", barbershopID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var subs []models.Subscription
	if err := q.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *ClubGormRepository) CreateSubscription(ctx context.Context, s *models.Subscription) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *ClubGormRepository) UpdateSubscription(ctx context.Context, s *models.Subscription) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

// --------------------------------------------------
// Usage
// --------------------------------------------------

func (r *ClubGormRepository) CountUsageSince(
	ctx context.Context,
	subscriptionID uint,
	productID uint,
	since time.Time,
) (int, error) {
	return countUsageSince(r.db.WithContext(ctx), subscriptionID, productID, since)
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ClubGormRepository) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return getBarbershopByID(ctx, r.db, id)
}

func (r *ClubGormRepository) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	return getBarbershopBySlug(ctx, r.db, slug)
}

func (r *ClubGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	return getOrCreateClient(ctx, r.db, barbershopID, name, phone, email)
}

func (r *ClubGormRepository) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.BarberProduct, error) {
	return getProduct(ctx, r.db, barbershopID, productID)
}

// --------------------------------------------------
// Shared with the settlement store
// --------------------------------------------------

func activeSubscription(db *gorm.DB, barbershopID, clientID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.
		Preload("Plan.Items").
		Where("barbershop_id = ? AND client_id = ? AND status = ?", barbershopID, clientID, string(domain.StatusActive)).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func countUsageSince(db *gorm.DB, subscriptionID, productID uint, since time.Time) (int, error) {
	var n int64
	if err := db.Model(&models.UsageRecord{}).
		Where(
			"subscription_id = ? AND barber_product_id = ? AND used_at >= ?",
			subscriptionID, productID, since,
		).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// Compile-time check
var _ domain.Repository = (*ClubGormRepository)(nil)
