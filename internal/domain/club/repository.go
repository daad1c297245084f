package club

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

type Repository interface {
	// -------- Plans --------
	CreatePlan(ctx context.Context, p *models.ClubPlan) error
	UpdatePlan(ctx context.Context, p *models.ClubPlan) error
	ReplacePlanItems(ctx context.Context, planID uint, items []models.PlanItem) error
	GetPlan(ctx context.Context, barbershopID, planID uint) (*models.ClubPlan, error)
	ListPlans(ctx context.Context, barbershopID uint) ([]models.ClubPlan, error)
	ListPublishedPlans(ctx context.Context, barbershopID uint) ([]models.ClubPlan, error)

	// -------- Subscriptions --------

	// GetActiveSubscription preloads Plan.Items and returns nil, nil for non-members.
	GetActiveSubscription(ctx context.Context, barbershopID, clientID uint) (*models.Subscription, error)
	GetSubscription(ctx context.Context, barbershopID, subscriptionID uint) (*models.Subscription, error)
	GetSubscriptionByGatewayRef(ctx context.Context, ref string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, barbershopID uint, status string) ([]models.Subscription, error)
	CreateSubscription(ctx context.Context, s *models.Subscription) error
	UpdateSubscription(ctx context.Context, s *models.Subscription) error

	// -------- Usage --------
	CountUsageSince(ctx context.Context, subscriptionID, productID uint, since time.Time) (int, error)

	// -------- Lookups --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)
	GetProduct(ctx context.Context, barbershopID, productID uint) (*models.BarberProduct, error)
}
