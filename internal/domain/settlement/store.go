package settlement

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

// Reader serves the quote and the membership lookups.
type Reader interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)
	GetBarber(ctx context.Context, barbershopID, userID uint) (*models.User, error)
	GetProduct(ctx context.Context, barbershopID, productID uint) (*models.BarberProduct, error)

	// GetActiveSubscription preloads Plan.Items; nil when the client is not a member.
	GetActiveSubscription(ctx context.Context, barbershopID, clientID uint) (*models.Subscription, error)
	CountUsageSince(ctx context.Context, subscriptionID, productID uint, since time.Time) (int, error)
}

type Store interface {
	Reader

	// WithinTx commits when fn returns nil and rolls everything back otherwise.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	Reader

	LockAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)
	// LockActiveSubscription serialises concurrent redemptions for one client.
	LockActiveSubscription(ctx context.Context, barbershopID, clientID uint) (*models.Subscription, error)

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	CreateUsageRecord(ctx context.Context, u *models.UsageRecord) error
	CreateCommission(ctx context.Context, c *models.Commission) error

	// Savepoint runs fn so that its failure undoes only fn's writes.
	Savepoint(ctx context.Context, fn func(tx Tx) error) error
}
