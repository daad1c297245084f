package club

import (
	"context"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type ListSubscriptions struct {
	repo domain.Repository
}

func NewListSubscriptions(repo domain.Repository) *ListSubscriptions {
	return &ListSubscriptions{repo: repo}
}

// Execute filters by status when one is given.
func (uc *ListSubscriptions) Execute(
	ctx context.Context,
	barbershopID uint,
	status string,
) ([]models.Subscription, error) {

	switch domain.SubscriptionStatus(status) {
	case "", domain.StatusPending, domain.StatusActive, domain.StatusOverdue, domain.StatusCanceled:
	default:
		return nil, httperr.Validation("invalid_status")
	}

	return uc.repo.ListSubscriptions(ctx, barbershopID, status)
}
