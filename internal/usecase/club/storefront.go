package club

import (
	"context"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type Storefront struct {
	repo domain.Repository
}

func NewStorefront(repo domain.Repository) *Storefront {
	return &Storefront{repo: repo}
}

// Execute lists the plans a visitor can buy. Drafts never leave this function.
func (uc *Storefront) Execute(
	ctx context.Context,
	slug string,
) (*models.Barbershop, []models.ClubPlan, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	plans, err := uc.repo.ListPublishedPlans(ctx, shop.ID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]models.ClubPlan, 0, len(plans))
	for i := range plans {
		if domain.IsPurchasable(&plans[i]) {
			out = append(out, plans[i])
		}
	}

	return shop, out, nil
}
