package reminder

import (
	"context"
	"slices"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// maxOffsetMinutes is one week.
const maxOffsetMinutes = 7 * 24 * 60

type Offsets struct {
	repo domain.Repository
}

func NewOffsets(repo domain.Repository) *Offsets {
	return &Offsets{repo: repo}
}

func (uc *Offsets) List(ctx context.Context, barbershopID uint) ([]models.ReminderOffset, error) {
	return uc.repo.ListOffsets(ctx, barbershopID)
}

func (uc *Offsets) Replace(ctx context.Context, barbershopID uint, minutes []int) ([]models.ReminderOffset, error) {
	for _, m := range minutes {
		if m <= 0 || m > maxOffsetMinutes {
			return nil, httperr.Validation("invalid_request")
		}
	}

	minutes = slices.Compact(slices.Sorted(slices.Values(minutes)))

	if err := uc.repo.ReplaceOffsets(ctx, barbershopID, minutes); err != nil {
		return nil, err
	}
	return uc.repo.ListOffsets(ctx, barbershopID)
}
