package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/commission"
	"github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

func (r *CommissionGormRepository) ListByStatus(
	ctx context.Context,
	barbershopID uint,
	status string,
	start time.Time,
	end time.Time,
) ([]models.Commission, error) {

	var rows []models.Commission
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			barbershopID, status, start, end,
		).
		Order("user_id ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CommissionGormRepository) ListBarbers(
	ctx context.Context,
	barbershopID uint,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *CommissionGormRepository) MarkPaid(
	ctx context.Context,
	barbershopID uint,
	userIDs []uint,
	start time.Time,
	end time.Time,
	paidAt time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where(
			"barbershop_id = ? AND status = ? AND user_id IN ? AND created_at >= ? AND created_at < ?",
			barbershopID, settlement.CommissionPending, userIDs, start, end,
		).
		Updates(map[string]any{
			"status":  settlement.CommissionPaid,
			"paid_at": paidAt,
		})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*CommissionGormRepository)(nil)
