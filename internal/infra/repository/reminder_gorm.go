package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

// --------------------------------------------------
// Offsets
// --------------------------------------------------

func (r *ReminderGormRepository) ListAllOffsets(ctx context.Context) ([]models.ReminderOffset, error) {
	var rows []models.ReminderOffset
	if err := r.db.WithContext(ctx).
		Order("barbershop_id ASC, minutes_before DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReminderGormRepository) ListOffsets(ctx context.Context, barbershopID uint) ([]models.ReminderOffset, error) {
	var rows []models.ReminderOffset
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("minutes_before DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReminderGormRepository) ReplaceOffsets(ctx context.Context, barbershopID uint, minutes []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barbershop_id = ?", barbershopID).
			Delete(&models.ReminderOffset{}).Error; err != nil {
			return err
		}
		if len(minutes) == 0 {
			return nil
		}

		rows := make([]models.ReminderOffset, 0, len(minutes))
		for _, m := range minutes {
			rows = append(rows, models.ReminderOffset{
				BarbershopID:  barbershopID,
				MinutesBefore: m,
			})
		}
		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Due appointments
// --------------------------------------------------

func (r *ReminderGormRepository) ListDue(
	ctx context.Context,
	barbershopID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		Preload("Barber").
		Preload("BarberProduct").
		Where(
			"barbershop_id = ? AND status IN ? AND client_phone <> '' AND start_time > ? AND start_time <= ?",
			barbershopID, []string{"pending", "confirmed"}, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Log
// --------------------------------------------------

func (r *ReminderGormRepository) Claim(ctx context.Context, log *models.ReminderLog) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(log)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ReminderGormRepository) UpdateLog(ctx context.Context, log *models.ReminderLog) error {
	return r.db.WithContext(ctx).
		Model(&models.ReminderLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]any{
			"status": log.Status,
			"error":  log.Error,
		}).Error
}

// Compile-time check
var _ domain.Repository = (*ReminderGormRepository)(nil)
