package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// notFound turns gorm's missing-row error into the business error for code.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code)
	}
	return err
}

// --------------------------------------------------
// Lookups shared by every repository
// --------------------------------------------------

func getBarbershopByID(ctx context.Context, db *gorm.DB, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err, "barbershop_not_found")
	}
	return &shop, nil
}

func getBarbershopBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, notFound(err, "barbershop_not_found")
	}
	return &shop, nil
}

func getBarber(ctx context.Context, db *gorm.DB, barbershopID, userID uint) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", userID, barbershopID).
		First(&u).Error; err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	return &u, nil
}

func getProduct(ctx context.Context, db *gorm.DB, barbershopID, productID uint) (*models.BarberProduct, error) {
	var product models.BarberProduct
	if err := db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = ?", productID, barbershopID, true).
		First(&product).Error; err != nil {
		return nil, notFound(err, "product_not_found")
	}
	return &product, nil
}

func getOrCreateClient(
	ctx context.Context,
	db *gorm.DB,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	// Two concurrent first bookings from one phone: the loser re-reads the winner's row.
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&client)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return &client, nil
	}

	client = models.Client{}
	if err := db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ShopGormRepository answers small per-shop lookups.
type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

func (r *ShopGormRepository) Timezone(ctx context.Context, barbershopID uint) (string, error) {
	shop, err := getBarbershopByID(ctx, r.db, barbershopID)
	if err != nil {
		return "", err
	}
	return shop.Timezone, nil
}
