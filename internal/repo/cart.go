package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kartbay/kartbay/internal/models"
)

// UpsertCartItem adds a line or accumulates quantity into the existing
// (customer, product) line. The conflict target is the unique index, so two
// concurrent adds produce one line with the summed quantity; the price is
// overwritten with the product's current price on every add.
func (r *GormRepo) UpsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"price":      gorm.Expr("excluded.price"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(item).Error
}

func (r *GormRepo) CartItemByID(ctx context.Context, customerID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").
		Where("id = ? AND customer_id = ?", itemID, customerID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CartItemByProduct(ctx context.Context, customerID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListCartItems(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// DeleteCartItem is idempotent: deleting an absent line is not an error.
func (r *GormRepo) DeleteCartItem(ctx context.Context, customerID, itemID uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, customerID uint) error {
	return r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.CartItem{}).Error
}
