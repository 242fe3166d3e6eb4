package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kartbay/kartbay/internal/models"
)

// PlaceOrder persists the order with its items and clears the customer's
// cart in one transaction, so a crash mid-sequence cannot leave a priced
// order with no items or a cleared cart with no order.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("customer_id = ?", order.CustomerID).
			Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) OrderByID(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, customerID uint, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var orders []models.Order
	err := q.Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit("Items", "Address").Save(order).Error
}

// OrderForVerification matches the (order, customer, gateway order) triple
// against a PAYMENT_PENDING order.
func (r *GormRepo) OrderForVerification(ctx context.Context, customerID, orderID uint, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ? AND gateway_order_id = ? AND status = ?",
			orderID, customerID, gatewayOrderID, models.StatusPaymentPending).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaid applies a captured callback. The status guard makes the
// update a no-op under duplicate delivery; it reports whether a row changed.
func (r *GormRepo) MarkOrderPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("gateway_order_id = ? AND status <> ?", gatewayOrderID, models.StatusPaid).
		Updates(map[string]any{
			"gateway_payment_id": gatewayPaymentID,
			"status":             models.StatusPaid,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *GormRepo) MarkOrderFailed(ctx context.Context, gatewayOrderID string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("gateway_order_id = ?", gatewayOrderID).
		Update("status", models.StatusFailed)
	return res.RowsAffected > 0, res.Error
}
