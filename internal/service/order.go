package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/util"
)

var (
	defaultDeliveryFee = decimal.NewFromInt(50)
	defaultTaxRate     = decimal.NewFromFloat(0.18)
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type CreateOrderInput struct {
	AddressID   uint
	DeliveryFee *decimal.Decimal
	TaxRate     *decimal.Decimal
}

// Create assembles an immutable order from the customer's cart snapshot.
// Totals come from the snapshotted line prices, not the current catalog,
// and are fixed at creation.
func (s *OrderService) Create(ctx context.Context, customerID uint, in CreateOrderInput) (*models.Order, error) {
	items, err := s.Repo.ListCartItems(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w", ErrEmptyCart)
	}

	if _, err := s.Repo.AddressByID(ctx, customerID, in.AddressID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: address", ErrNotFound)
		}
		return nil, err
	}

	deliveryFee := defaultDeliveryFee
	if in.DeliveryFee != nil {
		deliveryFee = in.DeliveryFee.Round(2)
	}
	taxRate := defaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromUint64(uint64(item.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     lineTotal,
		})
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Add(deliveryFee).Round(2)

	order := &models.Order{
		OrderNumber: generateOrderNumber(),
		CustomerID:  customerID,
		AddressID:   in.AddressID,
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Total:       total,
		Status:      models.StatusCreated,
		Items:       orderItems,
	}
	if err := s.Repo.PlaceOrder(ctx, order); err != nil {
		return nil, err
	}

	created, err := s.Repo.OrderByID(ctx, customerID, order.ID)
	if err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx)
	if err := s.Events.Publish(ctx, events.TopicOrders, order.OrderNumber, map[string]any{
		"type":        "order_created",
		"orderNumber": order.OrderNumber,
		"customerID":  customerID,
		"total":       total.StringFixed(2),
	}); err != nil {
		l.Error("event_publish_failed", "type", "order_created", "error", err)
	}
	l.Info("order_created", "order_number", order.OrderNumber, "total", total.StringFixed(2))
	return created, nil
}

func (s *OrderService) List(ctx context.Context, customerID uint, page, limit int) ([]models.Order, util.Pagination, error) {
	offset, limit := util.Calculate(page, limit)
	total, orders, err := s.Repo.ListOrders(ctx, customerID, offset, limit)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return orders, util.NewPagination(total, offset/limit+1, limit), nil
}

// Get is scoped to the owning customer: an order owned by someone else is
// indistinguishable from a missing one.
func (s *OrderService) Get(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, customerID, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.Get(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidTransition, order.Status)
	}

	order.Status = models.StatusCancelled
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicOrders, order.OrderNumber, map[string]any{
		"type":        "order_cancelled",
		"orderNumber": order.OrderNumber,
		"customerID":  customerID,
	}); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", "order_cancelled", "error", err)
	}
	return order, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
