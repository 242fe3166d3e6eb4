package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

type CartSummary struct {
	ItemCount int    `json:"itemCount"`
	Subtotal  string `json:"subtotal"`
}

// AddToCart upserts a (customer, product) line. Repeat adds accumulate
// quantity and re-snapshot the price from the catalog's current price.
func (s *CartService) AddToCart(ctx context.Context, customerID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: productId is required", ErrInvalidArgument)
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if !product.Sellable() {
		return nil, fmt.Errorf("%w", ErrUnavailable)
	}

	item := &models.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      product.Price,
	}
	if err := s.Repo.UpsertCartItem(ctx, item); err != nil {
		return nil, err
	}
	return s.Repo.CartItemByProduct(ctx, customerID, productID)
}

func (s *CartService) GetCart(ctx context.Context, customerID uint) ([]models.CartItem, CartSummary, error) {
	items, err := s.Repo.ListCartItems(ctx, customerID)
	if err != nil {
		return nil, CartSummary{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromUint64(uint64(item.Quantity))))
	}
	return items, CartSummary{
		ItemCount: len(items),
		Subtotal:  subtotal.StringFixed(2),
	}, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, customerID, itemID, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: valid quantity is required", ErrInvalidArgument)
	}

	item, err := s.Repo.CartItemByID(ctx, customerID, itemID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, err
	}
	item.Quantity = quantity
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove and Clear are idempotent: removing an absent line succeeds.
func (s *CartService) Remove(ctx context.Context, customerID, itemID uint) error {
	return s.Repo.DeleteCartItem(ctx, customerID, itemID)
}

func (s *CartService) Clear(ctx context.Context, customerID uint) error {
	return s.Repo.ClearCart(ctx, customerID)
}
