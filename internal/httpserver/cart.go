package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
	"github.com/kartbay/kartbay/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

type addToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "cart.add", err)
	}
	if req.ProductID == 0 {
		return fail(c, http.StatusBadRequest, "productId is required")
	}

	item, err := h.Svc.AddToCart(ctx, mwauth.CustomerID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, "cart.add", err)
	}
	return ok(c, http.StatusOK, "item added to cart", item)
}

func (h *CartHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	items, summary, err := h.Svc.GetCart(ctx, mwauth.CustomerID(c))
	if err != nil {
		return respondError(c, "cart.get", err)
	}
	return ok(c, http.StatusOK, "cart fetched", map[string]any{
		"items":   items,
		"summary": summary,
	})
}

type updateQuantityRequest struct {
	Quantity uint `json:"quantity"`
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid cart item id")
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "cart.update_quantity", err)
	}

	item, err := h.Svc.UpdateQuantity(ctx, mwauth.CustomerID(c), id, req.Quantity)
	if err != nil {
		return respondError(c, "cart.update_quantity", err)
	}
	return ok(c, http.StatusOK, "cart item updated", item)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid cart item id")
	}

	if err := h.Svc.Remove(ctx, mwauth.CustomerID(c), id); err != nil {
		return respondError(c, "cart.remove", err)
	}
	return ok(c, http.StatusOK, "item removed from cart", nil)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.Clear(ctx, mwauth.CustomerID(c)); err != nil {
		return respondError(c, "cart.clear", err)
	}
	return ok(c, http.StatusOK, "cart cleared", nil)
}
