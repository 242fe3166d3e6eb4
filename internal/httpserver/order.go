package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
	"github.com/kartbay/kartbay/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

type createOrderRequest struct {
	AddressID   uint             `json:"addressId"`
	DeliveryFee *decimal.Decimal `json:"deliveryFee"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "order.create", err)
	}
	if req.AddressID == 0 {
		return fail(c, http.StatusBadRequest, "addressId is required")
	}

	order, err := h.Svc.Create(ctx, mwauth.CustomerID(c), service.CreateOrderInput{
		AddressID:   req.AddressID,
		DeliveryFee: req.DeliveryFee,
		TaxRate:     req.TaxRate,
	})
	if err != nil {
		return respondError(c, "order.create", err)
	}
	return ok(c, http.StatusCreated, "order created", order)
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	orders, pg, err := h.Svc.List(ctx, mwauth.CustomerID(c), page, limit)
	if err != nil {
		return respondError(c, "order.list", err)
	}
	return ok(c, http.StatusOK, "orders fetched", map[string]any{
		"orders":     orders,
		"pagination": pg,
	})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Get(ctx, mwauth.CustomerID(c), id)
	if err != nil {
		return respondError(c, "order.get", err)
	}
	return ok(c, http.StatusOK, "order fetched", order)
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Cancel(ctx, mwauth.CustomerID(c), id)
	if err != nil {
		return respondError(c, "order.cancel", err)
	}
	return ok(c, http.StatusOK, "order cancelled", order)
}
