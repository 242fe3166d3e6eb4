package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
	"github.com/kartbay/kartbay/internal/service"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	customer, err := h.Svc.Profile(ctx, mwauth.CustomerID(c))
	if err != nil {
		return respondError(c, "customer.profile", err)
	}
	return ok(c, http.StatusOK, "profile fetched", customer)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *CustomerHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "customer.update_profile", err)
	}

	customer, err := h.Svc.UpdateProfile(ctx, mwauth.CustomerID(c), req.Name, req.Phone)
	if err != nil {
		return respondError(c, "customer.update_profile", err)
	}
	return ok(c, http.StatusOK, "profile updated", customer)
}

func (h *CustomerHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "customer.add_address", err)
	}

	addr, err := h.Svc.AddAddress(ctx, mwauth.CustomerID(c), *req.toInput())
	if err != nil {
		return respondError(c, "customer.add_address", err)
	}
	return ok(c, http.StatusCreated, "address added", addr)
}

func (h *CustomerHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()

	addrs, err := h.Svc.ListAddresses(ctx, mwauth.CustomerID(c))
	if err != nil {
		return respondError(c, "customer.list_addresses", err)
	}
	return ok(c, http.StatusOK, "addresses fetched", addrs)
}

type updateAddressRequest struct {
	AddressLine1 string   `json:"addressLine1"`
	AddressLine2 *string  `json:"addressLine2"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Pincode      string   `json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsDefault    *bool    `json:"isDefault"`
}

func (h *CustomerHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid address id")
	}

	var req updateAddressRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "customer.update_address", err)
	}

	addr, err := h.Svc.UpdateAddress(ctx, mwauth.CustomerID(c), id, service.UpdateAddressInput{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		return respondError(c, "customer.update_address", err)
	}
	return ok(c, http.StatusOK, "address updated", addr)
}

func (h *CustomerHTTP) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid address id")
	}

	if err := h.Svc.DeleteAddress(ctx, mwauth.CustomerID(c), id); err != nil {
		return respondError(c, "customer.delete_address", err)
	}
	return ok(c, http.StatusOK, "address deleted", nil)
}

func (h *CustomerHTTP) SetDefaultAddress(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid address id")
	}

	addr, err := h.Svc.SetDefaultAddress(ctx, mwauth.CustomerID(c), id)
	if err != nil {
		return respondError(c, "customer.set_default_address", err)
	}
	return ok(c, http.StatusOK, "default address set", addr)
}
