package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type registerAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addressRequest struct {
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Pincode      string  `json:"pincode"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsDefault    bool    `json:"isDefault"`
}

type registerCustomerRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Address  *addressRequest `json:"address"`
}

func (r *addressRequest) toInput() *service.AddressInput {
	if r == nil {
		return nil
	}
	return &service.AddressInput{
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Country:      r.Country,
		Pincode:      r.Pincode,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		IsDefault:    r.IsDefault,
	}
}

func (h *AuthHTTP) RegisterAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_admin")

	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "auth.register_admin", err)
	}

	user, token, err := h.Svc.RegisterAdmin(ctx, service.RegisterAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, "auth.register_admin", err)
	}

	l.Info("admin_registered", "user_id", user.ID)
	return ok(c, http.StatusCreated, "admin registered", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHTTP) LoginAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_admin")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "auth.login_admin", err)
	}

	user, token, err := h.Svc.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, "auth.login_admin", err)
	}

	l.Info("admin_logged_in", "user_id", user.ID)
	return ok(c, http.StatusOK, "login successful", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHTTP) RegisterCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_customer")

	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "auth.register_customer", err)
	}

	customer, token, err := h.Svc.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address.toInput(),
	})
	if err != nil {
		return respondError(c, "auth.register_customer", err)
	}

	l.Info("customer_registered", "customer_id", customer.ID)
	return ok(c, http.StatusCreated, "customer registered", map[string]any{
		"customer": customer,
		"token":    token,
	})
}

func (h *AuthHTTP) LoginCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_customer")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "auth.login_customer", err)
	}

	customer, token, err := h.Svc.LoginCustomer(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, "auth.login_customer", err)
	}

	l.Info("customer_logged_in", "customer_id", customer.ID)
	return ok(c, http.StatusOK, "login successful", map[string]any{
		"customer": customer,
		"token":    token,
	})
}
