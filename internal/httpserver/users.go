package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	users, pg, err := h.Svc.List(ctx, page, limit)
	if err != nil {
		return respondError(c, "users.list", err)
	}

	return ok(c, http.StatusOK, "users fetched", map[string]any{
		"users":      users,
		"pagination": pg,
	})
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, "users.get", err)
	}

	return ok(c, http.StatusOK, "user fetched", user)
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "users.update", err)
	}

	user, err := h.Svc.Update(ctx, id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondError(c, "users.update", err)
	}

	return ok(c, http.StatusOK, "user updated", user)
}
