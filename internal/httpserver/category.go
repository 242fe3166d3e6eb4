package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/service"
	"github.com/kartbay/kartbay/internal/util"
)

type CategoryHTTP struct {
	Svc *service.CatalogService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "category.create", err)
	}

	category, err := h.Svc.CreateCategory(ctx, &models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return respondError(c, "category.create", err)
	}
	return ok(c, http.StatusCreated, "category created", category)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}

	category, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return respondError(c, "category.get", err)
	}
	return ok(c, http.StatusOK, "category fetched", category)
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	total, categories, err := h.Svc.ListCategories(ctx, repo.ListFilter{
		Search:   c.QueryParam("search"),
		IsActive: queryBool(c, "isActive"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, "category.list", err)
	}

	return ok(c, http.StatusOK, "categories fetched", map[string]any{
		"categories": categories,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// Products lists the catalog filtered to one category.
func (h *CategoryHTTP) Products(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}
	if _, err := h.Svc.GetCategory(ctx, id); err != nil {
		return respondError(c, "category.products", err)
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	products, pg, err := h.Svc.ListProducts(ctx, repo.ProductFilter{
		CategoryID: id,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return respondError(c, "category.products", err)
	}

	return ok(c, http.StatusOK, "products fetched", map[string]any{
		"products":   products,
		"pagination": pg,
	})
}
