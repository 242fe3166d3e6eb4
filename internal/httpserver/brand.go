package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/service"
	"github.com/kartbay/kartbay/internal/util"
)

type BrandHTTP struct {
	Svc *service.CatalogService
}

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

func (h *BrandHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "brand.create", err)
	}

	brand, err := h.Svc.CreateBrand(ctx, &models.Brand{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		IsActive:    true,
	})
	if err != nil {
		return respondError(c, "brand.create", err)
	}
	return ok(c, http.StatusCreated, "brand created", brand)
}

func (h *BrandHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid brand id")
	}

	brand, err := h.Svc.GetBrand(ctx, id)
	if err != nil {
		return respondError(c, "brand.get", err)
	}
	return ok(c, http.StatusOK, "brand fetched", brand)
}

func (h *BrandHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	total, brands, err := h.Svc.ListBrands(ctx, repo.ListFilter{
		Search:   c.QueryParam("search"),
		IsActive: queryBool(c, "isActive"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, "brand.list", err)
	}

	return ok(c, http.StatusOK, "brands fetched", map[string]any{
		"brands":     brands,
		"pagination": util.NewPagination(total, page, limit),
	})
}
