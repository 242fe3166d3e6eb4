package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/service"
	"github.com/kartbay/kartbay/internal/util"
)

type StoreHTTP struct {
	Svc *service.CatalogService
}

type storeRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *StoreHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "store.create", err)
	}

	store, err := h.Svc.CreateStore(ctx, &models.Store{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	})
	if err != nil {
		return respondError(c, "store.create", err)
	}
	return ok(c, http.StatusCreated, "store created", store)
}

func (h *StoreHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id")
	}

	store, err := h.Svc.GetStore(ctx, id)
	if err != nil {
		return respondError(c, "store.get", err)
	}
	return ok(c, http.StatusOK, "store fetched", store)
}

func (h *StoreHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	total, stores, err := h.Svc.ListStores(ctx, repo.ListFilter{
		Search:   c.QueryParam("search"),
		IsActive: queryBool(c, "isActive"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, "store.list", err)
	}

	return ok(c, http.StatusOK, "stores fetched", map[string]any{
		"stores":     stores,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// Nearby returns active stores within a radius of the given point,
// closest first.
func (h *StoreHTTP) Nearby(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("latitude") == "" || c.QueryParam("longitude") == "" {
		return fail(c, http.StatusBadRequest, "latitude and longitude are required")
	}
	lat := queryFloat(c, "latitude", 0)
	lng := queryFloat(c, "longitude", 0)
	radius := queryFloat(c, "radius", 5)

	stores, err := h.Svc.NearbyStores(ctx, lat, lng, radius)
	if err != nil {
		return respondError(c, "store.nearby", err)
	}
	return ok(c, http.StatusOK, "nearby stores fetched", stores)
}
