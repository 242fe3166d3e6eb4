package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/service"
	"github.com/kartbay/kartbay/internal/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

type createProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Images      []string        `json:"images"`
	BrandID     uint            `json:"brandId"`
	CategoryIDs []uint          `json:"categoryIds"`
	StoreIDs    []uint          `json:"storeIds"`
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "product.create", err)
	}

	product, err := h.Svc.CreateProduct(ctx, service.CreateProductInput{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Images:      req.Images,
		BrandID:     req.BrandID,
		CategoryIDs: req.CategoryIDs,
		StoreIDs:    req.StoreIDs,
	})
	if err != nil {
		return respondError(c, "product.create", err)
	}
	return ok(c, http.StatusCreated, "product created", product)
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status"`
	Images      []string         `json:"images"`
	CategoryIDs []uint           `json:"categoryIds"`
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "product.update", err)
	}

	product, err := h.Svc.UpdateProduct(ctx, id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Images:      req.Images,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return respondError(c, "product.update", err)
	}
	return ok(c, http.StatusOK, "product updated", product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return respondError(c, "product.delete", err)
	}
	return ok(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return respondError(c, "product.get", err)
	}
	return ok(c, http.StatusOK, "product fetched", product)
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	filter := repo.ProductFilter{
		Search:     c.QueryParam("search"),
		BrandID:    queryUint(c, "brandId"),
		CategoryID: queryUint(c, "categoryId"),
		Offset:     offset,
		Limit:      limit,
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		if p, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &p
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if p, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &p
		}
	}

	products, pg, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		return respondError(c, "product.list", err)
	}

	return ok(c, http.StatusOK, "products fetched", map[string]any{
		"products":   products,
		"pagination": pg,
	})
}

type linkStoresRequest struct {
	StoreIDs []uint `json:"storeIds"`
	Stock    int    `json:"stock"`
}

func (h *ProductHTTP) LinkStores(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req linkStoresRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "product.link_stores", err)
	}

	links, err := h.Svc.LinkProductToStores(ctx, id, req.StoreIDs, req.Stock)
	if err != nil {
		return respondError(c, "product.link_stores", err)
	}
	return ok(c, http.StatusOK, "product linked to stores", links)
}

func (h *ProductHTTP) Stocks(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	if _, err := h.Svc.GetProduct(ctx, id); err != nil {
		return respondError(c, "product.stocks", err)
	}
	stocks, err := h.Svc.ProductStocks(ctx, id)
	if err != nil {
		return respondError(c, "product.stocks", err)
	}
	return ok(c, http.StatusOK, "product stocks fetched", stocks)
}
