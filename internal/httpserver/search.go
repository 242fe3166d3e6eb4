package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/service"
	"github.com/kartbay/kartbay/internal/util"
)

type SearchHTTP struct {
	Svc *service.SearchService
}

func (h *SearchHTTP) Products(c echo.Context) error {
	ctx := c.Request().Context()

	if h.Svc == nil {
		return fail(c, http.StatusServiceUnavailable, "search is not available")
	}

	query := c.QueryParam("q")
	if query == "" {
		return fail(c, http.StatusBadRequest, "query parameter q is required")
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	offset, limit := util.Calculate(page, limit)

	total, hits, err := h.Svc.Search(ctx, query, offset, limit)
	if err != nil {
		return respondError(c, "search.products", err)
	}

	return ok(c, http.StatusOK, "search results", map[string]any{
		"results":    hits,
		"pagination": util.NewPagination(total, page, limit),
	})
}
