package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/07chouthri/flowerschool-storefront/internal/client"
	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
	"github.com/07chouthri/flowerschool-storefront/pkg/httputil"
)

// CatalogHandler proxies product browsing to the catalog service.
type CatalogHandler struct {
	catalog *client.CatalogClient
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog *client.CatalogClient, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// parseFilter builds a product filter from list query parameters.
// Malformed numeric or boolean values are rejected rather than ignored.
func parseFilter(r *http.Request) (client.ProductFilter, error) {
	q := r.URL.Query()
	filter := client.ProductFilter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Search:      q.Get("search"),
	}

	if raw := q.Get("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, apperrors.InvalidInput("min_price must be a decimal number")
		}
		filter.MinPrice = &d
	}
	if raw := q.Get("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, apperrors.InvalidInput("max_price must be a decimal number")
		}
		filter.MaxPrice = &d
	}
	if raw := q.Get("in_stock"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperrors.InvalidInput("in_stock must be true or false")
		}
		filter.InStock = &b
	}
	if raw := q.Get("featured"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperrors.InvalidInput("featured must be true or false")
		}
		filter.Featured = &b
	}

	splitFacet := func(raw string) []string {
		if raw == "" {
			return nil
		}
		parts := strings.Split(raw, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	filter.FlowerTypes = splitFacet(q.Get("flower_types"))
	filter.Arrangements = splitFacet(q.Get("arrangements"))
	filter.Colors = splitFacet(q.Get("colors"))

	return filter, nil
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /api/v1/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
