package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
)

// ProductFilter narrows a catalog listing. Zero values are omitted from
// the query string.
type ProductFilter struct {
	Category     string
	Subcategory  string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	FlowerTypes  []string
	Arrangements []string
	Colors       []string
	InStock      *bool
	Featured     *bool
}

// query renders the filter as URL query parameters. Multi-value facets
// are comma-joined.
func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Subcategory != "" {
		q.Set("subcategory", f.Subcategory)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice != nil {
		q.Set("min_price", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("max_price", f.MaxPrice.String())
	}
	if len(f.FlowerTypes) > 0 {
		q.Set("flower_types", strings.Join(f.FlowerTypes, ","))
	}
	if len(f.Arrangements) > 0 {
		q.Set("arrangements", strings.Join(f.Arrangements, ","))
	}
	if len(f.Colors) > 0 {
		q.Set("colors", strings.Join(f.Colors, ","))
	}
	if f.InStock != nil {
		q.Set("in_stock", strconv.FormatBool(*f.InStock))
	}
	if f.Featured != nil {
		q.Set("featured", strconv.FormatBool(*f.Featured))
	}
	return q
}

// CatalogClient reads products from the catalog service.
type CatalogClient struct {
	doer    HTTPDoer
	baseURL string
}

// NewCatalogClient creates a catalog client against baseURL.
func NewCatalogClient(doer HTTPDoer, baseURL string) *CatalogClient {
	return &CatalogClient{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

// ListProducts returns the products matching the filter.
func (c *CatalogClient) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	if q := filter.query(); len(q) > 0 {
		u += "?" + q.Encode()
	}

	var products []domain.Product
	if err := getJSON(ctx, c.doer, u, "catalog", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by ID.
func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	if err := getJSON(ctx, c.doer, c.baseURL+"/api/products/"+url.PathEscape(productID), "catalog", &product); err != nil {
		return nil, err
	}
	return &product, nil
}
