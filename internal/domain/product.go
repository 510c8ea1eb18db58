package domain

import "github.com/shopspring/decimal"

// Product is a catalog product as served by the product collaborator.
// Prices arrive as decimal strings on the wire and are parsed into exact
// decimals, never floats.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	FlowerType  string          `json:"flower_type,omitempty"`
	Arrangement string          `json:"arrangement,omitempty"`
	Color       string          `json:"color,omitempty"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"image_url,omitempty"`
}
