package domain

import "github.com/shopspring/decimal"

// DeliveryOption is a shipping choice offered by the delivery
// collaborator.
type DeliveryOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimated_days"`
}
