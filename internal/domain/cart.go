package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

func invalidQuantity(quantity int) error {
	return apperrors.InvalidQuantity(
		fmt.Sprintf("quantity must be between %d and %d, got %d", MinQuantity, MaxQuantity, quantity))
}

const (
	// MinQuantity and MaxQuantity bound the quantity of a single line item.
	MinQuantity = 1
	MaxQuantity = 99
)

// LineItem is a single product line in a cart. UnitPrice is the price
// captured at the time the item was added.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds the line items of a checkout session. Items preserve
// insertion order so the cart renders the same way on every read.
type Cart struct {
	Items []LineItem `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

// AddItem adds a product to the cart. If the product is already present
// the quantities are merged; a merge that would exceed MaxQuantity is
// rejected and the cart is left unchanged.
func (c *Cart) AddItem(item LineItem) error {
	if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
		return invalidQuantity(item.Quantity)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			merged := c.Items[i].Quantity + item.Quantity
			if merged > MaxQuantity {
				return invalidQuantity(merged)
			}
			c.Items[i].Quantity = merged
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// UpdateQuantity sets the quantity of an existing line item. Quantities
// below MinQuantity are rejected rather than treated as a removal; use
// RemoveItem to drop a line.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return invalidQuantity(quantity)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return apperrors.ItemNotFound(productID)
}

// RemoveItem drops a line item. Removing a product that is not in the
// cart is a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Find returns the line item for productID, or nil if absent.
func (c *Cart) Find(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
