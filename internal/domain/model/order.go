//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"time"
)

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order represents an order record as the upstream store API returns it.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateOrderRequest represents parameters to place an order upstream.
type CreateOrderRequest struct {
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
}

// Validate checks the request before it is sent upstream.
func (r CreateOrderRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("order user is required")
	}
	if len(r.Items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for _, it := range r.Items {
		if it.ProductID == "" {
			return errors.New("order item product is required")
		}
		if it.Quantity <= 0 {
			return errors.New("order item quantity must be positive")
		}
	}
	return nil
}
