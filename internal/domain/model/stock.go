//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// StockSnapshot is one historical stock observation for a product, as the
// upstream store API records it.
type StockSnapshot struct {
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	Stock      int       `json:"stock"`
	RecordedAt time.Time `json:"recorded_at"`
}
