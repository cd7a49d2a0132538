//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

const maxProductNameLen = 255

// Product represents a catalog entry as the upstream store API returns it.
// This service never owns product state; the struct exists so handlers and
// the upstream client agree on one JSON shape.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest represents parameters to create a Product upstream.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Author      string  `json:"author,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Validate checks the request before it is sent upstream. The store API
// validates again; failing early keeps bad input off the wire.
func (r CreateProductRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("product name is required")
	}
	if len(name) > maxProductNameLen {
		return errors.New("product name is too long")
	}
	if r.Price < 0 {
		return errors.New("product price must not be negative")
	}
	if r.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	return nil
}

// UpdateProductRequest represents a partial product update. Nil fields are
// left untouched upstream.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
