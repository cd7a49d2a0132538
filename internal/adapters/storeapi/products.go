package storeapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
)

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context, bearer string) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/", bearer, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, bearer, id string) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), bearer, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog entry and returns the stored product.
func (c *Client) CreateProduct(
	ctx context.Context,
	bearer string,
	req model.CreateProductRequest,
) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/products/", bearer, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update and returns the stored product.
func (c *Client) UpdateProduct(
	ctx context.Context,
	bearer, id string,
	req model.UpdateProductRequest,
) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), bearer, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, bearer, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), bearer, nil, nil)
}
