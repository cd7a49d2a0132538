package storeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
)

// ListOrders fetches every order. The store API enforces that only admin
// bearers may call this.
func (c *Client) ListOrders(ctx context.Context, bearer string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", bearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByUser fetches the orders placed by one user.
func (c *Client) ListOrdersByUser(ctx context.Context, bearer, userID string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/user/"+url.PathEscape(userID), bearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order and returns the stored record.
func (c *Client) CreateOrder(
	ctx context.Context,
	bearer string,
	req model.CreateOrderRequest,
) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", bearer, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, bearer, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), bearer, nil, nil)
}

// OrderTrends fetches the store API's order aggregation payload untouched.
// The insights service shapes it with JMESPath projections.
func (c *Client) OrderTrends(ctx context.Context, bearer string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders/trends/", bearer, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
