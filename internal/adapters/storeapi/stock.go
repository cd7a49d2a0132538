package storeapi

import (
	"context"
	"net/http"

	"github.com/bookstand/store-ui-api/internal/domain/model"
)

// StockHistory fetches the historical stock observations for the catalog.
func (c *Client) StockHistory(ctx context.Context, bearer string) ([]model.StockSnapshot, error) {
	var snapshots []model.StockSnapshot
	if err := c.do(ctx, http.MethodGet, "/historicals/", bearer, nil, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
