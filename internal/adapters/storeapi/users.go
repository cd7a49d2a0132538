package storeapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bookstand/store-ui-api/internal/domain/model"
)

// GetUser fetches the user record keyed by the identity subject. Absence is
// reported as a not_found application error, which login reconciliation
// treats as "create it".
func (c *Client) GetUser(ctx context.Context, bearer, sub string) (*model.UserRecord, error) {
	var rec model.UserRecord
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(sub), bearer, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateUser inserts a user record. A conflict means the record already
// exists; the caller decides whether that matters.
func (c *Client) CreateUser(ctx context.Context, bearer string, rec model.UserRecord) error {
	return c.do(ctx, http.MethodPost, "/users/", bearer, rec, nil)
}
