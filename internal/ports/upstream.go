package ports

import (
	"context"
	"encoding/json"

	"github.com/bookstand/store-ui-api/internal/domain/model"
)

// UserDirectory is the store API's user collection. Lookups that find
// nothing return an apperrors not_found; creating a user that already
// exists returns an apperrors conflict — callers decide whether that is a
// failure (it is not during login reconciliation).
type UserDirectory interface {
	GetUser(ctx context.Context, bearer, sub string) (*model.UserRecord, error)
	CreateUser(ctx context.Context, bearer string, rec model.UserRecord) error
}

// Catalog exposes the store API's product collection.
type Catalog interface {
	ListProducts(ctx context.Context, bearer string) ([]model.Product, error)
	GetProduct(ctx context.Context, bearer, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, bearer string, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, bearer, id string, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, bearer, id string) error
}

// Orders exposes the store API's order collection. Trends returns the raw
// aggregation payload; shaping is the insights service's concern.
type Orders interface {
	ListOrders(ctx context.Context, bearer string) ([]model.Order, error)
	ListOrdersByUser(ctx context.Context, bearer, userID string) ([]model.Order, error)
	CreateOrder(ctx context.Context, bearer string, req model.CreateOrderRequest) (*model.Order, error)
	DeleteOrder(ctx context.Context, bearer, id string) error
	OrderTrends(ctx context.Context, bearer string) (json.RawMessage, error)
}

// Stock exposes the store API's historical stock records.
type Stock interface {
	StockHistory(ctx context.Context, bearer string) ([]model.StockSnapshot, error)
}
