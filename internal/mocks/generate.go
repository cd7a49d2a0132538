// Package mocks provides mock implementations for testing the store UI API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the upstream store API port interfaces. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	directory := mocks.NewMockUserDirectory(ctrl)
//	directory.EXPECT().GetUser(gomock.Any(), "bearer", "sub").Return(nil, apperrors.NotFound("no user"))
package mocks

// Generate mock for UserDirectory interface from internal/ports package.
// This creates MockUserDirectory with methods: GetUser, CreateUser
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_directory_mock.go github.com/bookstand/store-ui-api/internal/ports UserDirectory

// Generate mock for Catalog interface from internal/ports package.
// This creates MockCatalog with methods: ListProducts, GetProduct, CreateProduct, UpdateProduct, DeleteProduct
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=catalog_mock.go github.com/bookstand/store-ui-api/internal/ports Catalog

// Generate mock for Orders interface from internal/ports package.
// This creates MockOrders with methods: ListOrders, ListOrdersByUser, CreateOrder, DeleteOrder, OrderTrends
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=orders_mock.go github.com/bookstand/store-ui-api/internal/ports Orders

// Generate mock for Stock interface from internal/ports package.
// This creates MockStock with methods: StockHistory
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=stock_mock.go github.com/bookstand/store-ui-api/internal/ports Stock
