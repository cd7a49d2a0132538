package httpx

import (
	"log/slog"
	"net/http"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// DataHandlers serves the /api/ surface: a thin, session-scoped proxy in
// front of the store API. Every call forwards the session's bearer token;
// no handler accepts a token from the client.
type DataHandlers struct {
	Catalog  ports.Catalog
	Orders   ports.Orders
	Stock    ports.Stock
	Insights InsightsServiceInterface
	Logger   *slog.Logger
}

func requireSessionOrError(w http.ResponseWriter, r *http.Request) *sessionScope {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return nil
	}
	return &sessionScope{bearer: session.BearerToken, sub: session.Sub}
}

type sessionScope struct {
	bearer string
	sub    string
}

// ListProducts returns the catalog. Available to every signed-in user.
func (h *DataHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	products, err := h.Catalog.ListProducts(r.Context(), scope.bearer)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetProduct returns one product by path ID.
func (h *DataHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	product, err := h.Catalog.GetProduct(r.Context(), scope.bearer, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// CreateProduct adds a catalog entry. Admin only; enforced at routing.
func (h *DataHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	var req model.CreateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	product, err := h.Catalog.CreateProduct(r.Context(), scope.bearer, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a catalog entry. Admin only.
func (h *DataHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	var req model.UpdateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	product, err := h.Catalog.UpdateProduct(r.Context(), scope.bearer, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a catalog entry. Admin only.
func (h *DataHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	if err := h.Catalog.DeleteProduct(r.Context(), scope.bearer, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// ListOrders returns every order in the store. Admin only.
func (h *DataHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	orders, err := h.Orders.ListOrders(r.Context(), scope.bearer)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// MyOrders returns the caller's own orders. The subject comes from the
// session, never from the request.
func (h *DataHandlers) MyOrders(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	orders, err := h.Orders.ListOrdersByUser(r.Context(), scope.bearer, scope.sub)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// CreateOrder places an order for the signed-in user. Any user_id in the
// body is overwritten with the session subject.
func (h *DataHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	var req model.CreateOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.UserID = scope.sub
	order, err := h.Orders.CreateOrder(r.Context(), scope.bearer, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

// DeleteOrder cancels an order. Admin only.
func (h *DataHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	if err := h.Orders.DeleteOrder(r.Context(), scope.bearer, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// OrderTrends returns the shaped order trend series. Admin only.
func (h *DataHandlers) OrderTrends(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	trends, err := h.Insights.Trends(r.Context(), scope.bearer)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, trends)
}

// DashboardSummary returns the aggregated store summary. Admin only.
func (h *DataHandlers) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	summary, err := h.Insights.Summary(r.Context(), scope.bearer)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "summary aggregation failed", slog.Any("error", err))
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// StockHistory returns historical stock records. Admin only.
func (h *DataHandlers) StockHistory(w http.ResponseWriter, r *http.Request) {
	scope := requireSessionOrError(w, r)
	if scope == nil {
		return
	}
	history, err := h.Stock.StockHistory(r.Context(), scope.bearer)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"history": history})
}
