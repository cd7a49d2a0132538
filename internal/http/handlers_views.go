package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
	"github.com/bookstand/store-ui-api/internal/ports"
	"github.com/bookstand/store-ui-api/internal/service"
)

// InsightsServiceInterface defines the aggregation operations the dashboard
// views consume. Implemented by service.InsightsService.
type InsightsServiceInterface interface {
	Summary(ctx context.Context, bearer string) (*service.DashboardSummary, error)
	Trends(ctx context.Context, bearer string) (map[string]any, error)
	StockHistory(ctx context.Context, bearer string) ([]model.StockSnapshot, error)
}

// ViewHandlers serves the protected navigation views. Every handler runs
// behind the route guard, so a session is always present in the request
// context; the upstream bearer comes from that session, never from the
// request itself.
type ViewHandlers struct {
	Insights InsightsServiceInterface
	Catalog  ports.Catalog
	Orders   ports.Orders
	Logger   *slog.Logger
}

// viewResponse is the envelope every view endpoint returns. The frontend
// shell switches on View and renders Data with the signed-in user summary.
type viewResponse struct {
	View string    `json:"view"`
	User *viewUser `json:"user,omitempty"`
	Data any       `json:"data,omitempty"`
}

type viewUser struct {
	Sub     string `json:"sub"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func viewUserFrom(r *http.Request) *viewUser {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		return nil
	}
	return &viewUser{
		Sub:     session.Sub,
		Name:    session.Name,
		Email:   session.Email,
		IsAdmin: session.IsAdmin(),
	}
}

// Dashboard serves the admin landing view with the aggregated store summary.
func (h *ViewHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	summary, err := h.Insights.Summary(r.Context(), session.BearerToken)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "dashboard summary failed", slog.Any("error", err))
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewDashboard, User: viewUserFrom(r), Data: summary})
}

// UserHome serves the shopper landing view: the catalog plus the signed-in
// user's recent orders.
func (h *ViewHandlers) UserHome(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	products, err := h.Catalog.ListProducts(r.Context(), session.BearerToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if len(products) > viewPayloadLimit {
		products = products[:viewPayloadLimit]
	}

	orders, err := h.Orders.ListOrdersByUser(r.Context(), session.BearerToken, session.Sub)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{
		View: ViewUserHome,
		User: viewUserFrom(r),
		Data: map[string]any{
			"products":      products,
			"recent_orders": orders,
		},
	})
}

// Products serves the admin product management view.
func (h *ViewHandlers) Products(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	products, err := h.Catalog.ListProducts(r.Context(), session.BearerToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewProducts, User: viewUserFrom(r), Data: map[string]any{"products": products}})
}

// AddProduct serves the admin product creation form view. The form posts to
// the products API; this endpoint only names the view.
func (h *ViewHandlers) AddProduct(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, viewResponse{View: ViewAddProduct, User: viewUserFrom(r)})
}

// EditProduct serves the admin product edit form view, preloaded with the
// product named by the id query parameter.
func (h *ViewHandlers) EditProduct(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteAppError(w, apperrors.ValidationField("id", "product id is required"))
		return
	}

	product, err := h.Catalog.GetProduct(r.Context(), session.BearerToken, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewEditProduct, User: viewUserFrom(r), Data: map[string]any{"product": product}})
}

// HistoricalStock serves the admin stock history view.
func (h *ViewHandlers) HistoricalStock(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	history, err := h.Insights.StockHistory(r.Context(), session.BearerToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewHistoricalStock, User: viewUserFrom(r), Data: map[string]any{"history": history}})
}

// AllOrders serves the admin view over every order in the store.
func (h *ViewHandlers) AllOrders(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	orders, err := h.Orders.ListOrders(r.Context(), session.BearerToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewOrders, User: viewUserFrom(r), Data: map[string]any{"orders": orders}})
}

// UserOrders serves the shopper's own order history. The subject always
// comes from the session, so one user can never read another's orders.
func (h *ViewHandlers) UserOrders(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteAppError(w, apperrors.Unauthenticated("no active session"))
		return
	}

	orders, err := h.Orders.ListOrdersByUser(r.Context(), session.BearerToken, session.Sub)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, viewResponse{View: ViewUserOrders, User: viewUserFrom(r), Data: map[string]any{"orders": orders}})
}

// Login serves the public login view descriptor.
func (h *ViewHandlers) Login(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, viewResponse{View: ViewLogin})
}

// Signup serves the public signup view descriptor.
func (h *ViewHandlers) Signup(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, viewResponse{View: ViewSignup})
}

// NotFound serves the catch-all response for unmatched paths. The payload
// shape is fixed; it is identical whether or not a session exists.
func (h *ViewHandlers) NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]any{
		"status":  http.StatusNotFound,
		"message": "Not Found",
	})
}
