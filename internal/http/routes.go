package httpx

import (
	"bytes"
	"log"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// RouterServices holds the dependencies the router wires into handlers.
type RouterServices struct {
	Auth     AuthServiceInterface
	Insights InsightsServiceInterface
	Catalog  ports.Catalog
	Orders   ports.Orders
	Stock    ports.Stock

	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter builds the full HTTP surface: the public auth endpoints, the
// guarded view routes, the guarded data API, and a custom 404 for
// everything else.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger.With("component", "auth_handlers"),
	}
	viewHandlers := &ViewHandlers{
		Insights: services.Insights,
		Catalog:  services.Catalog,
		Orders:   services.Orders,
		Logger:   logger.With("component", "view_handlers"),
	}
	dataHandlers := &DataHandlers{
		Catalog:  services.Catalog,
		Orders:   services.Orders,
		Stock:    services.Stock,
		Insights: services.Insights,
		Logger:   logger.With("component", "data_handlers"),
	}

	mux := http.NewServeMux()

	// Health checks bypass auth entirely.
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	registerAuthRoutes(mux, authHandlers)
	registerPublicViewRoutes(mux, viewHandlers)

	guard := RequireSession(services.Auth)
	registerViewRoutes(mux, viewRoutes(viewHandlers), guard)
	registerDataRoutes(mux, dataHandlers, services.Auth)

	handler := &notFoundHandler{
		mux:          mux,
		viewHandlers: viewHandlers,
	}

	return BrowserDetection()(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/session", h.Session)
}

// registerPublicViewRoutes wires the navigation entries reachable without a
// session. The bare root is an alias for the login view.
func registerPublicViewRoutes(mux *http.ServeMux, h *ViewHandlers) {
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("GET /signup", h.Signup)
	mux.HandleFunc("GET /{$}", h.Login)
}

func registerDataRoutes(mux *http.ServeMux, h *DataHandlers, authSvc AuthServiceInterface) {
	session := RequireSession(authSvc)
	admin := RequireRole(authSvc, domainauth.RoleAdmin)

	// Catalog reads are open to every signed-in user; mutations are admin only.
	mux.Handle("GET /api/products", session(http.HandlerFunc(h.ListProducts)))
	mux.Handle("GET /api/products/{id}", session(http.HandlerFunc(h.GetProduct)))
	mux.Handle("POST /api/products", admin(http.HandlerFunc(h.CreateProduct)))
	mux.Handle("PUT /api/products/{id}", admin(http.HandlerFunc(h.UpdateProduct)))
	mux.Handle("DELETE /api/products/{id}", admin(http.HandlerFunc(h.DeleteProduct)))

	mux.Handle("GET /api/orders", admin(http.HandlerFunc(h.ListOrders)))
	mux.Handle("GET /api/orders/mine", session(http.HandlerFunc(h.MyOrders)))
	mux.Handle("POST /api/orders", session(http.HandlerFunc(h.CreateOrder)))
	mux.Handle("DELETE /api/orders/{id}", admin(http.HandlerFunc(h.DeleteOrder)))

	mux.Handle("GET /api/orders/trends", admin(http.HandlerFunc(h.OrderTrends)))
	mux.Handle("GET /api/dashboard/summary", admin(http.HandlerFunc(h.DashboardSummary)))
	mux.Handle("GET /api/stock/history", admin(http.HandlerFunc(h.StockHistory)))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux          *http.ServeMux
	viewHandlers *ViewHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// If the mux didn't handle the request (404), use our custom handler.
	// Handlers that legitimately answer 404 always emit JSON; the mux's own
	// fallback writes text/plain, which is the case we replace.
	if cw.status == http.StatusNotFound && !strings.HasPrefix(cw.header.Get("Content-Type"), "application/json") {
		if h.viewHandlers != nil {
			h.viewHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	// Not a 404: write the captured response
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
