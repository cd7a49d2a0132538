package httpx

import (
	"net/http"
)

// View name constants identify the client-side views this service resolves
// routes to. The frontend shell renders whichever view the payload names.
const (
	ViewDashboard       = "dashboard"
	ViewUserHome        = "user-home"
	ViewProducts        = "products"
	ViewAddProduct      = "add-product"
	ViewEditProduct     = "edit-product"
	ViewHistoricalStock = "historical-stock"
	ViewOrders          = "orders"
	ViewUserOrders      = "user-orders"
	ViewLogin           = "login"
	ViewSignup          = "signup"
	ViewNotFound        = "not-found"
)

// ViewRoute declares one protected navigation entry: a path plus the pair
// of handlers the resolver picks between. Both handlers are mandatory; the
// registration loop panics on a nil one so a partially-declared route can
// never reach the resolver.
type ViewRoute struct {
	Path      string
	AdminView http.Handler
	UserView  http.Handler
}

// ResolveView returns the route's admin or user handler. This is the whole
// resolution rule: one binary branch on the session's role, nothing else.
func ResolveView(route ViewRoute, isAdmin bool) http.Handler {
	if isAdmin {
		return route.AdminView
	}
	return route.UserView
}

// resolveHandler adapts a ViewRoute into an http.Handler that resolves
// against the session already placed in the request context by the guard.
func resolveHandler(route ViewRoute) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		isAdmin := session != nil && session.IsAdmin()
		ResolveView(route, isAdmin).ServeHTTP(w, r)
	})
}

// viewRoutes declares the protected navigation surface. Admin-facing paths
// fall back to the user home view for non-admins; the user orders path
// falls back to the dashboard for admins, mirroring how the storefront
// shell links each audience.
func viewRoutes(h *ViewHandlers) []ViewRoute {
	dashboard := http.HandlerFunc(h.Dashboard)
	userHome := http.HandlerFunc(h.UserHome)

	return []ViewRoute{
		{Path: "/dashboard", AdminView: dashboard, UserView: userHome},
		{Path: "/home", AdminView: dashboard, UserView: userHome},
		{Path: "/products", AdminView: http.HandlerFunc(h.Products), UserView: userHome},
		{Path: "/add-product", AdminView: http.HandlerFunc(h.AddProduct), UserView: userHome},
		{Path: "/edit-product", AdminView: http.HandlerFunc(h.EditProduct), UserView: userHome},
		{Path: "/historical-stock", AdminView: http.HandlerFunc(h.HistoricalStock), UserView: userHome},
		{Path: "/orders", AdminView: http.HandlerFunc(h.AllOrders), UserView: userHome},
		{Path: "/user-orders", AdminView: dashboard, UserView: http.HandlerFunc(h.UserOrders)},
	}
}

// registerViewRoutes wires every protected route through the guard and the
// resolver. A route with a missing view is a programming error and fails
// startup.
func registerViewRoutes(mux *http.ServeMux, routes []ViewRoute, guard func(http.Handler) http.Handler) {
	for _, route := range routes {
		if route.Path == "" {
			panic("registerViewRoutes: empty path") //nolint:forbidigo // Fail fast during server setup.
		}
		if route.AdminView == nil || route.UserView == nil {
			panic("registerViewRoutes: nil view for path " + route.Path) //nolint:forbidigo // Fail fast during server setup.
		}
		mux.Handle("GET "+route.Path, guard(resolveHandler(route)))
	}
}
