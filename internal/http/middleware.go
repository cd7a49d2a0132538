package httpx

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser navigations vs
// API requests. Downstream middleware uses it to decide between a login
// redirect and a JSON 401.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is a browser navigation.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is a browser navigation based on:
// 1. Path prefix - /api/ and /auth/ routes are programmatic.
// 2. Accept header - browsers send text/html on navigations.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/auth/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}

	return strings.Contains(accept, "text/html")
}

// RequireSession returns the route guard middleware. It is evaluated on
// every request, never cached: the cookie is read, the session store is
// consulted, and only a live session passes.
// Browser navigations without one are redirected to the login page; the
// requested path is discarded, so a fresh login always lands on the
// role-dependent landing path. API requests get a 401 JSON response.
func RequireSession(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				if IsBrowserRequest(r) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			// Add session to request context
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires a specific role on top of
// a live session. Role checks are distinct from authentication: a signed-in
// user lacking the role gets 403, never a login redirect.
func RequireRole(authSvc AuthServiceInterface, requiredRole domainauth.Role) func(http.Handler) http.Handler {
	requireSession := RequireSession(authSvc)
	return func(next http.Handler) http.Handler {
		return requireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())
			if session == nil || !hasRequiredRole(session.Role, requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	// Get session ID from cookie
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	// Get session from auth service
	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}

	return session
}

// hasRequiredRole checks if the user's role meets the required role.
// Role hierarchy: User < Admin.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	roleHierarchy := map[domainauth.Role]int{
		domainauth.RoleUser:  1,
		domainauth.RoleAdmin: 2,
	}

	userLevel, userExists := roleHierarchy[userRole]
	requiredLevel, requiredExists := roleHierarchy[requiredRole]

	if !userExists || !requiredExists {
		return false
	}

	return userLevel >= requiredLevel
}

// CompressionConfig controls the Compression middleware.
type CompressionConfig struct {
	// Level is the gzip compression level (1-9). Out-of-range values are
	// clamped.
	Level int
}

// Compression returns a middleware that gzips JSON responses when the
// client accepts it. Writers are pooled; only application/json and
// text/plain payloads are compressed since that is all this service emits.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level < gzip.BestSpeed {
		level = gzip.DefaultCompression
	}
	if level > gzip.BestCompression {
		level = gzip.BestCompression
	}
	pool := &sync.Pool{New: func() any {
		gz, _ := gzip.NewWriterLevel(io.Discard, level)
		return gz
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			next.ServeHTTP(gzw, r)
			gzw.close()
		})
	}
}

// gzipResponseWriter wraps http.ResponseWriter to compress the response
// body. Compression is decided at WriteHeader time from the status code and
// Content-Type.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool          *sync.Pool
	gzipWriter    *gzip.Writer
	headerWritten bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	if !compressibleStatus(statusCode) || w.Header().Get("Content-Encoding") != "" {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	if !compressibleContentType(w.Header().Get("Content-Type")) {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	gz, _ := w.pool.Get().(*gzip.Writer)
	gz.Reset(w.ResponseWriter)
	w.gzipWriter = gz
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length") // Length changes after compression
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gzipWriter != nil {
		return w.gzipWriter.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) Flush() {
	if w.gzipWriter != nil {
		_ = w.gzipWriter.Flush()
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *gzipResponseWriter) close() {
	if w.gzipWriter == nil {
		return
	}
	_ = w.gzipWriter.Close()
	w.gzipWriter.Reset(io.Discard)
	w.pool.Put(w.gzipWriter)
	w.gzipWriter = nil
}

func compressibleStatus(statusCode int) bool {
	return statusCode >= 200 &&
		statusCode != http.StatusNoContent &&
		statusCode != http.StatusNotModified
}

func compressibleContentType(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(strings.ToLower(contentType)) {
	case "application/json", "text/plain", "text/html":
		return true
	default:
		return false
	}
}
