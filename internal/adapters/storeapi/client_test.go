package storeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	apperrors "github.com/bookstand/store-ui-api/internal/errors"
)

func TestNewClient_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "bad scheme", baseURL: "ftp://store.example.com"},
		{name: "missing host", baseURL: "http://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(Options{BaseURL: tt.baseURL})
			require.Error(t, err)
		})
	}
}

func TestClient_ForwardsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Product{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ListProducts(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
		wantMsg  string
	}{
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"message":"no such product"}`,
			wantCode: apperrors.ErrCodeNotFound,
			wantMsg:  "no such product",
		},
		{
			name:     "conflict",
			status:   http.StatusConflict,
			wantCode: apperrors.ErrCodeConflict,
		},
		{
			name:     "bad request",
			status:   http.StatusBadRequest,
			body:     `{"message":"price must be positive"}`,
			wantCode: apperrors.ErrCodeValidation,
			wantMsg:  "price must be positive",
		},
		{
			name:     "expired bearer",
			status:   http.StatusUnauthorized,
			wantCode: apperrors.ErrCodeUnauthenticated,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			wantCode: apperrors.ErrCodeForbidden,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			wantCode: apperrors.ErrCodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.GetProduct(context.Background(), "tok", "p1")
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.ListProducts(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstream))
}

func TestClient_UserRoundTrip(t *testing.T) {
	record := model.UserRecord{Sub: "sub-1", Name: "Ada", Email: "ada@example.com"}

	var created model.UserRecord
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/sub-1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(record)
	})
	mux.HandleFunc("POST /users/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	got, err := client.GetUser(context.Background(), "tok", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, &record, got)

	require.NoError(t, client.CreateUser(context.Background(), "tok", record))
	assert.Equal(t, record, created)
}

func TestClient_CreateProduct_ValidatesBeforeSending(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.CreateProduct(context.Background(), "tok", model.CreateProductRequest{Price: 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
	assert.False(t, called, "invalid request must not reach the store API")
}

func TestClient_OrderTrends_RawPassthrough(t *testing.T) {
	payload := `{"daily":[{"date":"2026-08-30","total":120.5}],"top_products":["p1","p2"]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/trends/", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	raw, err := client.OrderTrends(context.Background(), "tok")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Options{BaseURL: baseURL})
	require.NoError(t, err)
	return client
}
