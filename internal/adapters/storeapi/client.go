package storeapi

// Package storeapi is the HTTP client for the upstream store REST API. The
// store API owns all catalog, order, stock, and user-record state; this
// service only proxies on behalf of the signed-in session, forwarding the
// session's bearer token on every call.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/bookstand/store-ui-api/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Options groups dependencies for Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client // Optional, defaults to a 15s-timeout client
	Logger     *slog.Logger // Optional: structured logger
}

// Client talks to the store API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the base URL and constructs a client.
func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid store API URL scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return nil, errors.New("invalid store API URL: missing host")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "storeapi_client")
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// errorEnvelope is the store API's error response shape.
type errorEnvelope struct {
	Message string `json:"message"`
}

// do performs one store API call. A non-nil body is sent as JSON; a non-nil
// out receives the decoded response body. Error responses are mapped onto
// the application error taxonomy so handlers can render them uniformly.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Upstream(fmt.Sprintf("store API unreachable (%s %s)", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			return apperrors.Upstream(fmt.Sprintf("decode %s %s response", method, path), decErr)
		}
		return nil
	}

	appErr := c.mapStatus(resp, method, path)
	if c.logger != nil {
		c.logger.DebugContext(ctx, "store API error response",
			"method", method, "path", path, "status", resp.StatusCode, "code", apperrors.CodeOf(appErr))
	}
	return appErr
}

func (c *Client) mapStatus(resp *http.Response, method, path string) error {
	msg := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return apperrors.NotFound(msg)
	case http.StatusConflict:
		if msg == "" {
			msg = "resource already exists"
		}
		return apperrors.Conflict(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "the store API rejected the request"
		}
		return apperrors.Validation(msg)
	case http.StatusUnauthorized:
		// The bearer token is no longer accepted upstream; the session must
		// be re-established.
		return apperrors.Unauthenticated("store API rejected the session credentials")
	case http.StatusForbidden:
		return apperrors.Forbidden("store API denied access to this resource")
	default:
		return apperrors.Upstream(
			fmt.Sprintf("store API returned %d (%s %s)", resp.StatusCode, method, path), nil)
	}
}

func readErrorMessage(r io.Reader) string {
	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&env); err != nil {
		return ""
	}
	return env.Message
}
