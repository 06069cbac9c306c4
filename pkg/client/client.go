// Package client is the Go SDK for the user-service REST API. A single
// Client carries the session token into every request and reacts to
// authentication failures; AuthService and UserService are thin typed facades
// over it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/atulsm/user-service/pkg/client/session"
	"github.com/atulsm/user-service/pkg/constant"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// Config assembles a Client. Zero values get working defaults: an in-memory
// token store, a plain http.Client, and a nop logger.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      session.Store

	// Navigate is invoked with the login route whenever a 401 response
	// invalidates the session. Optional.
	Navigate func(route string)

	Logger *zap.Logger
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	navigate   func(route string)
	logger     *zap.Logger
}

func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No client-imposed deadline; cancellation comes from the caller's
		// context.
		httpClient = &http.Client{}
	}
	store := cfg.Store
	if store == nil {
		store = session.NewMemoryStore()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
		navigate:   cfg.Navigate,
		logger:     logger,
	}
}

// Store exposes the session store backing this client.
func (c *Client) Store() session.Store {
	return c.store
}

// authExempt paths never trigger the 401 session teardown: a rejected
// credential must not clear an unrelated token or yank the caller away from
// the login flow.
func authExempt(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

// do issues one request. The outbound hook attaches the stored bearer token;
// the inbound hook tears the session down on 401 (except for auth-exempt
// paths) before propagating the error to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, ok := c.store.Get(); ok {
		req.Header.Set(constant.AuthorizationHeader, constant.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}

	if resp.StatusCode == http.StatusUnauthorized && !authExempt(path) {
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("failed to clear session token", zap.Error(err))
		}
		if c.navigate != nil {
			c.navigate(constant.LoginRoute)
		}
	}

	return apiErr
}

// errorMessage pulls the backend-supplied message out of an error body,
// falling back to the generic status text.
func errorMessage(data []byte, statusCode int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(statusCode)
}

// String returns a pointer to v. Convenience for building partial updates.
func String(v string) *string {
	return &v
}
