// Package client provides a Go client for the SchemaCraft HTTP API.
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
	"time"
)

// Client is the main SchemaCraft client
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	apiKey     string

	// Sub-clients
	Schemas   *SchemaClient
	Documents *DocumentClient
}

// NewClient creates a new SchemaCraft client
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https: %s", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Schemas = &SchemaClient{client: c}
	c.Documents = &DocumentClient{client: c}

	return c, nil
}

// SetAuthToken replaces the dashboard session token
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// SetAPIKey replaces the generated-API key
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// HealthCheck checks if the server is running
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ReadinessCheck checks if the server is ready to serve requests
func (c *Client) ReadinessCheck(ctx context.Context) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/ready", nil, nil)
	if err != nil {
		if apiErr, ok := err.(*Error); ok && apiErr.StatusCode == http.StatusServiceUnavailable {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Signup creates an account and stores the returned session token on the client
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &session); err != nil {
		return nil, err
	}
	c.authToken = session.Token
	return &session, nil
}

// Signin opens a session and stores the returned token on the client
func (c *Client) Signin(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &session); err != nil {
		return nil, err
	}
	c.authToken = session.Token
	return &session, nil
}

// do performs an HTTP request against the API, encoding body as JSON when
// present and decoding a successful response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
