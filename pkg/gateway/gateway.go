package gateway

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

	"github.com/google/uuid"
)

// Config holds the base URLs of the platform services consumed by the client.
type Config struct {
	AuthURL         string
	UserURL         string
	OrderURL        string
	RestaurantURL   string
	NotificationURL string

	// Timeout bounds every request. Zero means 15 seconds.
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AuthURL == "" || c.UserURL == "" || c.OrderURL == "" || c.RestaurantURL == "" {
		return fmt.Errorf("%w: missing service URL", ErrInvalidRequest)
	}
	return nil
}

// Client is a typed HTTP client for the food-delivery platform services.
// All methods are stateless; the bearer credential is passed per call.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new platform client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return c.config
}

// doJSON performs a JSON request and decodes the response into out (when
// out is non-nil). A 204 response leaves out untouched.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload interface{}, credential string, out interface{}) error {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, credential, out)
}

// doForm performs an application/x-www-form-urlencoded request (the auth
// service login endpoint expects form encoding).
func (c *Client) doForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, "", out)
}

func (c *Client) send(req *http.Request, credential string, out interface{}) error {
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode >= 400 {
		return mapStatusError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func mapStatusError(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, status, detail)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: status %d: %s", ErrNotFound, status, detail)
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrInvalidRequest, status, detail)
	}
}
