package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/majnugame/majnu-go/internal/api/middleware"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client

	// onIdentity is called when the server mints or replaces the identity
	// cookie, so the new ID can be persisted.
	onIdentity func(userID string)
}

// NewClient creates a new API client
func NewClient(baseURL, userID string, onIdentity func(string)) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		onIdentity: onIdentity,
	}
}

// UserID returns the client's current identity
func (c *Client) UserID() string {
	return c.userID
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.userID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: c.userID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.captureIdentity(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// captureIdentity picks up a minted or replaced identity cookie
func (c *Client) captureIdentity(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != middleware.CookieName || cookie.Value == "" {
			continue
		}
		if cookie.Value == c.userID {
			continue
		}
		c.userID = cookie.Value
		if c.onIdentity != nil {
			c.onIdentity(cookie.Value)
		}
	}
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}
