package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 60 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
//
// Body holds the raw response body so callers can surface the server's own
// error message.
type StatusError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// IsStatus reports whether err is a StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Client sends JSON requests to the planner backend.
//
// Client provides:
//   - Base URL resolution for relative paths
//   - A fixed User-Agent header
//   - Timeout handling
//   - JSON encoding of request bodies and decoding of responses
//
// Example usage:
//
//	client := NewClient("http://localhost:5000", "modplan", 30*time.Second)
//
//	var out loginResponse
//	err := client.PostJSON(ctx, "/api/auth/login", loginRequest{...}, &out)
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a client for baseURL. A non-positive timeout falls back
// to DefaultTimeout.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// BaseURL returns the server root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// GetJSON performs a GET request and decodes the JSON body into out.
//
// Example:
//
//	var plan planResponse
//	err := client.GetJSON(ctx, "/api/plans/"+userID, &plan)
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostJSON encodes in as the request body and decodes the JSON response
// into out. A nil out discards the response.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return body, nil
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
