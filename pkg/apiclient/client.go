// Package apiclient is a Go client for the notsofluffy REST API. It attaches
// the session and bearer headers, retries a request exactly once after a
// silent token refresh on 401, and surfaces the server's error messages.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL  = "http://localhost:8080"
	sessionIDHeader = "X-Session-ID"
)

var (
	// ErrSessionExpired means the refresh token was rejected; the caller
	// must log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is a non-2xx response decoded from the server's error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the notsofluffy API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	sessionID    string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New builds a client. The base URL comes from NOTSOFLUFFY_API_URL when set,
// falling back to localhost.
func New(opts ...Option) *Client {
	baseURL := os.Getenv("NOTSOFLUFFY_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokens installs a token pair, e.g. after login through the client
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// ClearTokens drops stored credentials
func (c *Client) ClearTokens() {
	c.SetTokens("", "")
}

// SetSessionID installs the cart session UUID sent with every request
func (c *Client) SetSessionID(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
}

// SessionID returns the current cart session UUID, which may have been
// assigned by the server on the first cart request.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Authenticated reports whether the client holds an access token
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// TotalPages converts a list response's total/limit into a page count
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

// isAuthPath reports whether a path belongs to the auth endpoints. A 401
// from login, register, refresh or logout means the credentials themselves
// were rejected, so a silent refresh-and-retry must never fire there.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

// do runs one request. On a 401 from a non-auth endpoint it refreshes the
// token pair and retries the original request exactly once; a second 401 is
// returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) && c.refreshTokens(ctx) {
		resp.Body.Close()
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	return c.decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.captureSessionID(resp)
	return resp, nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	if c.sessionID != "" {
		req.Header.Set(sessionIDHeader, c.sessionID)
	}
}

// captureSessionID adopts the session the server issued for guest carts
func (c *Client) captureSessionID(resp *http.Response) {
	sessionID := resp.Header.Get(sessionIDHeader)
	if sessionID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
}

// refreshTokens swaps the refresh token for a new pair. Returns false when
// there is nothing to refresh or the server rejected the token; in that case
// stored credentials are cleared so the next call fails fast.
func (c *Client) refreshTokens(ctx context.Context) bool {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()
	if refreshToken == "" {
		return false
	}

	payload, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.ClearTokens()
		return false
	}

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		c.ClearTokens()
		return false
	}

	c.SetTokens(tokens.AccessToken, tokens.RefreshToken)
	return true
}

func (c *Client) decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Message = envelope.Error
			apiErr.Code = envelope.Code
		}
		if resp.StatusCode == http.StatusUnauthorized && !c.Authenticated() {
			return ErrSessionExpired
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// UploadFile sends a multipart upload, used for the admin image library.
// The same single-retry-on-401 rule applies.
func (c *Client) UploadFile(ctx context.Context, path, filename, contentType string, content io.Reader) (*Image, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	send := func() (*http.Response, error) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
		header["Content-Type"] = []string{contentType}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		c.setAuthHeaders(req)
		return c.httpClient.Do(req)
	}

	resp, err := send()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && c.refreshTokens(ctx) {
		resp.Body.Close()
		resp, err = send()
		if err != nil {
			return nil, err
		}
	}

	var result struct {
		Image Image `json:"image"`
	}
	if err := c.decode(resp, &result); err != nil {
		return nil, err
	}
	return &result.Image, nil
}
