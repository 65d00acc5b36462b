// Package client provides a typed HTTP client for the leaderboard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/services/session"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the client's token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token
func (c *Client) Token() string {
	return c.token
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

// do performs an HTTP request and decodes the response into result.
// The returned *http.Response has a drained, closed body; it is only
// useful for headers and cookies.
func (c *Client) do(ctx context.Context, method, path string, body, result any) (*http.Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return nil, fmt.Errorf("%s", errResp.Error.String())
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return resp, nil
}

// Login exchanges a passcode for a session. The token from the session
// cookie is retained on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, pass string) (string, error) {
	var result response.LoginResponse
	resp, err := c.do(ctx, http.MethodPost, "/api/admin/login", map[string]string{"passcode": pass}, &result)
	if err != nil {
		return "", err
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			c.token = cookie.Value
			return result.Role, nil
		}
	}
	return "", fmt.Errorf("login response did not set a session cookie")
}

// Logout ends the session and clears the retained token
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Players fetches the leaderboard. A limit of 0 uses the server default.
func (c *Client) Players(ctx context.Context, limit int) ([]response.Player, error) {
	path := "/api/public/players"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var result response.PlayersResponse
	if _, err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Players, nil
}

// State fetches the scoring lock state
func (c *Client) State(ctx context.Context) (*response.AppState, error) {
	var result response.AppState
	if _, err := c.do(ctx, http.MethodGet, "/api/state", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Score applies a delta to a player's total
func (c *Client) Score(ctx context.Context, playerID string, delta int) (*response.Player, error) {
	body := map[string]any{"player_id": playerID, "delta": delta}

	var result response.ScoreResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/score", body, &result); err != nil {
		return nil, err
	}
	return &result.Player, nil
}

// CreatePlayer registers a new player with a zero score
func (c *Client) CreatePlayer(ctx context.Context, displayName string) (*response.Player, error) {
	body := map[string]string{"display_name": displayName}

	var result response.Player
	if _, err := c.do(ctx, http.MethodPost, "/api/players", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetLock locks or unlocks scoring (dictator only)
func (c *Client) SetLock(ctx context.Context, locked bool) (*response.AppState, error) {
	path := "/api/lock"
	if !locked {
		path = "/api/unlock"
	}

	var result response.AppState
	if _, err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks server liveness
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil, nil)
	return err
}
