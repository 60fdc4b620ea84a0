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
	"sync"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates baseURL and returns a client whose requests time
// out after timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("server url must be http(s)://host[:port], got %q", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// do sends body as JSON and decodes a 2xx JSON answer into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		if token := c.token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return newAPIError(resp.StatusCode, eb.Message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*User, error) {
	req := map[string]string{"name": name, "email": email, "password": string(password)}
	var u User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	req := map[string]string{"email": email, "password": string(password)}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrServer)
	}
	c.setToken(resp.AccessToken)
	return nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser sends only the fields supplied: a nil name or password is left out.
func (c *HTTPClient) UpdateUser(ctx context.Context, id string, name *string, password []byte) (*User, error) {
	req := map[string]string{}
	if name != nil {
		req["name"] = *name
	}
	if password != nil {
		req["password"] = string(password)
	}
	var u User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), req, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, true)
}

// Logout forgets the access token. Tokens are stateless, so nothing is sent.
func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) IsLoggedIn() bool {
	return c.token() != ""
}

// Ping calls the health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}
