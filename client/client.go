// Package client is a typed Go client for the Herbsera REST API.
//
// Every call unwraps the {success, message, data, pagination} envelope and
// returns the decoded data. Non-2xx responses surface as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/herbsera/herbsera-backend/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("herbsera api: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T
	Pagination models.Pagination
}

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

// Client talks to one Herbsera API base URL, e.g. http://localhost:8080/api.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string

	Auth     *AuthService
	Products *ProductsService
	Cart     *CartService
	Orders   *OrdersService
	Reviews  *ReviewsService
	Users    *UsersService
	Admin    *AdminService
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken starts the client with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Products = &ProductsService{c: c}
	c.Cart = &CartService{c: c}
	c.Orders = &OrdersService{c: c}
	c.Reviews = &ReviewsService{c: c}
	c.Users = &UsersService{c: c}
	c.Admin = &AdminService{c: c}
	return c
}

// Token returns the current bearer token, empty when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// LoggedIn reports whether a token is held.
func (c *Client) LoggedIn() bool {
	return c.Token() != ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs the request and returns the raw response for 2xx statuses.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var env envelope
	if raw, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(raw, &env) == nil && env.Message != "" {
		apiErr.Message = env.Message
	}
	return nil, apiErr
}

// do sends a JSON request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*models.Pagination, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return nil, err
	}
	return c.decode(req, out)
}

func (c *Client) decode(req *http.Request, out any) (*models.Pagination, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

// download fetches a binary body such as an invoice PDF.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func list[T any](ctx context.Context, c *Client, path string, query url.Values) (*Page[T], error) {
	var items []T
	meta, err := c.do(ctx, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if meta != nil {
		page.Pagination = *meta
	}
	return page, nil
}

// ListOptions are the page and limit shared by paginated endpoints.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", fmt.Sprint(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", fmt.Sprint(o.Limit))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
