// Package apiclient is the HTTP client for the property-management backend.
//
// One Client wraps the base URL, default headers and a request timeout, and
// exposes the backend's resources as method groups (Auth, Users, Rooms,
// QualityIssues, Communications, Admin, Customers, Files).
//
// Two hooks run on every call:
//   - before sending, the persisted token is read from the TokenStore and
//     attached as "Authorization: Bearer <token>"; no token means no header.
//   - after a 401, the persisted token is deleted and every OnUnauthorized
//     observer is notified. Reacting to it (resetting the session, sending the
//     user to the login page) belongs to the caller.
//
// Non-2xx responses come back as *APIError and transport failures as
// *TransportError. Nothing is retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
	"github.com/kekeqingke/Project-Dashboard/internal/metrics"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 60 * time.Second

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 32 << 20

	headerRequestID = "X-Request-ID"
)

// UnauthorizedFunc observes 401 responses. It runs synchronously on the
// goroutine that issued the request, after the persisted token was removed.
type UnauthorizedFunc func(ctx context.Context, err *APIError)

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	headers    http.Header
	tokens     ports.TokenStore
	log        zerolog.Logger

	mu           sync.RWMutex
	unauthorized []UnauthorizedFunc

	Auth           *AuthAPI
	Users          *UsersAPI
	Rooms          *RoomsAPI
	QualityIssues  *QualityIssuesAPI
	Communications *CommunicationsAPI
	Admin          *AdminAPI
	Customers      *CustomersAPI
	Files          *FilesAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. WithTimeout is ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenStore sets where the bearer token is read from and removed on 401.
func WithTokenStore(store ports.TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		headers: http.Header{"Accept": []string{"application/json"}},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	c.Auth = &AuthAPI{client: c}
	c.Users = &UsersAPI{client: c}
	c.Rooms = &RoomsAPI{client: c}
	c.QualityIssues = &QualityIssuesAPI{client: c}
	c.Communications = &CommunicationsAPI{client: c}
	c.Admin = &AdminAPI{client: c}
	c.Customers = &CustomersAPI{client: c}
	c.Files = &FilesAPI{client: c}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// OnUnauthorized registers an observer for 401 responses.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	c.unauthorized = append(c.unauthorized, fn)
	c.mu.Unlock()
}

// Ping checks that the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: http.MethodGet, Path: "/", Err: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	return resp.Body.Close()
}

// call describes one backend request.
type call struct {
	method string
	// route is the path template used as a metrics label.
	route       string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
}

func (c *Client) do(ctx context.Context, in call) (*Response, error) {
	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, in.body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", in.method, in.path, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if in.accept != "" {
		req.Header.Set("Accept", in.accept)
	}
	if in.contentType != "" {
		req.Header.Set("Content-Type", in.contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	metrics.APIRequestDuration.WithLabelValues(in.method, in.route).Observe(elapsed.Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(in.method, in.route, "error").Inc()
		c.log.Warn().Err(err).
			Str("method", in.method).
			Str("path", in.path).
			Str("request_id", requestID).
			Msg("backend request failed")
		return nil, &TransportError{Method: in.method, Path: in.path, Err: err}
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(in.method, in.route, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Method: in.method, Path: in.path, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug().
		Str("method", in.method).
		Str("path", in.path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Str("request_id", requestID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     in.method,
			Path:       in.path,
			Detail:     parseDetail(body),
			Body:       body,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx, apiErr)
		}
		return nil, apiErr
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// authorize attaches the persisted token, if any. A store failure only costs
// the header; the request still goes out.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			c.log.Warn().Err(err).Msg("load persisted token")
		}
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleUnauthorized(ctx context.Context, apiErr *APIError) {
	metrics.APIUnauthorizedTotal.Inc()
	if c.tokens != nil {
		if err := c.tokens.Delete(ctx); err != nil {
			c.log.Error().Err(err).Msg("remove persisted token after 401")
		}
	}

	c.log.Info().
		Str("method", apiErr.Method).
		Str("path", apiErr.Path).
		Msg("backend rejected credentials, persisted token removed")

	c.mu.RLock()
	observers := make([]UnauthorizedFunc, len(c.unauthorized))
	copy(observers, c.unauthorized)
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(ctx, apiErr)
	}
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, route: route, path: path, query: query})
}

func (c *Client) delete(ctx context.Context, route, path string) (*Response, error) {
	return c.do(ctx, call{method: http.MethodDelete, route: route, path: path})
}

// sendJSON issues a request whose body is v encoded as JSON; a nil v sends
// no body.
func (c *Client) sendJSON(ctx context.Context, method, route, path string, query url.Values, v any) (*Response, error) {
	in := call{method: method, route: route, path: path, query: query}
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		in.body = bytes.NewReader(data)
		in.contentType = "application/json"
	}
	return c.do(ctx, in)
}
