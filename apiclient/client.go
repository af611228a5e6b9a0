// Package apiclient is the HTTP adapter for the remote barbershop API. It keeps the
// session's bearer credential as a default header and reports server-side
// "unauthenticated" responses to whoever subscribed.
package apiclient

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

	"github.com/jrsteele09/go-barber-client/internal/errors"
)

const (
	contentTypeJSON = "application/json"
	defaultTimeout  = 10 * time.Second
)

// Client talks to the remote API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string

	hooksMu sync.Mutex
	hooks   []func()

	Auth         *AuthService
	Barbershops  *BarbershopService
	Services     *ServiceService
	Barbers      *BarberService
	Appointments *AppointmentService
	WorkingHours *WorkingHourService
	Customers    *CustomerService
	Favorites    *FavoriteService
	Profile      *ProfileService
	Dashboard    *DashboardService
}

type Option func(*Client)

// WithTimeout overrides the default 10 second request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTransport replaces the underlying round tripper (the auth layer still wraps it).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = &authTransport{base: rt, client: c}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[apiclient New] invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	c.http.Transport = &authTransport{base: http.DefaultTransport, client: c}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c}
	c.Barbershops = &BarbershopService{c}
	c.Services = &ServiceService{c}
	c.Barbers = &BarberService{c}
	c.Appointments = &AppointmentService{c}
	c.WorkingHours = &WorkingHourService{c}
	c.Customers = &CustomerService{c}
	c.Favorites = &FavoriteService{c}
	c.Profile = &ProfileService{c}
	c.Dashboard = &DashboardService{c}
	return c, nil
}

// SetAuthToken installs the default bearer credential. An empty token removes it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthenticated registers fn to run whenever the server answers 401.
func (c *Client) OnUnauthenticated(fn func()) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, fn)
}

func (c *Client) unauthenticated() {
	c.hooksMu.Lock()
	hooks := make([]func(), len(c.hooks))
	copy(hooks, c.hooks)
	c.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (c *Client) endpoint(p string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(p, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends a JSON request and decodes a JSON response into out (if not nil).
func (c *Client) do(ctx context.Context, method, p string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[apiclient %s %s] marshal", method, p)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(p, query), reader)
	if err != nil {
		return errors.Wrapf(err, "[apiclient %s %s] request", method, p)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[apiclient %s %s]", method, p)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[apiclient %s %s] read body", method, p)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "[apiclient %s %s] decode", method, p)
	}
	return nil
}

// envelope is the {"data": ...} wrapper the API puts around resources.
type envelope[T any] struct {
	Data T `json:"data"`
}

func getData[T any](ctx context.Context, c *Client, p string, query url.Values) (T, error) {
	var env envelope[T]
	err := c.do(ctx, http.MethodGet, p, query, nil, &env)
	return env.Data, err
}

func sendData[T any](ctx context.Context, c *Client, method, p string, body any) (T, error) {
	var env envelope[T]
	err := c.do(ctx, method, p, nil, body, &env)
	return env.Data, err
}

func shopPath(barbershopID string, parts ...string) string {
	segments := []string{"barbershops", url.PathEscape(barbershopID)}
	for _, part := range parts {
		segments = append(segments, url.PathEscape(part))
	}
	return "/" + strings.Join(segments, "/")
}
