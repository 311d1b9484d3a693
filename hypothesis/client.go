package hypothesis

import (
	"net/http"
	"strings"
	"time"

	"github.com/ncobase/annofetch/config"
	"github.com/ncobase/annofetch/version"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the Hypothesis search API
type Client struct {
	endpoint   string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the search URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds every request; zero leaves requests unbounded
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient returns a client for the public Hypothesis API
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:  config.DefaultEndpoint,
		userAgent: version.UserAgent(),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// NewClientFromConfig builds a client from the api section of the config
func NewClientFromConfig(cfg *config.API, opts ...Option) *Client {
	base := []Option{
		WithEndpoint(cfg.Endpoint),
		WithUserAgent(cfg.UserAgent),
		WithTimeout(cfg.Timeout),
	}
	return NewClient(append(base, opts...)...)
}

// Endpoint returns the search URL in use
func (c *Client) Endpoint() string {
	return c.endpoint
}
