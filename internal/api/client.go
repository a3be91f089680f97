package api

import (
	"fmt"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/supportchat/internal/errors"
)

// httpDoer is the subset of tls_client.HttpClient the agent client needs
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// AgentClient calls the remote support agent over HTTP
type AgentClient struct {
	httpClient httpDoer
	endpoint   string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	profile    profiles.ClientProfile
	logger     zerolog.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*AgentClient)

// WithEndpoint sets the URL agent calls are POSTed to
func WithEndpoint(endpoint string) ClientOption {
	return func(c *AgentClient) {
		c.endpoint = endpoint
	}
}

// WithAPIKey sets the key sent in the x-api-key header
func WithAPIKey(key string) ClientOption {
	return func(c *AgentClient) {
		c.apiKey = key
	}
}

// WithTimeout bounds each call. Zero (the default) waits indefinitely.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *AgentClient) {
		c.timeout = timeout
	}
}

// WithClientProfile selects the TLS fingerprint profile
func WithClientProfile(profile profiles.ClientProfile) ClientOption {
	return func(c *AgentClient) {
		c.profile = profile
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *AgentClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient injects the transport (used by tests)
func WithHTTPClient(client httpDoer) ClientOption {
	return func(c *AgentClient) {
		c.httpClient = client
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *AgentClient) {
		c.logger = logger
	}
}

// NewClient creates a new AgentClient
func NewClient(opts ...ClientOption) (*AgentClient, error) {
	client := &AgentClient{
		profile: profiles.Chrome_120,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.endpoint == "" {
		return nil, apierrors.ErrNoEndpoint
	}

	if client.httpClient == nil {
		// Timeouts are enforced per call through the request context
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(client.profile),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Calls after Close fail.
func (c *AgentClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *AgentClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Endpoint returns the configured agent endpoint
func (c *AgentClient) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-call timeout (0 = none)
func (c *AgentClient) Timeout() time.Duration {
	return c.timeout
}
