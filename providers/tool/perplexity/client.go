package perplexity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/leofalp/perplexity-mcp/internal/utils"
	"github.com/leofalp/perplexity-mcp/providers/observability"
)

const (
	DefaultBaseURL       = "https://api.perplexity.ai"
	DefaultSearchTimeout = 30 * time.Second
	DefaultChatTimeout   = 60 * time.Second
	DefaultUserAgent     = "perplexity-mcp"

	searchPath = "/search"
	chatPath   = "/chat/completions"
)

// ErrMissingAPIKey is returned by [NewClient] when no API key is given.
var ErrMissingAPIKey = errors.New("perplexity: API key is required")

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("perplexity %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client sends requests to the Perplexity API. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	searchTimeout time.Duration
	chatTimeout   time.Duration
	models        Models
	userAgent     string
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the API base URL. A trailing slash is ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeouts overrides the per-request timeouts. Non-positive values keep
// the defaults.
func WithTimeouts(search, chat time.Duration) Option {
	return func(c *Client) {
		if search > 0 {
			c.searchTimeout = search
		}
		if chat > 0 {
			c.chatTimeout = chat
		}
	}
}

// WithModels overrides the model identifiers. Empty fields keep the defaults.
func WithModels(models Models) Option {
	return func(c *Client) {
		if models.Standard != "" {
			c.models.Standard = models.Standard
		}
		if models.Deep != "" {
			c.models.Deep = models.Deep
		}
	}
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:        apiKey,
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{},
		searchTimeout: DefaultSearchTimeout,
		chatTimeout:   DefaultChatTimeout,
		models:        DefaultModels(),
		userAgent:     DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) search(ctx context.Context, payload map[string]any) (*searchAPIResponse, error) {
	return post[searchAPIResponse](ctx, c, searchPath, c.searchTimeout, payload)
}

func (c *Client) chat(ctx context.Context, payload map[string]any) (*ChatResponse, error) {
	return post[ChatResponse](ctx, c, chatPath, c.chatTimeout, payload)
}

// post makes exactly one request bounded by timeout.
func post[T any](ctx context.Context, c *Client, path string, timeout time.Duration, payload map[string]any) (*T, error) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrProviderEndpoint, path))
		if model, ok := payload["model"].(string); ok {
			span.SetAttributes(observability.String(observability.AttrProviderModel, model))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, out, err := utils.DoPostSync[T](ctx, c.httpClient, c.baseURL+path, c.apiKey, payload,
		utils.HeaderOption{Key: "User-Agent", Value: c.userAgent},
	)
	if err != nil {
		var statusErr *utils.HTTPStatusError
		if errors.As(err, &statusErr) {
			return nil, &APIError{Endpoint: path, StatusCode: statusErr.StatusCode, Body: statusErr.Body}
		}
		return nil, err
	}
	return out, nil
}
