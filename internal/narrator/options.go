package narrator

import (
	"net/http"

	"go.uber.org/zap"
)

// Defaults used by NewClient when no option overrides them.
const (
	DefaultEndpoint         = "https://api.anthropic.com/v1/messages"
	DefaultModel            = "claude-sonnet-4-20250514"
	DefaultMaxTokens        = 1024
	DefaultAnthropicVersion = "2023-06-01"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithEndpoint overrides the Messages API URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithModel sets the model name sent with each request.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens caps the length of each narration.
func WithMaxTokens(max int) Option {
	return func(c *Client) { c.maxTokens = max }
}

// WithAnthropicVersion sets the anthropic-version header.
func WithAnthropicVersion(version string) Option {
	return func(c *Client) { c.version = version }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}
