// Package narrator talks to the hosted model that narrates the adventure.
package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tatianab/text-dungeon/internal/models"
)

// ErrRequestFailed matches every narration failure via errors.Is. Its text
// is also the message shown when the service gives no better reason.
var ErrRequestFailed = errors.New("API request failed")

const malformedResponse = "malformed narrator response"

// Error is a failed narration request. Message is safe to show the player.
type Error struct {
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrRequestFailed }

// Client sends the full transcript to the messages endpoint. It has no
// retry, timeout or backoff of its own.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	maxTokens  int
	version    string
	logger     *zap.Logger
}

// NewClient returns a Client with the package defaults, adjusted by options.
func NewClient(options ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		endpoint:   DefaultEndpoint,
		model:      DefaultModel,
		maxTokens:  DefaultMaxTokens,
		version:    DefaultAnthropicVersion,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Narrate sends turns in order and returns the narrator's reply text.
func (c *Client) Narrate(ctx context.Context, turns []models.Turn, credential string) (string, error) {
	data, err := json.Marshal(Request{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  toMessages(turns),
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &Error{Message: ErrRequestFailed.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", credential)
	req.Header.Set("anthropic-version", c.version)

	log := c.logger.With(zap.String("model", c.model), zap.Int("turns", len(turns)))
	log.Debug("sending narration request", zap.Int("payload_bytes", len(data)))

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("narration transport failure", zap.Error(err))
		return "", &Error{Message: ErrRequestFailed.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read narration response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return "", &Error{StatusCode: resp.StatusCode, Message: ErrRequestFailed.Error(), Err: err}
	}
	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = ErrRequestFailed.Error()
		}
		log.Warn("narration request rejected", zap.String("reason", message))
		return "", &Error{StatusCode: resp.StatusCode, Message: message}
	}

	if !gjson.ValidBytes(body) {
		log.Warn("narration response is not JSON")
		return "", &Error{StatusCode: resp.StatusCode, Message: malformedResponse}
	}
	text := gjson.GetBytes(body, "content.0.text")
	if text.Type != gjson.String {
		log.Warn("narration response has no text content")
		return "", &Error{StatusCode: resp.StatusCode, Message: malformedResponse}
	}

	log.Info("narration received",
		zap.Int64("input_tokens", gjson.GetBytes(body, "usage.input_tokens").Int()),
		zap.Int64("output_tokens", gjson.GetBytes(body, "usage.output_tokens").Int()),
	)
	return text.String(), nil
}
