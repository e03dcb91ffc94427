package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"process-text-function/config"
	"process-text-function/models"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const chatCompletionsPath = "/chat/completions"

// Client talks to an OpenAI-compatible chat completion API. It holds only
// configuration and is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the configured auth mode. In google mode
// the bearer token comes from Application Default Credentials.
func NewClient(ctx context.Context, cfg config.Completion) (*Client, error) {
	switch cfg.AuthMode {
	case config.AuthModeAPIKey, "":
		if cfg.APIKey == "" {
			return nil, errors.New("completion API key is not set")
		}
		c := newClient(resty.New(), cfg)
		c.http.SetAuthToken(cfg.APIKey)
		return c, nil
	case config.AuthModeGoogle:
		ts, err := googleTokenSource(ctx)
		if err != nil {
			return nil, err
		}
		return NewClientWithTokenSource(ctx, cfg, ts), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// NewClientWithTokenSource authenticates every request with tokens from ts.
func NewClientWithTokenSource(ctx context.Context, cfg config.Completion, ts oauth2.TokenSource) *Client {
	return newClient(resty.NewWithClient(oauth2.NewClient(ctx, ts)), cfg)
}

func newClient(rc *resty.Client, cfg config.Completion) *Client {
	rc.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	return &Client{http: rc}
}

// Complete sends one chat completion request. It never retries.
func (c *Client) Complete(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var (
		result models.ChatResponse
		apiErr models.APIError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post(chatCompletionsPath)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("completion service returned %s: %s", resp.Status(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("completion service returned %s", resp.Status())
	}

	return &result, nil
}

// NewUserRequest wraps text as the single user message of a request.
func NewUserRequest(model, text string) models.ChatRequest {
	return models.ChatRequest{
		Model: model,
		Messages: []models.ChatMessage{
			{Role: "user", Content: text},
		},
	}
}

// FirstContent returns the message content of the first choice.
func FirstContent(resp *models.ChatResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("no choices returned from completion service")
	}
	return resp.Choices[0].Message.Content, nil
}
