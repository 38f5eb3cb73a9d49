package llmclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "xiaomi/mimo-v2-flash:free"
)

// OpenRouterConfig configures the OpenRouter chat completions client.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Site and Title are sent as HTTP-Referer and X-Title.
	Site    string
	Title   string
	Timeout time.Duration
}

// OpenRouterClient calls the OpenRouter Chat Completions API (OpenAI-compatible).
// See: https://openrouter.ai/docs/api-reference/overview
type OpenRouterClient struct {
	cfg OpenRouterConfig
}

func NewOpenRouterClient(cfg OpenRouterConfig) (*OpenRouterClient, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &OpenRouterClient{cfg: cfg}, nil
}

func (c *OpenRouterClient) Name() string { return "OpenRouter:" + c.cfg.Model }
func (c *OpenRouterClient) Close() error { return nil }

// Complete builds a fresh API client for the call and drops it afterwards.
func (c *OpenRouterClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	conf := openai.DefaultConfig(c.cfg.APIKey)
	conf.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/")
	conf.HTTPClient = &http.Client{
		Timeout: c.cfg.Timeout,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": c.cfg.Site,
				"X-Title":      c.cfg.Title,
			},
		},
	}
	cli := openai.NewClientWithConfig(conf)

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", &TransportError{Provider: "openrouter", StatusCode: statusOf(err), Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &TransportError{Provider: "openrouter", Err: ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range t.headers {
		if v != "" {
			r.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(r)
}
