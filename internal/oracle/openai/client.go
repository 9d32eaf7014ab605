package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"umlage/internal/config"
	"umlage/internal/oracle"
	"umlage/internal/port"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o"
)

// zeroTemperature requests deterministic sampling. A literal 0 would be
// dropped by the request's omitempty tag and the API would apply its
// default of 1.
const zeroTemperature = math.SmallestNonzeroFloat32

// Client implements port.Oracle on top of the OpenAI Chat Completions API
// or any API-compatible endpoint.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient creates an OpenAI-backed oracle from a provider config.
func NewClient(cfg *config.OracleProviderConfig) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: &retryAfterTransport{next: http.DefaultTransport},
	}

	return &Client{
		api:   goopenai.NewClientWithConfig(clientCfg),
		model: model,
	}
}

// Factory adapts NewClient to oracle.ProviderFactory.
func Factory(cfg *config.OracleProviderConfig) (port.Oracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	return NewClient(cfg), nil
}

// Model returns the model identifier used for every call.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) ExtractFields(ctx context.Context, text string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: zeroTemperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: text},
		},
		Tools: []goopenai.Tool{
			{
				Type: goopenai.ToolTypeFunction,
				Function: &goopenai.FunctionDefinition{
					Name:        oracle.InvoiceFunctionName,
					Description: oracle.InvoiceFunctionDescription,
					Parameters:  oracle.InvoiceFunctionParameters(),
				},
			},
		},
		ToolChoice: goopenai.ToolChoice{
			Type:     goopenai.ToolTypeFunction,
			Function: goopenai.ToolFunction{Name: oracle.InvoiceFunctionName},
		},
	}

	ctx, retryAfter := withRetryAfter(ctx)
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.wrap(err, *retryAfter)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	for _, call := range resp.Choices[0].Message.ToolCalls {
		if call.Function.Name == oracle.InvoiceFunctionName {
			return call.Function.Arguments, nil
		}
	}
	return "", fmt.Errorf("model did not call %s", oracle.InvoiceFunctionName)
}

func (c *Client) ClassifyCategory(ctx context.Context, text string, categories []string) (string, error) {
	return c.complete(ctx, oracle.ClassificationPrompt(text, categories))
}

func (c *Client) JudgeScope(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, oracle.ScopePrompt(text))
}

func (c *Client) JudgeLegality(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, oracle.LegalityPrompt(text))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, retryAfter := withRetryAfter(ctx)
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: zeroTemperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", c.wrap(err, *retryAfter)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) wrap(err error, retryAfter time.Duration) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return oracle.NewRateLimitError(providerName, err, retryAfter)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return oracle.NewRateLimitError(providerName, err, retryAfter)
	}
	return fmt.Errorf("calling openai API: %w", err)
}

type retryAfterKey struct{}

// withRetryAfter attaches a slot the transport fills from a 429 response.
// Each call gets its own slot so concurrent calls never share a value.
func withRetryAfter(ctx context.Context) (context.Context, *time.Duration) {
	d := new(time.Duration)
	return context.WithValue(ctx, retryAfterKey{}, d), d
}

// retryAfterTransport records the Retry-After header of throttled responses.
// The SDK turns a 429 into an error and drops the headers, so they are
// captured here before the body is decoded.
type retryAfterTransport struct {
	next http.RoundTripper
}

func (t *retryAfterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusTooManyRequests {
		return resp, err
	}
	if d, ok := req.Context().Value(retryAfterKey{}).(*time.Duration); ok {
		*d = oracle.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return resp, nil
}
