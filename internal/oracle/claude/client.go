package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"umlage/internal/config"
	"umlage/internal/oracle"
	"umlage/internal/port"
)

const (
	providerName = "claude"
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-sonnet-4-20250514"
	maxTokens    = 4096
)

// Client implements port.Oracle using the Anthropic Messages API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Claude-backed oracle. A BaseURL in cfg replaces the
// public API host.
func NewClient(cfg *config.OracleProviderConfig) *Client {
	endpoint := apiURL
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/v1/messages"
	}
	return newClient(cfg, endpoint)
}

// NewClientWithEndpoint creates a client posting to endpoint verbatim.
func NewClientWithEndpoint(cfg *config.OracleProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.OracleProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Factory adapts NewClient to oracle.ProviderFactory.
func Factory(cfg *config.OracleProviderConfig) (port.Oracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: api key is required")
	}
	return NewClient(cfg), nil
}

// Model returns the model identifier used for every call.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) ExtractFields(ctx context.Context, text string) (string, error) {
	body := c.request(text)
	body["tools"] = []map[string]interface{}{
		{
			"name":         oracle.InvoiceFunctionName,
			"description":  oracle.InvoiceFunctionDescription,
			"input_schema": oracle.InvoiceFunctionParameters(),
		},
	}
	body["tool_choice"] = map[string]interface{}{
		"type": "tool",
		"name": oracle.InvoiceFunctionName,
	}

	resp, err := c.send(ctx, body)
	if err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "tool_use" && block.Name == oracle.InvoiceFunctionName {
			if len(block.Input) == 0 {
				return "{}", nil
			}
			return string(block.Input), nil
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
	resp, err := c.send(ctx, c.request(prompt))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return sb.String(), nil
}

func (c *Client) request(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": 0,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
	}
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *Client) send(ctx context.Context, body map[string]interface{}) (*apiResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := oracle.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			return nil, oracle.NewRateLimitError(providerName, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	var out apiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(out.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}
	if out.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens)")
	}
	return &out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
