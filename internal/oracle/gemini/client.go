package gemini

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
	providerName = "gemini"
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"
)

// Client implements port.Oracle using Google's Gemini generateContent API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini-backed oracle. A BaseURL in cfg replaces the
// public models root.
func NewClient(cfg *config.OracleProviderConfig) *Client {
	return newClient(cfg, "")
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
	if endpoint == "" {
		base := apiBaseURL
		if cfg.BaseURL != "" {
			base = strings.TrimRight(cfg.BaseURL, "/")
		}
		endpoint = fmt.Sprintf("%s/%s:generateContent", base, model)
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
		return nil, fmt.Errorf("gemini: api key is required")
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
			"functionDeclarations": []map[string]interface{}{
				{
					"name":        oracle.InvoiceFunctionName,
					"description": oracle.InvoiceFunctionDescription,
					"parameters":  toGeminiSchema(oracle.InvoiceFunctionParameters()),
				},
			},
		},
	}
	body["toolConfig"] = map[string]interface{}{
		"functionCallingConfig": map[string]interface{}{
			"mode":                 "ANY",
			"allowedFunctionNames": []string{oracle.InvoiceFunctionName},
		},
	}

	resp, err := c.send(ctx, body)
	if err != nil {
		return "", err
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.FunctionCall != nil && part.FunctionCall.Name == oracle.InvoiceFunctionName {
			if len(part.FunctionCall.Args) == 0 {
				return "{}", nil
			}
			return string(part.FunctionCall.Args), nil
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
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return sb.String(), nil
}

func (c *Client) request(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]interface{}{{"text": prompt}},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0,
		},
	}
}

// geminiResponse models the generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text         string `json:"text"`
				FunctionCall *struct {
					Name string          `json:"name"`
					Args json.RawMessage `json:"args"`
				} `json:"functionCall"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (c *Client) send(ctx context.Context, body map[string]interface{}) (*geminiResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := oracle.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			return nil, oracle.NewRateLimitError(providerName, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if out.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, fmt.Errorf("output truncated (finishReason: MAX_TOKENS)")
	}
	return &out, nil
}

// toGeminiSchema rewrites JSON-schema type unions such as
// ["string","null"] into the single type plus nullable flag Gemini accepts.
func toGeminiSchema(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, val := range node {
			out[k] = toGeminiSchema(val)
		}
		if types, ok := node["type"].([]string); ok {
			out["type"] = ""
			for _, t := range types {
				if t == "null" {
					out["nullable"] = true
					continue
				}
				out["type"] = t
			}
		}
		return out
	default:
		return v
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
