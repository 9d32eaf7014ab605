package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlage/internal/config"
	"umlage/internal/oracle"
	gemini "umlage/internal/oracle/gemini"
)

func newTestClient(serverURL string) *gemini.Client {
	cfg := &config.OracleProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.0-flash",
		TimeoutSecs:  5,
	}
	return gemini.NewClientWithEndpoint(cfg, serverURL)
}

func textReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGeminiClient_JudgeLegality(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		content := contents[0].(map[string]interface{})
		assert.Equal(t, "user", content["role"])
		part := content["parts"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, oracle.LegalityPrompt("Rechnung"), part["text"])
		genCfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, float64(0), genCfg["temperature"])

		_ = json.NewEncoder(w).Encode(textReply(`{"is_legally_complete": true}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).JudgeLegality(context.Background(), "Rechnung")

	require.NoError(t, err)
	assert.Equal(t, `{"is_legally_complete": true}`, out)
}

func TestGeminiClient_ExtractFields_ForcesFunctionCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		tools := reqBody["tools"].([]interface{})
		decls := tools[0].(map[string]interface{})["functionDeclarations"].([]interface{})
		decl := decls[0].(map[string]interface{})
		assert.Equal(t, oracle.InvoiceFunctionName, decl["name"])
		props := decl["parameters"].(map[string]interface{})["properties"].(map[string]interface{})
		gross := props["gross_amount"].(map[string]interface{})
		assert.Equal(t, "number", gross["type"])
		assert.Equal(t, true, gross["nullable"])

		fcc := reqBody["toolConfig"].(map[string]interface{})["functionCallingConfig"].(map[string]interface{})
		assert.Equal(t, "ANY", fcc["mode"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]interface{}{
							{"functionCall": map[string]interface{}{
								"name": oracle.InvoiceFunctionName,
								"args": map[string]interface{}{"net_amount": 100.0},
							}},
						},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).ExtractFields(context.Background(), "Rechnung")

	require.NoError(t, err)
	assert.JSONEq(t, `{"net_amount":100.0}`, out)
}

func TestGeminiClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).JudgeScope(context.Background(), "text")

	var rlErr *oracle.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, 7*time.Second, rlErr.RetryAfter)
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ClassifyCategory(context.Background(), "text", []string{"Grundsteuer"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiClient_BaseURLBuildsModelPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		_ = json.NewEncoder(w).Encode(textReply("Grundsteuer"))
	}))
	defer server.Close()

	o, err := gemini.Factory(&config.OracleProviderConfig{Provider: "gemini", APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := o.ClassifyCategory(context.Background(), "text", []string{"Grundsteuer"})
	require.NoError(t, err)
	assert.Equal(t, "Grundsteuer", out)
}

func TestGeminiFactory_RequiresAPIKey(t *testing.T) {
	_, err := gemini.Factory(&config.OracleProviderConfig{Provider: "gemini"})
	require.Error(t, err)
}
