package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

type captured struct {
	Path          string
	APIKey        string
	Authorization string
	Body          generateContentRequest
}

func newGeminiServer(t *testing.T, cap *captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cap != nil {
			cap.Path = r.URL.Path
			cap.APIKey = r.Header.Get("x-goog-api-key")
			cap.Authorization = r.Header.Get("Authorization")
		}

		switch {
		case strings.HasPrefix(r.URL.Path, "/models/") && strings.HasSuffix(r.URL.Path, ":streamGenerateContent"):
			assert.Equal(t, "sse", r.URL.Query().Get("alt"))
			if cap != nil {
				_ = json.NewDecoder(r.Body).Decode(&cap.Body)
			}
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = fmt.Fprint(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "}]}}]}`+"\r\n\r\n")
			_, _ = fmt.Fprint(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"there"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":3,"candidatesTokenCount":2,"totalTokenCount":5}}`+"\r\n\r\n")
		case r.URL.Path == "/models":
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("pageToken") == "" {
				_, _ = fmt.Fprint(w, `{"models":[
					{"name":"models/gemini-2.5-flash","displayName":"Gemini 2.5 Flash","supportedGenerationMethods":["generateContent","countTokens"]},
					{"name":"models/text-embedding-004","displayName":"Embedding","supportedGenerationMethods":["embedContent"]}
				],"nextPageToken":"page2"}`)
				return
			}
			_, _ = fmt.Fprint(w, `{"models":[{"name":"models/gemini-2.5-pro","displayName":"Gemini 2.5 Pro","supportedGenerationMethods":["generateContent"]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`)
		}
	}))
}

func collect(t *testing.T, stream types.ChatCompletionStream) (string, types.Usage) {
	t.Helper()
	defer stream.Close()
	var sb strings.Builder
	var usage types.Usage
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return sb.String(), usage
		}
		require.NoError(t, err)
		sb.WriteString(chunk.Content)
		if chunk.Usage.TotalTokens > 0 {
			usage = chunk.Usage
		}
	}
}

func TestStreamChatCompletion_APIKey(t *testing.T) {
	var cap captured
	server := newGeminiServer(t, &cap)
	defer server.Close()

	provider, err := New(types.ProviderConfig{InstanceName: "gem", APIKey: "g-key"}, nil, WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.Equal(t, "gem", provider.InstanceName())

	stream, err := provider.StreamChatCompletion(t.Context(), types.ChatRequest{
		SystemPrompt: "Translate.",
		Model:        types.NewModel("models/gemini-2.5-flash"),
		Seed:         7,
		Messages: []types.ChatMessage{
			{Role: types.RoleUser, Content: "Hallo"},
			{Role: types.RoleAssistant, Content: "Hello"},
			{Role: types.RoleUser, Content: "Welt"},
		},
	})
	require.NoError(t, err)

	text, usage := collect(t, stream)
	assert.Equal(t, "Hi there", text)
	assert.Equal(t, 5, usage.TotalTokens)

	assert.Equal(t, "/models/gemini-2.5-flash:streamGenerateContent", cap.Path)
	assert.Equal(t, "g-key", cap.APIKey)
	require.NotNil(t, cap.Body.SystemInstruction)
	assert.Equal(t, "Translate.", cap.Body.SystemInstruction.Parts[0].Text)
	require.Len(t, cap.Body.Contents, 3)
	assert.Equal(t, "model", cap.Body.Contents[1].Role)
	assert.Equal(t, 7, cap.Body.GenerationConfig.Seed)
}

func TestStreamChatCompletion_TokenSource(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	var cap captured
	server := newGeminiServer(t, &cap)
	defer server.Close()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.token", TokenType: "Bearer"})
	provider, err := New(types.ProviderConfig{}, nil, WithBaseURL(server.URL), WithTokenSource(ts))
	require.NoError(t, err)

	stream, err := provider.StreamChatCompletion(t.Context(), types.ChatRequest{Model: types.NewModel("gemini-2.5-flash")})
	require.NoError(t, err)
	text, _ := collect(t, stream)

	assert.Equal(t, "Hi there", text)
	assert.Equal(t, "Bearer ya29.token", cap.Authorization)
	assert.Empty(t, cap.APIKey)
}

func TestStreamChatCompletion_APIError(t *testing.T) {
	server := newGeminiServer(t, nil)
	defer server.Close()

	provider, err := New(types.ProviderConfig{APIKey: "k"}, nil, WithBaseURL(server.URL+"/missing"))
	require.NoError(t, err)

	_, err = provider.StreamChatCompletion(t.Context(), types.ChatRequest{Model: types.NewModel("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")

	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, common.APIErrorTypeNotFound, apiErr.Type)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestStreamChatCompletion_MidStreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "}]}}]}`+"\r\n\r\n")
		_, _ = fmt.Fprint(w, `data: {"error":{"code":500,"message":"internal error while generating","status":"INTERNAL"}}`+"\r\n\r\n")
	}))
	defer server.Close()

	provider, err := New(types.ProviderConfig{APIKey: "k"}, nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	stream, err := provider.StreamChatCompletion(t.Context(), types.ChatRequest{Model: types.NewModel("gemini-2.5-flash")})
	require.NoError(t, err)
	defer stream.Close()

	chunk, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "Hi ", chunk.Content)

	_, err = stream.Next()
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, common.APIErrorTypeServer, apiErr.Type)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "internal error while generating")
}

func TestGetTextModels(t *testing.T) {
	server := newGeminiServer(t, nil)
	defer server.Close()

	provider, err := New(types.ProviderConfig{APIKey: "k"}, nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	models, err := provider.GetTextModels(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []types.Model{
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"},
		{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro"},
	}, models)

	server.Close()
	cached, err := provider.GetTextModels(t.Context())
	require.NoError(t, err)
	assert.Equal(t, models, cached)
}

func TestUpdateRateLimitTier(t *testing.T) {
	provider, err := New(types.ProviderConfig{APIKey: "k"}, nil)
	require.NoError(t, err)

	before := provider.limiter.current()
	provider.UpdateRateLimitTier(360)
	assert.NotSame(t, before, provider.limiter.current())
	assert.Equal(t, 360, provider.limiter.current().Burst())

	provider.UpdateRateLimitTier(0)
	assert.Equal(t, 360, provider.limiter.current().Burst())
}

func TestInstanceStateOutlivesHandle(t *testing.T) {
	server := newGeminiServer(t, nil)
	defer server.Close()

	config := types.ProviderConfig{ID: uuid.NewString(), APIKey: "k"}

	first, err := New(config, nil, WithBaseURL(server.URL), WithRequestsPerMinute(1))
	require.NoError(t, err)
	_, err = first.GetTextModels(t.Context())
	require.NoError(t, err)
	stream, err := first.StreamChatCompletion(t.Context(), types.ChatRequest{Model: types.NewModel("gemini-2.5-flash")})
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	second, err := New(config, nil, WithBaseURL(server.URL), WithRequestsPerMinute(1))
	require.NoError(t, err)
	assert.Same(t, first.limiter, second.limiter)
	assert.Same(t, first.models, second.models)
	assert.False(t, second.models.IsStale())

	// The single token was spent by the first handle.
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	_, err = second.StreamChatCompletion(ctx, types.ChatRequest{Model: types.NewModel("gemini-2.5-flash")})
	assert.ErrorContains(t, err, "rate limit wait")

	other, err := New(types.ProviderConfig{ID: uuid.NewString(), APIKey: "k"}, nil, WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.NotSame(t, first.limiter, other.limiter)

	unnamed, err := New(types.ProviderConfig{APIKey: "k"}, nil, WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.True(t, unnamed.models.IsStale())
}

func TestParseStreamLine(t *testing.T) {
	chunk, done, err := parseStreamLine(`{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "ab", chunk.Content)

	_, _, err = parseStreamLine("{broken")
	assert.Error(t, err)

	_, done, err = parseStreamLine(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	assert.True(t, done)
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsRateLimit())
}
