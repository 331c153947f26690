// Package google streams chat completions from the Gemini API over raw HTTP
// Server-Sent Events.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrMissingCredentials is returned when neither an API key nor Application
// Default Credentials are available.
var ErrMissingCredentials = errors.New("no Google API key or application default credentials configured")

const (
	generativeLanguageScope = "https://www.googleapis.com/auth/generative-language"
	cloudPlatformScope      = "https://www.googleapis.com/auth/cloud-platform"

	// Free tier allows 15 requests per minute.
	defaultRequestsPerMinute = 15
)

// Option customises the provider at construction.
type Option func(*options)

type options struct {
	baseURL           string
	httpClient        *http.Client
	tokenSource       oauth2.TokenSource
	requestsPerMinute int
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTokenSource authenticates with OAuth tokens instead of an API key.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) { o.tokenSource = ts }
}

// WithRequestsPerMinute sets the client-side rate limit.
func WithRequestsPerMinute(rpm int) Option {
	return func(o *options) { o.requestsPerMinute = rpm }
}

// Provider talks to generativelanguage.googleapis.com.
type Provider struct {
	common.Identity
	client    *http.Client
	baseURL   string
	apiKey    string
	oauth     bool
	maxTokens int
	logger    types.Logger
	models    *common.ModelCache
	limiter   *instanceLimiter
}

var _ types.Provider = (*Provider)(nil)

// NewProvider matches the factory constructor signature.
func NewProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	return New(config, logger)
}

// New creates a Gemini provider. Without an API key it falls back to
// Application Default Credentials; when those are missing too, requests fail
// with ErrMissingCredentials.
func New(config types.ProviderConfig, logger types.Logger, opts ...Option) (*Provider, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithField("provider", types.ProviderTypeGoogle.Name())
	config.Type = types.ProviderTypeGoogle

	helper := common.NewConfigHelper(types.ProviderTypeGoogle)
	o := options{
		baseURL:           helper.ExtractBaseURL(config),
		requestsPerMinute: defaultRequestsPerMinute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := o.httpClient
	if client == nil {
		client = common.NewHTTPClient(helper.ExtractResponseHeaderTimeout(config))
	}

	apiKey := helper.ExtractAPIKey(config)
	ts := o.tokenSource
	if apiKey == "" && ts == nil {
		found, err := googleauth.DefaultTokenSource(context.Background(), generativeLanguageScope, cloudPlatformScope)
		if err != nil {
			logger.Debug("No application default credentials found", "error", err)
		} else {
			ts = found
		}
	}

	useOAuth := apiKey == "" && ts != nil
	if useOAuth {
		base := client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client = &http.Client{
			Timeout:   client.Timeout,
			Transport: &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, ts), Base: base},
		}
	}

	if o.requestsPerMinute <= 0 {
		o.requestsPerMinute = defaultRequestsPerMinute
	}

	baseURL := strings.TrimRight(o.baseURL, "/")
	instanceKey := common.InstanceKey(config, baseURL)
	return &Provider{
		Identity:  common.NewIdentity(types.ProviderTypeGoogle.Name(), types.ProviderTypeGoogle, config.InstanceName),
		client:    client,
		baseURL:   baseURL,
		apiKey:    apiKey,
		oauth:     useOAuth,
		maxTokens: helper.ExtractMaxTokens(config),
		logger:    logger,
		models:    common.SharedModelCache(instanceKey, common.DefaultModelCacheTTL),
		limiter:   limiterFor(instanceKey, o.requestsPerMinute),
	}, nil
}

// instanceLimiter is the client-side limit of one configured instance. It is
// shared by every handle built for that instance.
type instanceLimiter struct {
	mu      sync.RWMutex
	limiter *rate.Limiter
}

var limiters sync.Map

// limiterFor returns the limiter of the instance identified by key. The rate
// is fixed by the first handle; UpdateRateLimitTier changes it afterwards.
func limiterFor(key string, requestsPerMinute int) *instanceLimiter {
	fresh := &instanceLimiter{limiter: newLimiter(requestsPerMinute)}
	if key == "" {
		return fresh
	}
	shared, _ := limiters.LoadOrStore(key, fresh)
	return shared.(*instanceLimiter)
}

func (l *instanceLimiter) current() *rate.Limiter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.limiter
}

func (l *instanceLimiter) set(limiter *rate.Limiter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiter = limiter
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// UpdateRateLimitTier replaces the client-side limit, e.g. 360 for
// pay-as-you-go accounts.
func (p *Provider) UpdateRateLimitTier(requestsPerMinute int) {
	if requestsPerMinute <= 0 {
		return
	}
	p.limiter.set(newLimiter(requestsPerMinute))
}

func (p *Provider) applyRateLimiting(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.limiter.current().Wait(waitCtx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func (p *Provider) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	if p.apiKey == "" && !p.oauth {
		return nil, ErrMissingCredentials
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.apiKey != "" {
		req.Header.Set("x-goog-api-key", p.apiKey)
	}
	return req, nil
}

// StreamChatCompletion starts a streamGenerateContent call.
func (p *Provider) StreamChatCompletion(ctx context.Context, request types.ChatRequest) (types.ChatCompletionStream, error) {
	if request.Model.IsZero() {
		return nil, errors.New("gemini: no model selected")
	}
	if err := p.applyRateLimiting(ctx); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(p.buildRequest(request))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.baseURL, url.PathEscape(modelName(request.Model.ID)))
	req, err := p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Starting generate content stream", "model", request.Model.ID, "contents", len(request.Messages))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, readAPIError(resp)
	}

	return common.NewSSEStream(resp, parseStreamLine), nil
}

func (p *Provider) buildRequest(request types.ChatRequest) generateContentRequest {
	body := generateContentRequest{
		Contents: make([]content, 0, len(request.Messages)),
		GenerationConfig: &generationConfig{
			MaxOutputTokens: p.maxTokens,
			Seed:            request.Seed,
		},
	}
	if request.SystemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: request.SystemPrompt}}}
	}
	for _, m := range request.Messages {
		role := "user"
		if m.Role == types.RoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	return body
}

func parseStreamLine(data string) (types.ChatCompletionChunk, bool, error) {
	var resp generateContentResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return types.ChatCompletionChunk{}, false, fmt.Errorf("failed to parse stream response: %w", err)
	}
	if resp.Error != nil {
		return types.ChatCompletionChunk{}, true, common.ClassifyHTTPError("gemini", resp.Error.Code, resp.Error.Message)
	}

	chunk := types.ChatCompletionChunk{}
	if len(resp.Candidates) > 0 {
		var sb strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
		chunk.Content = sb.String()
		chunk.Done = resp.Candidates[0].FinishReason != ""
	}
	if resp.UsageMetadata != nil {
		chunk.Usage = types.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return chunk, chunk.Done, nil
}

// GetTextModels lists models supporting generateContent. The list is cached
// for common.DefaultModelCacheTTL.
func (p *Provider) GetTextModels(ctx context.Context) ([]types.Model, error) {
	return p.models.GetModels(ctx, p.fetchModels)
}

func (p *Provider) fetchModels(ctx context.Context) ([]types.Model, error) {
	var models []types.Model
	pageToken := ""
	for {
		endpoint := p.baseURL + "/models?pageSize=1000"
		if pageToken != "" {
			endpoint += "&pageToken=" + url.QueryEscape(pageToken)
		}

		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch models: %w", err)
		}

		var page listModelsResponse
		if resp.StatusCode != http.StatusOK {
			err = readAPIError(resp)
		} else {
			err = json.NewDecoder(resp.Body).Decode(&page)
		}
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch models: %w", err)
		}

		for _, m := range page.Models {
			if !slices.Contains(m.SupportedGenerationMethods, "generateContent") || strings.Contains(m.Name, "embedding") {
				continue
			}
			models = append(models, types.Model{ID: modelName(m.Name), Name: m.DisplayName})
		}

		if page.NextPageToken == "" {
			return models, nil
		}
		pageToken = page.NextPageToken
	}
}

func modelName(id string) string {
	return strings.TrimPrefix(id, "models/")
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	message := string(body)
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}
	return common.ClassifyHTTPError("gemini", resp.StatusCode, message)
}
