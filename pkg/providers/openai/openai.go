// Package openai provides chat streaming against the OpenAI Chat Completions
// API and the vendors that speak the same protocol: Mistral, Groq, Fireworks
// and self-hosted servers (LM Studio, llama.cpp, ollama).
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrMissingAPIKey is returned when a cloud vendor has no API key configured.
var ErrMissingAPIKey = errors.New("no API key configured")

// Option customises a provider at construction.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	keyless    bool
}

// WithBaseURL overrides the vendor's API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithOptionalAPIKey allows requests without an API key. Self-hosted servers
// usually accept anonymous requests.
func WithOptionalAPIKey() Option {
	return func(o *options) { o.keyless = true }
}

// Provider streams chat completions from an OpenAI-compatible endpoint.
type Provider struct {
	common.Identity
	client  openai.Client
	apiKey  string
	keyless bool
	baseURL string
	logger  types.Logger
	models  *common.ModelCache
}

var _ types.Provider = (*Provider)(nil)

// NewCompatibleProvider creates a provider for any OpenAI-compatible vendor
// identified by config.Type.
func NewCompatibleProvider(config types.ProviderConfig, logger types.Logger, opts ...Option) (*Provider, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	helper := common.NewConfigHelper(config.Type)
	o := options{baseURL: helper.ExtractBaseURL(config)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseURL == "" {
		return nil, fmt.Errorf("no base URL known for provider type %q", config.Type)
	}

	apiKey := helper.ExtractAPIKey(config)
	requestOptions := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(o.baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		requestOptions = append(requestOptions, option.WithAPIKey(apiKey))
	} else {
		requestOptions = append(requestOptions, option.WithHeaderDel("authorization"))
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = common.NewHTTPClient(helper.ExtractResponseHeaderTimeout(config))
	}
	requestOptions = append(requestOptions, option.WithHTTPClient(httpClient))

	return &Provider{
		Identity: common.NewIdentity(config.Type.Name(), config.Type, config.InstanceName),
		client:   openai.NewClient(requestOptions...),
		apiKey:   apiKey,
		keyless:  o.keyless,
		baseURL:  o.baseURL,
		logger:   logger.WithField("provider", config.Type.Name()),
		models:   common.SharedModelCache(common.InstanceKey(config, o.baseURL), common.DefaultModelCacheTTL),
	}, nil
}

// NewProvider creates an OpenAI provider.
func NewProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	config.Type = types.ProviderTypeOpenAI
	return NewCompatibleProvider(config, logger)
}

// NewMistralProvider creates a Mistral provider.
func NewMistralProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	config.Type = types.ProviderTypeMistral
	return NewCompatibleProvider(config, logger)
}

// NewGroqProvider creates a Groq provider.
func NewGroqProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	config.Type = types.ProviderTypeGroq
	return NewCompatibleProvider(config, logger)
}

// NewFireworksProvider creates a Fireworks.ai provider.
func NewFireworksProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	config.Type = types.ProviderTypeFireworks
	return NewCompatibleProvider(config, logger)
}

// BaseURL returns the endpoint the provider talks to.
func (p *Provider) BaseURL() string {
	return p.baseURL
}

func (p *Provider) checkAPIKey() error {
	if p.apiKey == "" && !p.keyless {
		return fmt.Errorf("%s: %w", p.Name(), ErrMissingAPIKey)
	}
	return nil
}

// GetTextModels lists the models served by the endpoint. The list is cached
// for common.DefaultModelCacheTTL.
func (p *Provider) GetTextModels(ctx context.Context) ([]types.Model, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	return p.models.GetModels(ctx, p.fetchModels)
}

func (p *Provider) fetchModels(ctx context.Context) ([]types.Model, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s models: %w", p.Name(), err)
	}

	models := make([]types.Model, 0, len(page.Data))
	for _, m := range page.Data {
		if p.Type() == types.ProviderTypeOpenAI && !isOpenAITextModel(m.ID) {
			continue
		}
		models = append(models, types.NewModel(m.ID))
	}
	return models, nil
}

// isOpenAITextModel filters the OpenAI catalogue down to chat models.
func isOpenAITextModel(id string) bool {
	for _, prefix := range []string{"gpt-", "o1", "o3", "o4", "chatgpt-"} {
		if strings.HasPrefix(id, prefix) {
			return !strings.Contains(id, "realtime") && !strings.Contains(id, "audio") && !strings.Contains(id, "tts")
		}
	}
	return false
}

// StreamChatCompletion starts a streaming chat completion.
func (p *Provider) StreamChatCompletion(ctx context.Context, request types.ChatRequest) (types.ChatCompletionStream, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	if request.Model.IsZero() {
		return nil, fmt.Errorf("%s: no model selected", p.Name())
	}

	params := buildParams(request, p.Type() != types.ProviderTypeMistral)
	p.logger.Debug("Starting chat completion stream", "model", request.Model.ID, "messages", len(params.Messages))

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("%s stream failed: %w", p.Name(), err)
	}
	return &chatStream{stream: stream}, nil
}

// buildParams converts request to SDK parameters. Mistral rejects the seed
// field, so it is sent only when withSeed is set.
func buildParams(request types.ChatRequest, withSeed bool) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	for _, m := range request.Messages {
		switch m.Role {
		case types.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		case types.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(request.Model.ID),
		Messages: messages,
	}
	if withSeed {
		params.Seed = openai.Int(int64(request.Seed))
	}
	return params
}

// chatStream adapts the SDK stream to types.ChatCompletionStream.
type chatStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
}

func (s *chatStream) Next() (types.ChatCompletionChunk, error) {
	for s.stream.Next() {
		current := s.stream.Current()

		chunk := types.ChatCompletionChunk{}
		if current.Usage.TotalTokens > 0 {
			chunk.Usage = types.Usage{
				PromptTokens:     int(current.Usage.PromptTokens),
				CompletionTokens: int(current.Usage.CompletionTokens),
				TotalTokens:      int(current.Usage.TotalTokens),
			}
		}
		if len(current.Choices) > 0 {
			chunk.Content = current.Choices[0].Delta.Content
			chunk.Done = current.Choices[0].FinishReason != ""
		}
		if chunk.Content == "" && !chunk.Done && chunk.Usage.TotalTokens == 0 {
			continue
		}
		return chunk, nil
	}

	if err := s.stream.Err(); err != nil {
		return types.ChatCompletionChunk{}, err
	}
	return types.ChatCompletionChunk{Done: true}, io.EOF
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}
