// Package anthropic streams chat completions from Anthropic's Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrMissingAPIKey is returned when no Anthropic API key is configured.
var ErrMissingAPIKey = errors.New("no Anthropic API key configured")

// Option customises the provider at construction.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// Provider streams Claude models.
type Provider struct {
	common.Identity
	client    anthropic.Client
	apiKey    string
	maxTokens int64
	logger    types.Logger
	models    *common.ModelCache
}

var _ types.Provider = (*Provider)(nil)

// NewProvider matches the factory constructor signature.
func NewProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	return New(config, logger)
}

// New creates an Anthropic provider.
func New(config types.ProviderConfig, logger types.Logger, opts ...Option) (*Provider, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	config.Type = types.ProviderTypeAnthropic

	helper := common.NewConfigHelper(types.ProviderTypeAnthropic)
	o := options{baseURL: helper.ExtractBaseURL(config)}
	for _, opt := range opts {
		opt(&o)
	}

	apiKey := helper.ExtractAPIKey(config)
	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(strings.TrimRight(o.baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = common.NewHTTPClient(helper.ExtractResponseHeaderTimeout(config))
	}
	requestOptions = append(requestOptions, option.WithHTTPClient(httpClient))

	return &Provider{
		Identity:  common.NewIdentity(types.ProviderTypeAnthropic.Name(), types.ProviderTypeAnthropic, config.InstanceName),
		client:    anthropic.NewClient(requestOptions...),
		apiKey:    apiKey,
		maxTokens: int64(helper.ExtractMaxTokens(config)),
		logger:    logger.WithField("provider", types.ProviderTypeAnthropic.Name()),
		models:    common.SharedModelCache(common.InstanceKey(config, o.baseURL), common.DefaultModelCacheTTL),
	}, nil
}

// GetTextModels lists the models available to the API key.
func (p *Provider) GetTextModels(ctx context.Context) ([]types.Model, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return p.models.GetModels(ctx, p.fetchModels)
}

func (p *Provider) fetchModels(ctx context.Context) ([]types.Model, error) {
	page, err := p.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Anthropic models: %w", err)
	}

	models := make([]types.Model, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, types.Model{ID: m.ID, Name: m.DisplayName})
	}
	return models, nil
}

// StreamChatCompletion starts a streaming Messages request. Only text deltas
// are surfaced.
func (p *Provider) StreamChatCompletion(ctx context.Context, request types.ChatRequest) (types.ChatCompletionStream, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if request.Model.IsZero() {
		return nil, errors.New("anthropic: no model selected")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(request.Model.ID),
		MaxTokens: p.maxTokens,
		Messages:  buildMessages(request.Messages),
	}
	if system := strings.TrimSpace(request.SystemPrompt); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	p.logger.Debug("Starting message stream", "model", request.Model.ID, "messages", len(params.Messages))

	stream := p.client.Messages.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("anthropic stream failed: %w", err)
	}
	return &messageStream{stream: stream}, nil
}

// buildMessages maps the conversation onto user/assistant turns. System
// messages inside the conversation are sent as user text since the API only
// accepts a top-level system prompt.
func buildMessages(messages []types.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == types.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

type messageStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

func (s *messageStream) Next() (types.ChatCompletionChunk, error) {
	for s.stream.Next() {
		switch event := s.stream.Current().AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := event.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				return types.ChatCompletionChunk{Content: delta.Text}, nil
			}
		case anthropic.MessageDeltaEvent:
			return types.ChatCompletionChunk{
				Done: event.Delta.StopReason != "",
				Usage: types.Usage{
					CompletionTokens: int(event.Usage.OutputTokens),
					TotalTokens:      int(event.Usage.OutputTokens),
				},
			}, nil
		}
	}

	if err := s.stream.Err(); err != nil {
		return types.ChatCompletionChunk{}, err
	}
	return types.ChatCompletionChunk{Done: true}, io.EOF
}

func (s *messageStream) Close() error {
	return s.stream.Close()
}
