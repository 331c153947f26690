// Package testutil provides shared testing utilities, mocks, and fixtures
// for use across the ai-studio-kit test suite.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ConfigurableMockProvider is a mock Provider implementation with configurable behavior.
// It allows tests to simulate various provider responses and scenarios.
type ConfigurableMockProvider struct {
	mu sync.RWMutex

	name         string
	providerType types.ProviderType
	instanceName string
	models       []types.Model

	// Behavior control
	streamError    error
	getModelsError error
	chunks         []types.ChatCompletionChunk
	midStreamError error
	gate           chan struct{}

	// Call tracking
	requests        []types.ChatRequest
	getModelsCalled int
}

// NewConfigurableMockProvider creates a new mock provider that streams "Hi there".
func NewConfigurableMockProvider(name string, providerType types.ProviderType) *ConfigurableMockProvider {
	return &ConfigurableMockProvider{
		name:         name,
		providerType: providerType,
		instanceName: name,
		models:       []types.Model{{ID: "mock-model", Name: "Mock Model"}},
		chunks: []types.ChatCompletionChunk{
			{Content: "Hi "},
			{Content: "there"},
		},
	}
}

// SetInstanceName sets the instance name reported by the provider.
func (m *ConfigurableMockProvider) SetInstanceName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instanceName = name
}

// SetChunks configures the text deltas streamed on each request.
func (m *ConfigurableMockProvider) SetChunks(deltas ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = make([]types.ChatCompletionChunk, len(deltas))
	for i, d := range deltas {
		m.chunks[i] = types.ChatCompletionChunk{Content: d}
	}
}

// SetStreamError makes StreamChatCompletion fail before streaming.
func (m *ConfigurableMockProvider) SetStreamError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamError = err
}

// SetMidStreamError makes the stream fail after all configured chunks.
func (m *ConfigurableMockProvider) SetMidStreamError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.midStreamError = err
}

// SetGate makes every chunk after the first wait for a value on gate (or
// for the request context to end).
func (m *ConfigurableMockProvider) SetGate(gate chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = gate
}

// SetModels configures the models returned by GetTextModels.
func (m *ConfigurableMockProvider) SetModels(models []types.Model) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = models
}

// SetGetModelsError configures the error returned by GetTextModels.
func (m *ConfigurableMockProvider) SetGetModelsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getModelsError = err
}

// Requests returns every chat request received so far.
func (m *ConfigurableMockProvider) Requests() []types.ChatRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.ChatRequest(nil), m.requests...)
}

// GetModelsCallCount returns how often GetTextModels was called.
func (m *ConfigurableMockProvider) GetModelsCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getModelsCalled
}

func (m *ConfigurableMockProvider) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

func (m *ConfigurableMockProvider) Type() types.ProviderType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providerType
}

func (m *ConfigurableMockProvider) InstanceName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instanceName
}

func (m *ConfigurableMockProvider) GetTextModels(ctx context.Context) ([]types.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getModelsCalled++
	if m.getModelsError != nil {
		return nil, m.getModelsError
	}
	return append([]types.Model(nil), m.models...), nil
}

func (m *ConfigurableMockProvider) StreamChatCompletion(ctx context.Context, request types.ChatRequest) (types.ChatCompletionStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request)
	if m.streamError != nil {
		return nil, m.streamError
	}

	stream := NewConfigurableMockStream(append([]types.ChatCompletionChunk(nil), m.chunks...))
	stream.ctx = ctx
	stream.gate = m.gate
	stream.err = m.midStreamError
	return stream, nil
}

// ConfigurableMockStream is a mock ChatCompletionStream implementation with configurable behavior.
type ConfigurableMockStream struct {
	mu     sync.Mutex
	ctx    context.Context
	chunks []types.ChatCompletionChunk
	index  int
	gate   chan struct{}
	err    error
	closed bool
}

// NewConfigurableMockStream creates a new mock stream with the given chunks.
func NewConfigurableMockStream(chunks []types.ChatCompletionChunk) *ConfigurableMockStream {
	return &ConfigurableMockStream{chunks: chunks, ctx: context.Background()}
}

// SetError configures the error returned once all chunks are consumed.
func (s *ConfigurableMockStream) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *ConfigurableMockStream) Next() (types.ChatCompletionChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ChatCompletionChunk{}, fmt.Errorf("stream closed")
	}
	if err := s.ctx.Err(); err != nil {
		return types.ChatCompletionChunk{}, err
	}
	if s.index >= len(s.chunks) {
		if s.err != nil {
			return types.ChatCompletionChunk{}, s.err
		}
		return types.ChatCompletionChunk{Done: true}, io.EOF
	}

	if s.index > 0 && s.gate != nil {
		select {
		case <-s.gate:
		case <-s.ctx.Done():
			return types.ChatCompletionChunk{}, s.ctx.Err()
		}
	}

	chunk := s.chunks[s.index]
	s.index++
	return chunk, nil
}

func (s *ConfigurableMockStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
