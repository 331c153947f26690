package types

import (
	"context"
)

// ProviderType identifies an LLM vendor. It is the lookup key for the factory
// and the confidence registry.
type ProviderType string

const (
	ProviderTypeNone       ProviderType = "none"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
	ProviderTypeMistral    ProviderType = "mistral"
	ProviderTypeGoogle     ProviderType = "google"
	ProviderTypeGroq       ProviderType = "groq"
	ProviderTypeFireworks  ProviderType = "fireworks"
	ProviderTypeSelfHosted ProviderType = "self_hosted"
)

// AllProviderTypes returns every selectable provider type, in display order.
func AllProviderTypes() []ProviderType {
	return []ProviderType{
		ProviderTypeOpenAI,
		ProviderTypeAnthropic,
		ProviderTypeMistral,
		ProviderTypeGoogle,
		ProviderTypeGroq,
		ProviderTypeFireworks,
		ProviderTypeSelfHosted,
	}
}

// Name returns the human-readable name of the provider.
func (t ProviderType) Name() string {
	switch t {
	case ProviderTypeNone, "":
		return "No provider selected"
	case ProviderTypeOpenAI:
		return "OpenAI"
	case ProviderTypeAnthropic:
		return "Anthropic"
	case ProviderTypeMistral:
		return "Mistral"
	case ProviderTypeGoogle:
		return "Google"
	case ProviderTypeGroq:
		return "Groq"
	case ProviderTypeFireworks:
		return "Fireworks.ai"
	case ProviderTypeSelfHosted:
		return "Self-hosted"
	default:
		return "Unknown"
	}
}

// ProvidesEmbeddings reports whether the vendor offers an embeddings API.
// Self-hosted providers are treated as a special case and report false.
func (t ProviderType) ProvidesEmbeddings() bool {
	switch t {
	case ProviderTypeOpenAI, ProviderTypeMistral, ProviderTypeGoogle:
		return true
	default:
		return false
	}
}

// Host identifies the server software behind a self-hosted provider.
type Host string

const (
	HostNone     Host = "none"
	HostLMStudio Host = "lm_studio"
	HostLlamaCpp Host = "llama_cpp"
	HostOllama   Host = "ollama"
)

// Name returns the human-readable name of the host.
func (h Host) Name() string {
	switch h {
	case HostLMStudio:
		return "LM Studio"
	case HostLlamaCpp:
		return "llama.cpp"
	case HostOllama:
		return "ollama"
	default:
		return "None"
	}
}

// BaseURLPath returns the path of the OpenAI-compatible API on the host.
func (h Host) BaseURLPath() string {
	switch h {
	case HostLMStudio, HostLlamaCpp, HostOllama:
		return "/v1"
	default:
		return ""
	}
}

// ProviderConfig is a provider entry configured by the user. Multiple entries
// may share a Type; InstanceName tells them apart.
type ProviderConfig struct {
	Num          uint         `json:"num" yaml:"num" toml:"num"`
	ID           string       `json:"id" yaml:"id" toml:"id"`
	InstanceName string       `json:"instance_name" yaml:"instance_name" toml:"instance_name"`
	Type         ProviderType `json:"type" yaml:"type" toml:"type"`
	Model        Model        `json:"model" yaml:"model" toml:"model"`

	// Self-hosted connection parameters
	IsSelfHosted bool   `json:"is_self_hosted,omitempty" yaml:"is_self_hosted,omitempty" toml:"is_self_hosted,omitempty"`
	Hostname     string `json:"hostname,omitempty" yaml:"hostname,omitempty" toml:"hostname,omitempty"`
	Host         Host   `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// Keys are never written to the settings file.
	APIKeyEnv string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty" toml:"api_key_env,omitempty"`
	APIKey    string `json:"-" yaml:"-" toml:"-"`
}

// CoreProvider defines the identity methods all providers implement.
type CoreProvider interface {
	Name() string
	Type() ProviderType
	InstanceName() string
}

// ModelProvider defines model discovery.
type ModelProvider interface {
	GetTextModels(ctx context.Context) ([]Model, error)
}

// ChatProvider defines the streaming chat capability.
type ChatProvider interface {
	// StreamChatCompletion starts streaming the answer to request. The returned
	// stream yields text deltas and io.EOF once the answer is complete.
	StreamChatCompletion(ctx context.Context, request ChatRequest) (ChatCompletionStream, error)
}

// Provider represents a configured LLM vendor handle.
type Provider interface {
	CoreProvider
	ModelProvider
	ChatProvider
}

// Logger represents a logger interface
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// RandomSource produces non-negative seeds. Implementations must be safe for
// concurrent use; seeded implementations must be deterministic.
type RandomSource interface {
	Next() int
}
