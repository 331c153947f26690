package common

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// DefaultResponseHeaderTimeout bounds the wait for a provider's response
// headers. A streamed body is bounded only by the request context.
const DefaultResponseHeaderTimeout = 5 * time.Minute

// ConfigHelper resolves connection defaults for one provider type.
type ConfigHelper struct {
	providerType types.ProviderType
}

// NewConfigHelper creates a helper for providerType.
func NewConfigHelper(providerType types.ProviderType) *ConfigHelper {
	return &ConfigHelper{providerType: providerType}
}

// DefaultAPIKeyEnv returns the conventional environment variable for the
// vendor's API key.
func DefaultAPIKeyEnv(providerType types.ProviderType) string {
	switch providerType {
	case types.ProviderTypeOpenAI:
		return "OPENAI_API_KEY"
	case types.ProviderTypeAnthropic:
		return "ANTHROPIC_API_KEY"
	case types.ProviderTypeMistral:
		return "MISTRAL_API_KEY"
	case types.ProviderTypeGoogle:
		return "GEMINI_API_KEY"
	case types.ProviderTypeGroq:
		return "GROQ_API_KEY"
	case types.ProviderTypeFireworks:
		return "FIREWORKS_API_KEY"
	case types.ProviderTypeSelfHosted:
		return "SELF_HOSTED_API_KEY"
	default:
		return ""
	}
}

// ExtractAPIKey returns the explicit key, then the one named by APIKeyEnv,
// then the vendor default variable. Empty when none is set.
func (h *ConfigHelper) ExtractAPIKey(config types.ProviderConfig) string {
	if key := strings.TrimSpace(config.APIKey); key != "" {
		return key
	}
	if config.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(config.APIKeyEnv)); key != "" {
			return key
		}
	}
	if env := DefaultAPIKeyEnv(h.providerType); env != "" {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}

// ExtractBaseURL returns the vendor's API base URL. Self-hosted providers
// derive theirs from the configured hostname and host kind.
func (h *ConfigHelper) ExtractBaseURL(config types.ProviderConfig) string {
	switch h.providerType {
	case types.ProviderTypeOpenAI:
		return "https://api.openai.com/v1"
	case types.ProviderTypeAnthropic:
		return "https://api.anthropic.com"
	case types.ProviderTypeMistral:
		return "https://api.mistral.ai/v1"
	case types.ProviderTypeGoogle:
		return "https://generativelanguage.googleapis.com/v1beta"
	case types.ProviderTypeGroq:
		return "https://api.groq.com/openai/v1"
	case types.ProviderTypeFireworks:
		return "https://api.fireworks.ai/inference/v1"
	case types.ProviderTypeSelfHosted:
		return strings.TrimRight(config.Hostname, "/") + config.Host.BaseURLPath()
	default:
		return ""
	}
}

// ExtractResponseHeaderTimeout returns how long to wait for response headers.
func (h *ConfigHelper) ExtractResponseHeaderTimeout(types.ProviderConfig) time.Duration {
	return DefaultResponseHeaderTimeout
}

// NewHTTPClient returns a client whose deadline covers connecting and
// receiving the response headers, but not reading the body.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// ExtractMaxTokens returns the output token limit for vendors that require one.
func (h *ConfigHelper) ExtractMaxTokens(types.ProviderConfig) int {
	if h.providerType == types.ProviderTypeGoogle {
		return 8192
	}
	return 4096
}

// SanitizeConfigForLogging masks the API key.
func (h *ConfigHelper) SanitizeConfigForLogging(config types.ProviderConfig) types.ProviderConfig {
	if config.APIKey != "" {
		config.APIKey = "***"
	}
	return config
}
