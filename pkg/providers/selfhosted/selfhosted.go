// Package selfhosted connects to an OpenAI-compatible server the user runs
// themselves, such as LM Studio, llama.cpp or ollama.
package selfhosted

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/openai"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

var (
	// ErrInvalidHostname means the hostname is not an absolute http(s) URL.
	ErrInvalidHostname = errors.New("invalid self-hosted hostname")
	// ErrMissingHost means no server kind was selected.
	ErrMissingHost = errors.New("no self-hosted host selected")
)

// Provider is an OpenAI-compatible provider bound to a local endpoint.
type Provider struct {
	*openai.Provider
	host types.Host
}

// NewProvider validates the connection parameters in config and builds the
// provider. Invalid parameters return an error.
func NewProvider(config types.ProviderConfig, logger types.Logger) (types.Provider, error) {
	return New(config, logger)
}

// New is NewProvider returning the concrete type.
func New(config types.ProviderConfig, logger types.Logger) (*Provider, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}

	config.Type = types.ProviderTypeSelfHosted
	baseURL := common.NewConfigHelper(types.ProviderTypeSelfHosted).ExtractBaseURL(config)

	inner, err := openai.NewCompatibleProvider(config, logger, openai.WithBaseURL(baseURL), openai.WithOptionalAPIKey())
	if err != nil {
		return nil, err
	}
	return &Provider{Provider: inner, host: config.Host}, nil
}

// Host returns the kind of server behind the provider.
func (p *Provider) Host() types.Host {
	return p.host
}

// Validate checks the self-hosted connection parameters.
func Validate(config types.ProviderConfig) error {
	switch config.Host {
	case types.HostLMStudio, types.HostLlamaCpp, types.HostOllama:
	case types.HostNone, "":
		return ErrMissingHost
	default:
		return fmt.Errorf("%w: unknown host %q", ErrMissingHost, config.Host)
	}

	hostname := strings.TrimSpace(config.Hostname)
	if hostname == "" {
		return fmt.Errorf("%w: hostname is empty", ErrInvalidHostname)
	}
	u, err := url.Parse(hostname)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHostname, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidHostname, hostname)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidHostname, hostname)
	}
	return nil
}
