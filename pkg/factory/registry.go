package factory

import (
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/anthropic"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/google"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/openai"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/selfhosted"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// RegisterDefaultProviders registers a constructor for every type listed by
// types.AllProviderTypes.
func RegisterDefaultProviders(factory *DefaultProviderFactory) {
	// OpenAI-compatible vendors
	factory.RegisterProvider(types.ProviderTypeOpenAI, openai.NewProvider)
	factory.RegisterProvider(types.ProviderTypeMistral, openai.NewMistralProvider)
	factory.RegisterProvider(types.ProviderTypeGroq, openai.NewGroqProvider)
	factory.RegisterProvider(types.ProviderTypeFireworks, openai.NewFireworksProvider)

	factory.RegisterProvider(types.ProviderTypeAnthropic, anthropic.NewProvider)
	factory.RegisterProvider(types.ProviderTypeGoogle, google.NewProvider)

	// Self-hosted validates hostname and host kind from the config
	factory.RegisterProvider(types.ProviderTypeSelfHosted, selfhosted.NewProvider)
}

// CreateModelProvider creates a handle used only for model discovery.
func CreateModelProvider(config types.ProviderConfig, logger types.Logger) types.ModelProvider {
	return NewDefaultFactory().CreateProvider(config, logger)
}

// CreateChatProvider creates a handle used only for chat streaming.
func CreateChatProvider(config types.ProviderConfig, logger types.Logger) types.ChatProvider {
	return NewDefaultFactory().CreateProvider(config, logger)
}
