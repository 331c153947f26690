package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/internal/testutil"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/anthropic"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/google"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/noprovider"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/openai"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/selfhosted"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// Every selectable identity needs a constructor; a missing one would silently
// degrade to the null provider.
func TestRegisterDefaultProviders_CoversAllTypes(t *testing.T) {
	factory := NewDefaultFactory()

	for _, providerType := range types.AllProviderTypes() {
		assert.True(t, factory.IsRegistered(providerType), "no constructor for %s", providerType)
	}
	assert.False(t, factory.IsRegistered(types.ProviderTypeNone))
	assert.Len(t, factory.GetSupportedProviders(), len(types.AllProviderTypes()))
}

func TestRegisterDefaultProviders_ConcreteTypes(t *testing.T) {
	factory := NewDefaultFactory()

	tests := []struct {
		config   types.ProviderConfig
		expected interface{}
	}{
		{types.ProviderConfig{Type: types.ProviderTypeOpenAI}, &openai.Provider{}},
		{types.ProviderConfig{Type: types.ProviderTypeMistral}, &openai.Provider{}},
		{types.ProviderConfig{Type: types.ProviderTypeGroq}, &openai.Provider{}},
		{types.ProviderConfig{Type: types.ProviderTypeFireworks}, &openai.Provider{}},
		{types.ProviderConfig{Type: types.ProviderTypeAnthropic}, &anthropic.Provider{}},
		{types.ProviderConfig{Type: types.ProviderTypeGoogle, APIKey: "k"}, &google.Provider{}},
		{
			types.ProviderConfig{Type: types.ProviderTypeSelfHosted, Hostname: "http://localhost:1234", Host: types.HostLMStudio},
			&selfhosted.Provider{},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.config.Type), func(t *testing.T) {
			tt.config.InstanceName = "instance-" + string(tt.config.Type)
			provider := factory.CreateProvider(tt.config, nil)

			require.NotNil(t, provider)
			assert.IsType(t, tt.expected, provider)
			assert.Equal(t, tt.config.Type, provider.Type())
			assert.Equal(t, tt.config.InstanceName, provider.InstanceName())
		})
	}
}

func TestCreateProvider_BadSelfHostedFallsBack(t *testing.T) {
	logger := testutil.NewCapturingLogger()

	provider := NewDefaultFactory().CreateProvider(types.ProviderConfig{
		Type:         types.ProviderTypeSelfHosted,
		InstanceName: "broken",
		Hostname:     "not a url",
		Host:         types.HostOllama,
	}, logger)

	assert.IsType(t, &noprovider.Provider{}, provider)
	assert.Equal(t, "broken", provider.InstanceName())
	errorsLogged := logger.Entries("error")
	require.Len(t, errorsLogged, 1)
	assert.Contains(t, errorsLogged[0].Message, "Failed to create provider: ")
	assert.Contains(t, errorsLogged[0].Message, "invalid self-hosted hostname")
}

func TestCreateModelAndChatProvider(t *testing.T) {
	models, err := CreateModelProvider(types.ProviderConfig{Type: types.ProviderTypeNone}, nil).GetTextModels(t.Context())
	require.NoError(t, err)
	assert.Empty(t, models)

	chat := CreateChatProvider(types.ProviderConfig{Type: types.ProviderTypeNone}, nil)
	stream, err := chat.StreamChatCompletion(t.Context(), types.ChatRequest{})
	require.NoError(t, err)
	assert.NoError(t, stream.Close())
}
