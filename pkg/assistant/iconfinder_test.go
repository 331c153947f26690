package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/internal/testutil"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

func TestIconFinder_FindIcon(t *testing.T) {
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	provider.SetChunks("rocket\n", "launch")

	f := NewIconFinder(nil, WithFactory(mockFactory(provider)))
	f.SetProvider(openAIConfig)
	f.SetIconSource(settings.IconSourceFontAwesome)
	f.SetContext("A button that deploys the app")

	answer, err := f.FindIcon(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "rocket\nlaunch", answer)

	requests := provider.Requests()
	require.Len(t, requests, 1)
	prompt := requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Font Awesome")
	assert.Contains(t, prompt, "A button that deploys the app")
}

func TestIconFinder_Validation(t *testing.T) {
	f := NewIconFinder(nil)
	f.SetProvider(openAIConfig)

	_, err := f.FindIcon(t.Context())

	assert.ErrorIs(t, err, ErrInvalidInput)
	require.Len(t, f.InputIssues(), 1)
	assert.Contains(t, f.InputIssues()[0], "Please provide a context.")
}

func TestIconFinder_InitializeAndReset(t *testing.T) {
	manager := newTestManager(t, func(d *settings.Data) {
		d.PreselectIconOptions = true
		d.PreselectedIconSource = settings.IconSourceBootstrap
	})
	bus := messagebus.New()
	bus.DeferMessage("Translation", messagebus.EventSendToIconFinderAssistant, "settings gear")

	f := NewIconFinder(manager, WithMessageBus(bus))
	f.Initialize()

	assert.Equal(t, settings.IconSourceBootstrap, f.IconSource())
	assert.Equal(t, "settings gear", f.Context())

	f.SetIconSource(settings.IconSourceMaterialUI)
	f.ResetForm()
	assert.Equal(t, settings.IconSourceBootstrap, f.IconSource())
	assert.Empty(t, f.Context())

	plain := NewIconFinder(nil)
	plain.SetIconSource(settings.IconSourceMaterialUI)
	plain.ResetForm()
	assert.Equal(t, settings.IconSourceGeneric, plain.IconSource())
}
