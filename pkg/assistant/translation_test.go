package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/internal/testutil"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

func TestTranslation_Validation(t *testing.T) {
	tests := []struct {
		name     string
		provider types.ProviderConfig
		text     string
		target   settings.CommonLanguage
		custom   string
		wantErr  error
		issues   []string
	}{
		{
			name:    "no provider",
			text:    "Hallo",
			target:  settings.LanguageEnUS,
			wantErr: ErrNoProvider,
			issues:  []string{"Please select a provider."},
		},
		{
			name:     "empty text",
			provider: openAIConfig,
			text:     "  ",
			target:   settings.LanguageEnUS,
			wantErr:  ErrInvalidInput,
			issues:   []string{"Please provide a text as input. You might copy the desired text from a document or a website."},
		},
		{
			name:     "no target language",
			provider: openAIConfig,
			text:     "Hallo",
			target:   settings.LanguageAsIs,
			wantErr:  ErrInvalidInput,
			issues:   []string{"Please select a target language."},
		},
		{
			name:     "other language without name",
			provider: openAIConfig,
			text:     "Hallo",
			target:   settings.LanguageOther,
			wantErr:  ErrInvalidInput,
			issues:   []string{"Please provide a custom language."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
			tr := NewTranslation(nil, WithFactory(mockFactory(provider)))
			tr.SetProvider(tt.provider)
			tr.SetInputText(t.Context(), tt.text)
			tr.SetTargetLanguage(tt.target, tt.custom)

			_, err := tr.TranslateText(t.Context(), true)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.issues, tr.InputIssues())
			assert.False(t, tr.InputIsValid())
			assert.Empty(t, provider.Requests())
		})
	}
}

func TestTranslation_TranslateText(t *testing.T) {
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	provider.SetChunks("Hello ", "world")
	tr := NewTranslation(nil, WithFactory(mockFactory(provider)))
	tr.SetProvider(openAIConfig)
	tr.SetTargetLanguage(settings.LanguageOther, "Klingon")
	tr.SetInputText(t.Context(), "Hallo Welt")

	answer, err := tr.TranslateText(t.Context(), false)
	require.NoError(t, err)

	assert.Equal(t, "Hello world", answer)
	assert.True(t, tr.InputIsValid())

	requests := provider.Requests()
	require.Len(t, requests, 1)
	require.Len(t, requests[0].Messages, 1)
	assert.Contains(t, requests[0].Messages[0].Content, "Klingon")
	assert.Contains(t, requests[0].Messages[0].Content, "Hallo Welt")
	assert.Equal(t, tr.SystemPrompt(), requests[0].SystemPrompt)

	// Unchanged input is not sent again unless forced
	again, err := tr.TranslateText(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", again)
	assert.Len(t, provider.Requests(), 1)

	_, err = tr.TranslateText(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, provider.Requests(), 2)
}

func TestTranslation_LiveTranslationDebounces(t *testing.T) {
	manager := newTestManager(t, func(d *settings.Data) { d.LiveTranslationDebounceIntervalMilliseconds = 50 })
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	tr := NewTranslation(manager, WithFactory(mockFactory(provider)))
	tr.SetProvider(openAIConfig)
	tr.SetTargetLanguage(settings.LanguageDeDE, "")
	tr.SetLiveTranslation(true)

	tr.SetInputText(t.Context(), "Hel")
	tr.SetInputText(t.Context(), "Hello")

	require.Eventually(t, func() bool { return len(provider.Requests()) > 0 && !tr.IsProcessing() },
		2*time.Second, 10*time.Millisecond)

	requests := provider.Requests()
	last := requests[len(requests)-1]
	assert.Contains(t, last.Messages[0].Content, "Hello")
	assert.Contains(t, last.Messages[0].Content, "German (Germany)")
}

func TestTranslation_NoLiveTranslationWhenOff(t *testing.T) {
	manager := newTestManager(t, func(d *settings.Data) { d.LiveTranslationDebounceIntervalMilliseconds = 10 })
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	tr := NewTranslation(manager, WithFactory(mockFactory(provider)))
	tr.SetProvider(openAIConfig)
	tr.SetTargetLanguage(settings.LanguageDeDE, "")

	tr.SetInputText(t.Context(), "Hello")
	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, provider.Requests())
}

func TestTranslation_PreselectionAndDeferredText(t *testing.T) {
	manager := newTestManager(t, nil)
	added, err := manager.AddProvider(types.ProviderConfig{InstanceName: "eu", Type: types.ProviderTypeMistral, Model: types.NewModel("mistral-large-latest")})
	require.NoError(t, err)
	require.NoError(t, manager.Update(func(d *settings.Data) error {
		d.PreselectTranslationOptions = true
		d.PreselectLiveTranslation = true
		d.PreselectedTranslationTargetLanguage = settings.LanguageFrFR
		d.PreselectedTranslationProvider = added.ID
		return nil
	}))

	bus := messagebus.New()
	bus.DeferMessage("Icon Finder", messagebus.EventSendToTranslationAssistant, "Bonjour")

	tr := NewTranslation(manager, WithMessageBus(bus))
	tr.Initialize()

	assert.Equal(t, added, tr.Provider())
	assert.True(t, tr.LiveTranslation())
	target, _ := tr.TargetLanguage()
	assert.Equal(t, settings.LanguageFrFR, target)
	assert.Equal(t, "Bonjour", tr.InputText())
	assert.Zero(t, bus.PendingCount(messagebus.EventSendToTranslationAssistant))

	// Reset keeps the preselection
	tr.ResetForm()
	assert.Equal(t, added, tr.Provider())
	assert.Empty(t, tr.InputText())
	target, _ = tr.TargetLanguage()
	assert.Equal(t, settings.LanguageFrFR, target)
}

func TestTranslation_ResetWithoutPreselection(t *testing.T) {
	tr := NewTranslation(nil)
	tr.SetProvider(openAIConfig)
	tr.SetTargetLanguage(settings.LanguageJaJP, "")
	tr.SetLiveTranslation(true)
	tr.SetInputText(t.Context(), "text")

	tr.ResetForm()

	assert.Equal(t, types.ProviderConfig{}, tr.Provider())
	assert.False(t, tr.LiveTranslation())
	target, custom := tr.TargetLanguage()
	assert.Equal(t, settings.LanguageAsIs, target)
	assert.Empty(t, custom)
	assert.Empty(t, tr.InputText())
}
