package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderType_Name(t *testing.T) {
	tests := []struct {
		providerType ProviderType
		expected     string
	}{
		{ProviderTypeNone, "No provider selected"},
		{ProviderTypeOpenAI, "OpenAI"},
		{ProviderTypeAnthropic, "Anthropic"},
		{ProviderTypeMistral, "Mistral"},
		{ProviderTypeGoogle, "Google"},
		{ProviderTypeGroq, "Groq"},
		{ProviderTypeFireworks, "Fireworks.ai"},
		{ProviderTypeSelfHosted, "Self-hosted"},
		{ProviderType("bogus"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.providerType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.providerType.Name())
		})
	}
}

func TestProviderType_ProvidesEmbeddings(t *testing.T) {
	withEmbeddings := map[ProviderType]bool{
		ProviderTypeOpenAI:  true,
		ProviderTypeMistral: true,
		ProviderTypeGoogle:  true,
	}

	for _, providerType := range append(AllProviderTypes(), ProviderTypeNone) {
		assert.Equal(t, withEmbeddings[providerType], providerType.ProvidesEmbeddings(), providerType)
	}
}

func TestAllProviderTypes_ExcludesNone(t *testing.T) {
	all := AllProviderTypes()
	assert.Len(t, all, 7)
	assert.NotContains(t, all, ProviderTypeNone)
}

func TestHost(t *testing.T) {
	assert.Equal(t, "LM Studio", HostLMStudio.Name())
	assert.Equal(t, "llama.cpp", HostLlamaCpp.Name())
	assert.Equal(t, "ollama", HostOllama.Name())
	assert.Equal(t, "None", HostNone.Name())

	assert.Equal(t, "/v1", HostOllama.BaseURLPath())
	assert.Empty(t, HostNone.BaseURLPath())
}

func TestModel_String(t *testing.T) {
	assert.Equal(t, "gpt-4o", NewModel("gpt-4o").String())
	assert.Equal(t, "GPT-4o", Model{ID: "gpt-4o", Name: "GPT-4o"}.String())
	assert.True(t, Model{}.IsZero())
}
