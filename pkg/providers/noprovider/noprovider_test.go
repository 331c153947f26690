package noprovider

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

func TestProvider(t *testing.T) {
	provider, err := NewProvider(types.ProviderConfig{InstanceName: "broken"}, nil)
	require.NoError(t, err)

	assert.Equal(t, types.ProviderTypeNone, provider.Type())
	assert.Equal(t, "broken", provider.InstanceName())
	assert.Equal(t, "No provider selected", provider.Name())

	models, err := provider.GetTextModels(t.Context())
	require.NoError(t, err)
	assert.Empty(t, models)

	stream, err := provider.StreamChatCompletion(t.Context(), types.ChatRequest{})
	require.NoError(t, err)
	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, stream.Close())
}
