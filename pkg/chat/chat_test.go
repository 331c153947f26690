package chat

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/internal/testutil"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

func TestNewThread(t *testing.T) {
	thread := NewThread(42, "You are helpful.")

	assert.Equal(t, uuid.Nil, thread.WorkspaceID)
	assert.NotEqual(t, uuid.Nil, thread.ChatID)
	assert.Equal(t, 42, thread.Seed)
	assert.Equal(t, "You are helpful.", thread.SystemPrompt)
	assert.Empty(t, thread.Blocks)

	assert.NotEqual(t, thread.ChatID, NewThread(42, "").ChatID)
}

func TestThread_ToChatRequest(t *testing.T) {
	thread := NewThread(7, "system")
	now := time.Now()
	thread.AddBlock(now, RoleUser, NewContentText("Hallo"))
	thread.AddBlock(now, RoleAI, NewContentText("Hello"))
	thread.AddBlock(now, RoleUser, NewContentText("   "))
	thread.AddBlock(now, RoleNone, NewContentText("ignored"))
	thread.AddBlock(now, RoleAI, NewPendingContentText())

	request := thread.ToChatRequest(types.NewModel("m"))

	assert.Equal(t, "system", request.SystemPrompt)
	assert.Equal(t, 7, request.Seed)
	assert.Equal(t, "m", request.Model.ID)
	assert.Equal(t, []types.ChatMessage{
		{Role: types.RoleUser, Content: "Hallo"},
		{Role: types.RoleAssistant, Content: "Hello"},
	}, request.Messages)
}

func TestContentText_CreateFromProvider(t *testing.T) {
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	provider.SetChunks("Hi ", "there")

	thread := NewThread(1, "sys")
	thread.AddBlock(time.Now(), RoleUser, NewContentText("Hello"))
	content := NewPendingContentText()
	block := thread.AddBlock(time.Now(), RoleAI, content)
	assert.Equal(t, ContentTypeText, block.ContentType)
	assert.True(t, content.InitialRemoteWait())

	var updates atomic.Int32
	err := content.CreateFromProvider(t.Context(), provider, types.NewModel("m"), thread, func() { updates.Add(1) })

	require.NoError(t, err)
	assert.Equal(t, "Hi there", content.Text())
	assert.False(t, content.InitialRemoteWait())
	assert.False(t, content.IsStreaming())
	assert.Equal(t, int32(2), updates.Load())

	requests := provider.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, []types.ChatMessage{{Role: types.RoleUser, Content: "Hello"}}, requests[0].Messages)
}

func TestContentText_CreateFromProvider_EmptyAnswer(t *testing.T) {
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	provider.SetChunks()

	content := NewPendingContentText()
	err := content.CreateFromProvider(t.Context(), provider, types.NewModel("m"), NewThread(0, ""), nil)

	require.NoError(t, err)
	assert.Empty(t, content.Text())
	assert.False(t, content.InitialRemoteWait())
}

func TestContentText_CreateFromProvider_Errors(t *testing.T) {
	t.Run("start fails", func(t *testing.T) {
		provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
		provider.SetStreamError(errors.New("connection refused"))

		content := NewPendingContentText()
		err := content.CreateFromProvider(t.Context(), provider, types.NewModel("m"), NewThread(0, ""), nil)

		require.Error(t, err)
		assert.True(t, content.InitialRemoteWait())
		assert.Empty(t, content.Text())
		assert.False(t, content.IsStreaming())
	})

	t.Run("fails mid stream", func(t *testing.T) {
		provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
		provider.SetChunks("partial")
		provider.SetMidStreamError(errors.New("reset by peer"))

		content := NewPendingContentText()
		err := content.CreateFromProvider(t.Context(), provider, types.NewModel("m"), NewThread(0, ""), nil)

		require.Error(t, err)
		assert.Equal(t, "partial", content.Text())
		assert.False(t, content.InitialRemoteWait())
	})

	t.Run("missing arguments", func(t *testing.T) {
		content := NewPendingContentText()
		assert.Error(t, content.CreateFromProvider(t.Context(), nil, types.Model{}, NewThread(0, ""), nil))

		provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
		assert.Error(t, content.CreateFromProvider(t.Context(), provider, types.Model{}, nil, nil))
	})
}

func TestContentText_ConcurrentReads(t *testing.T) {
	provider := testutil.NewConfigurableMockProvider("mock", types.ProviderTypeOpenAI)
	provider.SetChunks("a", "b", "c", "d", "e")

	content := NewPendingContentText()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = content.Text()
				_ = content.InitialRemoteWait()
			}
		}
	}()

	err := content.CreateFromProvider(t.Context(), provider, types.NewModel("m"), NewThread(0, ""), nil)
	close(done)
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, "abcde", content.Text())
}
