package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// Content is the payload of a block.
type Content interface {
	Type() ContentType

	// InitialRemoteWait reports whether the block still waits for the first
	// data from the provider.
	InitialRemoteWait() bool

	// IsStreaming reports whether data is being written into the block.
	IsStreaming() bool

	// CreateFromProvider streams the provider's answer to thread into this
	// content, calling onUpdate after each change.
	CreateFromProvider(ctx context.Context, provider types.ChatProvider, model types.Model, thread *Thread, onUpdate func()) error
}

// ContentText is text content. It may be read from any goroutine while a
// provider writes to it.
type ContentText struct {
	mu                sync.RWMutex
	text              strings.Builder
	initialRemoteWait bool
	isStreaming       bool
}

var _ Content = (*ContentText)(nil)

// NewContentText creates text content holding text.
func NewContentText(text string) *ContentText {
	c := &ContentText{}
	c.text.WriteString(text)
	return c
}

// NewPendingContentText creates empty content that waits for a provider.
func NewPendingContentText() *ContentText {
	return &ContentText{initialRemoteWait: true}
}

func (c *ContentText) Type() ContentType { return ContentTypeText }

// Text returns the current text.
func (c *ContentText) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.text.String()
}

func (c *ContentText) InitialRemoteWait() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialRemoteWait
}

// SetInitialRemoteWait sets the waiting flag.
func (c *ContentText) SetInitialRemoteWait(wait bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialRemoteWait = wait
}

func (c *ContentText) IsStreaming() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isStreaming
}

func (c *ContentText) append(delta string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text.WriteString(delta)
	if delta != "" {
		c.initialRemoteWait = false
	}
}

func (c *ContentText) setStreaming(streaming bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isStreaming = streaming
}

// CreateFromProvider appends the streamed answer to the text. The waiting
// flag is cleared with the first non-empty delta and again on success. On
// failure the flag and partial text stay as the provider left them.
func (c *ContentText) CreateFromProvider(ctx context.Context, provider types.ChatProvider, model types.Model, thread *Thread, onUpdate func()) error {
	if provider == nil {
		return errors.New("no provider")
	}
	if thread == nil {
		return errors.New("no chat thread")
	}
	if onUpdate == nil {
		onUpdate = func() {}
	}

	request := thread.ToChatRequest(model)

	c.setStreaming(true)
	defer c.setStreaming(false)

	stream, err := provider.StreamChatCompletion(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			if chunk.Content != "" {
				c.append(chunk.Content)
			}
			break
		}
		if err != nil {
			return fmt.Errorf("stream interrupted: %w", err)
		}
		if chunk.Content == "" {
			continue
		}
		c.append(chunk.Content)
		onUpdate()
	}

	c.SetInitialRemoteWait(false)
	return nil
}
