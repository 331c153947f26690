// Package chat models a conversation as a thread of content blocks and
// streams provider answers into them.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// Role is the author of a content block.
type Role string

const (
	RoleNone   Role = "NONE"
	RoleSystem Role = "SYSTEM"
	RoleUser   Role = "USER"
	RoleAI     Role = "AI"
)

// ContentType is the kind of payload a block carries.
type ContentType string

const (
	ContentTypeNone ContentType = "NONE"
	ContentTypeText ContentType = "TEXT"
)

// ContentBlock is one turn in a thread.
type ContentBlock struct {
	Time        time.Time
	ContentType ContentType
	Role        Role
	Content     Content
}

// Thread is a conversation. Blocks are appended in order; an exchange may be
// streaming into the last block.
type Thread struct {
	WorkspaceID  uuid.UUID
	ChatID       uuid.UUID
	Name         string
	Seed         int
	SystemPrompt string
	Blocks       []*ContentBlock
}

// NewThread creates an empty thread outside any workspace.
func NewThread(seed int, systemPrompt string) *Thread {
	return &Thread{
		WorkspaceID:  uuid.Nil,
		ChatID:       uuid.New(),
		Seed:         seed,
		SystemPrompt: systemPrompt,
		Blocks:       []*ContentBlock{},
	}
}

// AddBlock appends a block with the given role and content.
func (t *Thread) AddBlock(at time.Time, role Role, content Content) *ContentBlock {
	block := &ContentBlock{
		Time:        at,
		ContentType: content.Type(),
		Role:        role,
		Content:     content,
	}
	t.Blocks = append(t.Blocks, block)
	return block
}

// ToChatRequest turns the thread into a provider request. Blocks without
// text, such as an answer that has not started yet, are left out.
func (t *Thread) ToChatRequest(model types.Model) types.ChatRequest {
	request := types.ChatRequest{
		SystemPrompt: t.SystemPrompt,
		Model:        model,
		Seed:         t.Seed,
		Messages:     make([]types.ChatMessage, 0, len(t.Blocks)),
	}

	for _, block := range t.Blocks {
		text, ok := block.Content.(*ContentText)
		if !ok || block.ContentType != ContentTypeText {
			continue
		}
		content := text.Text()
		if strings.TrimSpace(content) == "" {
			continue
		}

		var role string
		switch block.Role {
		case RoleUser:
			role = types.RoleUser
		case RoleAI:
			role = types.RoleAssistant
		case RoleSystem:
			role = types.RoleSystem
		default:
			continue
		}
		request.Messages = append(request.Messages, types.ChatMessage{Role: role, Content: content})
	}
	return request
}
