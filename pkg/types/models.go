package types

// Model represents an AI model offered by a provider
type Model struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// NewModel creates a model from its identifier
func NewModel(id string) Model {
	return Model{ID: id}
}

// String returns the display name, falling back to the ID
func (m Model) String() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// IsZero reports whether no model is selected
func (m Model) IsZero() bool {
	return m.ID == ""
}

// Message roles used on the wire
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a chat message
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is what an assistant asks a provider to answer
type ChatRequest struct {
	SystemPrompt string        `json:"system_prompt"`
	Model        Model         `json:"model"`
	Seed         int           `json:"seed"`
	Messages     []ChatMessage `json:"messages"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionStream represents a streaming response
type ChatCompletionStream interface {
	Next() (ChatCompletionChunk, error)
	Close() error
}

// ChatCompletionChunk represents a chunk of a streaming response
type ChatCompletionChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Usage   Usage  `json:"usage"`
}
