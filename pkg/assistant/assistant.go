// Package assistant drives single-exchange assistant workflows: it builds a
// chat thread from the user's input, asks the selected provider for an
// answer and streams it into a result block that callers can observe, copy
// or hand over to another assistant.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/chat"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/factory"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/random"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

var (
	// ErrNoProvider is returned when a workflow runs without a selected provider.
	ErrNoProvider = errors.New("no provider selected")

	// ErrInvalidInput is returned when a workflow's input does not validate.
	ErrInvalidInput = errors.New("invalid input")
)

// energySavingInterval is the minimum time between UI updates while an
// answer streams and energy saving is enabled.
const energySavingInterval = 3 * time.Second

// Workflow is implemented by each concrete assistant.
type Workflow interface {
	Title() string
	Description() string
	SystemPrompt() string

	// ResetFrom clears the workflow's own input fields.
	ResetFrom()

	// MightPreselectValues applies the preselection from the settings and
	// reports whether it did.
	MightPreselectValues() bool
}

// ProviderFactory turns a provider configuration into a handle.
type ProviderFactory interface {
	CreateProvider(config types.ProviderConfig, logger types.Logger) types.Provider
}

// ProviderFactoryFunc adapts a function to ProviderFactory.
type ProviderFactoryFunc func(config types.ProviderConfig, logger types.Logger) types.Provider

func (f ProviderFactoryFunc) CreateProvider(config types.ProviderConfig, logger types.Logger) types.Provider {
	return f(config, logger)
}

// Navigator switches the host application to another page.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

// Option configures a Base.
type Option func(*Base)

func WithRandom(rng types.RandomSource) Option {
	return func(b *Base) { b.rng = rng }
}

func WithLogger(logger types.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

func WithFactory(f ProviderFactory) Option {
	return func(b *Base) { b.factory = f }
}

func WithMessageBus(bus *messagebus.Bus) Option {
	return func(b *Base) { b.bus = bus }
}

func WithNavigator(n Navigator) Option {
	return func(b *Base) { b.navigator = n }
}

func WithClipboard(c Clipboard) Option {
	return func(b *Base) { b.clipboard = c }
}

// WithStateObserver registers fn to be called whenever the observable state
// changes: before streaming starts, while it runs, after it ends, and after
// a reset.
func WithStateObserver(fn func()) Option {
	return func(b *Base) { b.onStateChanged = fn }
}

// Base holds the state shared by all assistants: the chat thread, the
// result block, the selected provider and the validation outcome. It is
// safe for concurrent use; one exchange runs at a time.
type Base struct {
	workflow       Workflow
	settings       *settings.Manager
	rng            types.RandomSource
	logger         types.Logger
	factory        ProviderFactory
	bus            *messagebus.Bus
	navigator      Navigator
	clipboard      Clipboard
	onStateChanged func()

	mu               sync.Mutex
	providerSettings types.ProviderConfig
	thread           *chat.Thread
	resultingBlock   *chat.ContentBlock
	inputIsValid     bool
	inputIssues      []string
	isProcessing     bool
	generation       uint64
	cancel           context.CancelFunc
}

// NewBase creates the shared state for workflow. manager may be nil, in
// which case the default settings apply.
func NewBase(workflow Workflow, manager *settings.Manager, opts ...Option) *Base {
	b := &Base{
		workflow: workflow,
		settings: manager,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.rng == nil {
		b.rng = random.NewRandom()
	}
	if b.logger == nil {
		b.logger = logging.Nop()
	}
	if b.factory == nil {
		b.factory = factory.NewDefaultFactory()
	}
	if b.navigator == nil {
		b.navigator = NavigatorFunc(func(string) {})
	}
	if b.clipboard == nil {
		b.clipboard = SystemClipboard{}
	}
	if b.onStateChanged == nil {
		b.onStateChanged = func() {}
	}
	return b
}

// Title returns the workflow's title.
func (b *Base) Title() string { return b.workflow.Title() }

// Description returns the workflow's description.
func (b *Base) Description() string { return b.workflow.Description() }

func (b *Base) settingsSnapshot() *settings.Data {
	if b.settings == nil {
		return settings.Default()
	}
	return b.settings.Snapshot()
}

func (b *Base) stateHasChanged() {
	b.onStateChanged()
}

// ValidatingProvider returns the validation message for config, or "" when
// a provider is selected.
func (b *Base) ValidatingProvider(config types.ProviderConfig) string {
	return factory.ValidateProviderSelection(config)
}

// SetProvider selects the provider used for the next exchange.
func (b *Base) SetProvider(config types.ProviderConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.providerSettings = config
}

// Provider returns the selected provider configuration.
func (b *Base) Provider() types.ProviderConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.providerSettings
}

// selectProviderByID selects the configured provider with the given id, or
// clears the selection when there is none.
func (b *Base) selectProviderByID(id string) {
	var config types.ProviderConfig
	if b.settings != nil && id != "" {
		config, _ = b.settings.ProviderByID(id)
	}
	b.SetProvider(config)
}

// UserInputAttributes returns the attributes for the workflow's text inputs.
func (b *Base) UserInputAttributes() map[string]any {
	if b.settings == nil {
		return map[string]any{"spellcheck": "false"}
	}
	return b.settings.InjectSpellchecking(nil)
}

// CreateChatThread starts a new thread with a fresh id, a random seed and
// the workflow's system prompt. Any previous thread is replaced.
func (b *Base) CreateChatThread() *chat.Thread {
	thread := chat.NewThread(b.rng.Next(), b.workflow.SystemPrompt())

	b.mu.Lock()
	b.thread = thread
	b.mu.Unlock()
	return thread
}

// Thread returns the current thread, or nil.
func (b *Base) Thread() *chat.Thread {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.thread
}

// AddUserRequest appends the user's request to the thread and returns its
// timestamp. It panics when no thread was created.
func (b *Base) AddUserRequest(request string) time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.thread == nil {
		panic("assistant: AddUserRequest called before CreateChatThread")
	}
	now := time.Now()
	b.thread.AddBlock(now, chat.RoleUser, chat.NewContentText(request))
	return now
}

// AddAIResponse appends an AI block stamped t and streams the selected
// provider's answer into it. It returns once the stream has finished or
// failed. A ResetForm during streaming cancels the request; the abandoned
// exchange then no longer touches the assistant's state.
func (b *Base) AddAIResponse(ctx context.Context, t time.Time) (string, error) {
	b.mu.Lock()
	if b.thread == nil {
		b.mu.Unlock()
		panic("assistant: AddAIResponse called before CreateChatThread")
	}
	if b.cancel != nil {
		b.cancel()
	}

	text := chat.NewPendingContentText()
	b.resultingBlock = b.thread.AddBlock(t, chat.RoleAI, text)
	b.isProcessing = true
	b.generation++
	generation := b.generation
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	thread := b.thread
	config := b.providerSettings
	b.mu.Unlock()
	defer cancel()

	b.stateHasChanged()

	provider := b.factory.CreateProvider(config, b.logger)
	err := text.CreateFromProvider(ctx, provider, config.Model, thread, b.streamObserver())

	b.mu.Lock()
	current := b.generation == generation
	if current {
		b.isProcessing = false
		b.cancel = nil
	}
	b.mu.Unlock()

	if current {
		if err != nil {
			b.logger.Warn("Failed to stream the AI response",
				"provider_type", string(config.Type),
				"instance", config.InstanceName,
				"error", err,
			)
		}
		b.stateHasChanged()
	}
	if err != nil {
		return text.Text(), fmt.Errorf("assistant %q: %w", b.workflow.Title(), err)
	}
	return text.Text(), nil
}

// streamObserver returns the per-chunk callback. With energy saving enabled
// updates are throttled.
func (b *Base) streamObserver() func() {
	if !b.settingsSnapshot().IsSavingEnergy {
		return b.stateHasChanged
	}
	throttle := &rate.Sometimes{First: 1, Interval: energySavingInterval}
	return func() { throttle.Do(b.stateHasChanged) }
}

// IsProcessing reports whether an answer is being streamed.
func (b *Base) IsProcessing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isProcessing
}

// ResultingContentBlock returns the block of the last answer, or nil.
func (b *Base) ResultingContentBlock() *chat.ContentBlock {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resultingBlock
}

// Result2Copy returns the text of the last answer, or "".
func (b *Base) Result2Copy() string {
	b.mu.Lock()
	block := b.resultingBlock
	b.mu.Unlock()
	return blockText(block)
}

func blockText(block *chat.ContentBlock) string {
	if block == nil {
		return ""
	}
	if text, ok := block.Content.(*chat.ContentText); ok {
		return text.Text()
	}
	return ""
}

// CopyToClipboard copies the last answer to the clipboard.
func (b *Base) CopyToClipboard() error {
	if err := b.clipboard.WriteAll(b.Result2Copy()); err != nil {
		b.logger.Error("Failed to copy the result to the clipboard", "error", err)
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	b.logger.Debug("Copied the result to the clipboard")
	return nil
}

// ConvertToChatThread returns the current thread, or a new empty one.
func (b *Base) ConvertToChatThread() *chat.Thread {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.thread == nil {
		return &chat.Thread{Blocks: []*chat.ContentBlock{}}
	}
	return b.thread
}

// SendToAssistant parks content for destination on the message bus and
// navigates there. The chat receives the whole thread; other assistants
// receive text.
func (b *Base) SendToAssistant(destination SendTo, button SendToButton) {
	data := destination.Data()
	if b.bus == nil {
		b.logger.Warn("No message bus configured, cannot send content", "destination", string(destination))
		return
	}

	sender := b.workflow.Title()
	switch destination {
	case SendToChat:
		b.bus.DeferMessage(sender, data.Event, b.ConvertToChatThread())
	default:
		var content string
		if button.UseResultingContentBlockData {
			content = b.Result2Copy()
		} else if button.GetText != nil {
			content = button.GetText()
		}
		b.bus.DeferMessage(sender, data.Event, content)
	}

	b.navigator.NavigateTo(data.Route)
}

// SetValidation records the outcome of validating the workflow's input.
func (b *Base) SetValidation(issues []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inputIssues = issues
	b.inputIsValid = len(issues) == 0
}

// InputIsValid reports whether the last validation passed.
func (b *Base) InputIsValid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inputIsValid
}

// InputIssues returns the messages of the last validation.
func (b *Base) InputIssues() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.inputIssues...)
}

// validate runs the provider check followed by the workflow's checks and
// records the result.
func (b *Base) validate(checks ...string) error {
	var issues []string
	providerIssue := b.ValidatingProvider(b.Provider())
	if providerIssue != "" {
		issues = append(issues, providerIssue)
	}
	for _, issue := range checks {
		if issue != "" {
			issues = append(issues, issue)
		}
	}
	b.SetValidation(issues)

	if providerIssue != "" {
		return ErrNoProvider
	}
	if len(issues) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, issues)
	}
	return nil
}

// ResetForm abandons any running exchange and clears the thread, the
// result, the provider selection, the workflow's input and the validation.
func (b *Base) ResetForm() {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.generation++
	b.thread = nil
	b.resultingBlock = nil
	b.providerSettings = types.ProviderConfig{}
	b.isProcessing = false
	b.mu.Unlock()

	b.workflow.ResetFrom()

	b.mu.Lock()
	b.inputIsValid = false
	b.inputIssues = nil
	b.mu.Unlock()

	b.stateHasChanged()
}
