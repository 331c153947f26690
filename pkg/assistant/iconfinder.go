package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
)

// IconFinder suggests search keywords for icons that fit a context.
type IconFinder struct {
	*Base

	mu           sync.Mutex
	inputContext string
	iconSource   settings.IconSource
}

// NewIconFinder creates the icon finder assistant.
func NewIconFinder(manager *settings.Manager, opts ...Option) *IconFinder {
	f := &IconFinder{iconSource: settings.IconSourceGeneric}
	f.Base = NewBase(f, manager, opts...)
	return f
}

func (f *IconFinder) Title() string { return "Icon Finder" }

func (f *IconFinder) Description() string {
	return "Find icons matching a context. The assistant suggests keywords to search for on icon websites."
}

func (f *IconFinder) SystemPrompt() string {
	return `I can search for icons using US English keywords. Please help me to find the right
search keywords for the icon that fits the context the user describes. Suggest a few keywords,
one per line, ordered from the most to the least fitting. When an icon source is named, use the
vocabulary of that source. Do not add any explanation.`
}

// Initialize applies the preselection and picks up a context sent from
// another assistant.
func (f *IconFinder) Initialize() {
	f.MightPreselectValues()

	if f.bus == nil {
		return
	}
	if texts := messagebus.CheckDeferredMessages[string](f.bus, messagebus.EventSendToIconFinderAssistant); len(texts) > 0 {
		f.mu.Lock()
		f.inputContext = texts[0]
		f.mu.Unlock()
	}
}

func (f *IconFinder) MightPreselectValues() bool {
	snap := f.settingsSnapshot()
	if !snap.PreselectIconOptions {
		return false
	}

	f.mu.Lock()
	f.iconSource = snap.PreselectedIconSource
	f.mu.Unlock()

	f.selectProviderByID(snap.PreselectedIconProvider)
	return true
}

func (f *IconFinder) ResetFrom() {
	f.mu.Lock()
	f.inputContext = ""
	f.mu.Unlock()

	if !f.MightPreselectValues() {
		f.mu.Lock()
		f.iconSource = settings.IconSourceGeneric
		f.mu.Unlock()
	}
}

// SetContext sets the description of what the icon is for.
func (f *IconFinder) SetContext(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputContext = text
}

// Context returns the icon's context.
func (f *IconFinder) Context() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inputContext
}

// SetIconSource selects the website to search on.
func (f *IconFinder) SetIconSource(source settings.IconSource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.iconSource = source
}

// IconSource returns the selected icon website.
func (f *IconFinder) IconSource() settings.IconSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.iconSource
}

func (f *IconFinder) validateContext(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Please provide a context. This will help the AI to find the right icon. You might type just a keyword or copy a sentence from your document."
	}
	return ""
}

func iconSourcePrompt(source settings.IconSource) string {
	if source == settings.IconSourceGeneric || source == "" {
		return "Our icons must be found on a generic icon website."
	}
	return fmt.Sprintf("We use icons from %s.", source.Name())
}

// FindIcon asks the provider for keywords matching the context.
func (f *IconFinder) FindIcon(ctx context.Context) (string, error) {
	f.mu.Lock()
	iconContext := f.inputContext
	source := f.iconSource
	f.mu.Unlock()

	if err := f.validate(f.validateContext(iconContext)); err != nil {
		return "", err
	}

	f.CreateChatThread()
	at := f.AddUserRequest(fmt.Sprintf("%s\n\nI search for an icon for the following context:\n\n```\n%s\n```",
		iconSourcePrompt(source), iconContext))
	return f.AddAIResponse(ctx, at)
}
