package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
)

const defaultDebounceInterval = time.Second

// Translation translates text into a target language, optionally live while
// the user types.
type Translation struct {
	*Base

	mu                       sync.Mutex
	liveTranslation          bool
	inputText                string
	inputTextLastTranslation string
	targetLanguage           settings.CommonLanguage
	customTargetLanguage     string
	debounce                 *time.Timer
}

// NewTranslation creates the translation assistant.
func NewTranslation(manager *settings.Manager, opts ...Option) *Translation {
	t := &Translation{targetLanguage: settings.LanguageAsIs}
	t.Base = NewBase(t, manager, opts...)
	return t
}

func (t *Translation) Title() string { return "Translation" }

func (t *Translation) Description() string {
	return "Translate text into another language."
}

func (t *Translation) SystemPrompt() string {
	return `You get text fragments as input from the user. Your task is to translate these text
fragments into the requested language. You keep the meaning, tone and style of the original
text. You do not add any information, explanation or comment of your own. You reply with the
translated text only.`
}

// Initialize applies the preselection and picks up text sent from another
// assistant.
func (t *Translation) Initialize() {
	t.MightPreselectValues()

	if t.bus == nil {
		return
	}
	if texts := messagebus.CheckDeferredMessages[string](t.bus, messagebus.EventSendToTranslationAssistant); len(texts) > 0 {
		t.mu.Lock()
		t.inputText = texts[0]
		t.mu.Unlock()
	}
}

func (t *Translation) MightPreselectValues() bool {
	snap := t.settingsSnapshot()
	if !snap.PreselectTranslationOptions {
		return false
	}

	t.mu.Lock()
	t.liveTranslation = snap.PreselectLiveTranslation
	t.targetLanguage = snap.PreselectedTranslationTargetLanguage
	t.customTargetLanguage = snap.PreselectTranslationOtherLanguage
	t.mu.Unlock()

	t.selectProviderByID(snap.PreselectedTranslationProvider)
	return true
}

func (t *Translation) ResetFrom() {
	t.mu.Lock()
	if t.debounce != nil {
		t.debounce.Stop()
		t.debounce = nil
	}
	t.inputText = ""
	t.inputTextLastTranslation = ""
	t.mu.Unlock()

	if !t.MightPreselectValues() {
		t.mu.Lock()
		t.liveTranslation = false
		t.targetLanguage = settings.LanguageAsIs
		t.customTargetLanguage = ""
		t.mu.Unlock()
	}
}

// SetLiveTranslation switches live translation on or off.
func (t *Translation) SetLiveTranslation(live bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.liveTranslation = live
	if !live && t.debounce != nil {
		t.debounce.Stop()
		t.debounce = nil
	}
}

// LiveTranslation reports whether live translation is on.
func (t *Translation) LiveTranslation() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveTranslation
}

// SetTargetLanguage selects the target language. custom names the language
// when target is LanguageOther.
func (t *Translation) SetTargetLanguage(target settings.CommonLanguage, custom string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.targetLanguage = target
	t.customTargetLanguage = custom
}

// TargetLanguage returns the selected target and custom language.
func (t *Translation) TargetLanguage() (settings.CommonLanguage, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targetLanguage, t.customTargetLanguage
}

// InputText returns the text to translate.
func (t *Translation) InputText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inputText
}

// SetInputText replaces the text to translate. With live translation on, a
// translation starts once the input has been stable for the configured
// debounce interval.
func (t *Translation) SetInputText(ctx context.Context, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.inputText = text
	if !t.liveTranslation || strings.TrimSpace(text) == "" {
		return
	}

	interval := time.Duration(t.settingsSnapshot().LiveTranslationDebounceIntervalMilliseconds) * time.Millisecond
	if interval <= 0 {
		interval = defaultDebounceInterval
	}
	if t.debounce != nil {
		t.debounce.Stop()
	}
	t.debounce = time.AfterFunc(interval, func() {
		if _, err := t.TranslateText(ctx, false); err != nil {
			t.logger.Debug("Live translation skipped", "error", err)
		}
	})
}

func (t *Translation) validateText(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Please provide a text as input. You might copy the desired text from a document or a website."
	}
	return ""
}

func (t *Translation) validateTargetLanguage(target settings.CommonLanguage) string {
	if target == settings.LanguageAsIs || target == "" {
		return "Please select a target language."
	}
	return ""
}

func (t *Translation) validateCustomLanguage(target settings.CommonLanguage, custom string) string {
	if target == settings.LanguageOther && strings.TrimSpace(custom) == "" {
		return "Please provide a custom language."
	}
	return ""
}

// TranslateText translates the input text. Unless force is set, text that
// was already translated is not sent again and the last result is returned.
func (t *Translation) TranslateText(ctx context.Context, force bool) (string, error) {
	t.mu.Lock()
	text := t.inputText
	target := t.targetLanguage
	custom := t.customTargetLanguage
	alreadyTranslated := text == t.inputTextLastTranslation
	t.mu.Unlock()

	err := t.validate(
		t.validateText(text),
		t.validateTargetLanguage(target),
		t.validateCustomLanguage(target, custom),
	)
	if err != nil {
		return "", err
	}
	if !force && alreadyTranslated {
		return t.Result2Copy(), nil
	}

	t.mu.Lock()
	t.inputTextLastTranslation = text
	t.mu.Unlock()

	t.CreateChatThread()
	at := t.AddUserRequest(fmt.Sprintf("Please translate the text into %s.\n\nThe given text is:\n\n---\n%s",
		target.PromptName(custom), text))
	return t.AddAIResponse(ctx, at)
}
