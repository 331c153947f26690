package assistant

import "github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"

// SendTo names a destination that can receive an assistant's result.
type SendTo string

const (
	SendToNone                 SendTo = "NONE"
	SendToChat                 SendTo = "CHAT"
	SendToTranslationAssistant SendTo = "TRANSLATION_ASSISTANT"
	SendToIconFinderAssistant  SendTo = "ICON_FINDER_ASSISTANT"
)

// Routes of the destinations in the host application.
const (
	RouteHome        = "/"
	RouteChat        = "/chat"
	RouteTranslation = "/assistant/translation"
	RouteIconFinder  = "/assistant/icons"
)

// SendToData is where a destination listens and how to navigate there.
type SendToData struct {
	Event messagebus.Event
	Route string
}

// Data returns the event and route of the destination.
func (s SendTo) Data() SendToData {
	switch s {
	case SendToChat:
		return SendToData{Event: messagebus.EventSendToChat, Route: RouteChat}
	case SendToTranslationAssistant:
		return SendToData{Event: messagebus.EventSendToTranslationAssistant, Route: RouteTranslation}
	case SendToIconFinderAssistant:
		return SendToData{Event: messagebus.EventSendToIconFinderAssistant, Route: RouteIconFinder}
	default:
		return SendToData{Event: messagebus.EventNone, Route: RouteHome}
	}
}

// Name returns the display name of the destination.
func (s SendTo) Name() string {
	switch s {
	case SendToChat:
		return "New Chat"
	case SendToTranslationAssistant:
		return "Translation Assistant"
	case SendToIconFinderAssistant:
		return "Icon Finder Assistant"
	default:
		return "Nowhere"
	}
}

// SendToButton describes what a "send to" action hands over.
type SendToButton struct {
	// Self is the destination of the assistant owning the button; it is not
	// offered as a target.
	Self SendTo

	// UseResultingContentBlockData sends the last answer instead of GetText.
	UseResultingContentBlockData bool
	GetText                      func() string
}

// Destinations lists the targets the button offers.
func (b SendToButton) Destinations() []SendTo {
	all := []SendTo{SendToChat, SendToTranslationAssistant, SendToIconFinderAssistant}
	out := make([]SendTo, 0, len(all))
	for _, d := range all {
		if d != b.Self {
			out = append(out, d)
		}
	}
	return out
}
