package confidence

import "github.com/cecil-the-coder/ai-studio-kit/pkg/types"

const regionUSA = "America, U.S."

// LevelResolver supplies the confidence level the user configured for a
// provider identity.
type LevelResolver interface {
	ConfiguredConfidenceLevel(t types.ProviderType) Level
}

// Get returns the descriptor for t with the configured level applied.
// ProviderTypeNone always yields None; the level is not applied to it.
func Get(t types.ProviderType, configured Level) Confidence {
	var c Confidence
	switch t {
	case types.ProviderTypeNone:
		return None

	case types.ProviderTypeFireworks:
		c = USANotTrusted.WithRegion(regionUSA).WithSources("https://fireworks.ai/terms-of-service")

	case types.ProviderTypeOpenAI:
		c = USANoTraining.WithRegion(regionUSA).WithSources(
			"https://platform.openai.com/docs/models/default-usage-policies-by-endpoint",
			"https://openai.com/policies/terms-of-use/",
			"https://help.openai.com/en/articles/5722486-how-your-data-is-used-to-improve-model-performance",
			"https://openai.com/enterprise-privacy/",
		)

	case types.ProviderTypeGoogle:
		c = USANoTraining.WithRegion(regionUSA).WithSources("https://ai.google.dev/gemini-api/terms")

	case types.ProviderTypeGroq:
		c = USANoTraining.WithRegion(regionUSA).WithSources("https://wow.groq.com/terms-of-use/")

	case types.ProviderTypeAnthropic:
		c = USANoTraining.WithRegion(regionUSA).WithSources("https://www.anthropic.com/legal/commercial-terms")

	case types.ProviderTypeMistral:
		c = GDPRNoTraining.WithRegion("Europe, France").WithSources("https://mistral.ai/terms/#terms-of-service-la-plateforme")

	case types.ProviderTypeSelfHosted:
		c = SelfHosted

	default:
		c = Unknown
	}

	return c.WithLevel(configured)
}

// GetFor is Get with the level looked up through resolver.
func GetFor(t types.ProviderType, resolver LevelResolver) Confidence {
	if t == types.ProviderTypeNone {
		return None
	}
	return Get(t, resolver.ConfiguredConfidenceLevel(t))
}
