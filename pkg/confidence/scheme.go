package confidence

import "github.com/cecil-the-coder/ai-studio-kit/pkg/types"

// Scheme is a preset mapping providers to confidence levels.
type Scheme string

const (
	SchemeTrustAll            Scheme = "TRUST_ALL"
	SchemeTrustUSAEurope      Scheme = "TRUST_USA_EUROPE"
	SchemeTrustUSA            Scheme = "TRUST_USA"
	SchemeTrustEuropeOnly     Scheme = "TRUST_EUROPE_ONLY"
	SchemeTrustOnlySelfHosted Scheme = "TRUST_ONLY_SELF_HOSTED"
	SchemeCustom              Scheme = "CUSTOM"
)

// AllSchemes lists the schemes in display order.
func AllSchemes() []Scheme {
	return []Scheme{
		SchemeTrustAll,
		SchemeTrustUSAEurope,
		SchemeTrustUSA,
		SchemeTrustEuropeOnly,
		SchemeTrustOnlySelfHosted,
		SchemeCustom,
	}
}

// Name returns the human-readable name of the scheme.
func (s Scheme) Name() string {
	switch s {
	case SchemeTrustAll:
		return "Trust all LLM providers"
	case SchemeTrustUSAEurope:
		return "Trust LLM providers from the USA and Europe"
	case SchemeTrustUSA:
		return "Trust LLM providers from the USA"
	case SchemeTrustEuropeOnly:
		return "Trust LLM providers from Europe"
	case SchemeTrustOnlySelfHosted:
		return "Trust only self-hosted providers"
	case SchemeCustom:
		return "Configure your own confidence scheme"
	default:
		return "Unknown confidence scheme"
	}
}

// Level returns the level the scheme assigns to t. custom is consulted only
// by SchemeCustom; providers missing from it are UNKNOWN.
func (s Scheme) Level(t types.ProviderType, custom map[types.ProviderType]Level) Level {
	if t == types.ProviderTypeNone {
		return LevelNone
	}

	switch s {
	case SchemeTrustAll:
		if t == types.ProviderTypeSelfHosted {
			return LevelHigh
		}
		return LevelMedium

	case SchemeTrustUSAEurope:
		switch t {
		case types.ProviderTypeSelfHosted:
			return LevelHigh
		case types.ProviderTypeFireworks:
			return LevelUntrusted
		default:
			return LevelMedium
		}

	case SchemeTrustUSA:
		switch t {
		case types.ProviderTypeSelfHosted:
			return LevelHigh
		case types.ProviderTypeMistral:
			return LevelLow
		case types.ProviderTypeFireworks:
			return LevelUntrusted
		default:
			return LevelMedium
		}

	case SchemeTrustEuropeOnly:
		switch t {
		case types.ProviderTypeSelfHosted:
			return LevelHigh
		case types.ProviderTypeMistral:
			return LevelMedium
		default:
			return LevelLow
		}

	case SchemeTrustOnlySelfHosted:
		if t == types.ProviderTypeSelfHosted {
			return LevelHigh
		}
		return LevelVeryLow

	case SchemeCustom:
		if level, ok := custom[t]; ok {
			return level
		}
		return LevelUnknown

	default:
		return LevelUnknown
	}
}
