// Package confidence describes how far each provider can be trusted with
// user data: jurisdiction, training policy, and the user's configured level.
package confidence

import "slices"

// Tier classifies a provider's data-handling policy.
type Tier string

const (
	TierNone           Tier = "NONE"
	TierUnknown        Tier = "UNKNOWN"
	TierSelfHosted     Tier = "SELF_HOSTED"
	TierUSANotTrusted  Tier = "USA_NOT_TRUSTED"
	TierUSANoTraining  Tier = "USA_NO_TRAINING"
	TierGDPRNoTraining Tier = "GDPR_NO_TRAINING"
)

// Confidence is an immutable descriptor. Use the With methods to derive
// variants; they never modify the receiver.
type Confidence struct {
	Tier        Tier
	Level       Level
	Region      string
	Description string
	sources     []string
}

// Sources returns a copy of the policy URLs backing this descriptor.
func (c Confidence) Sources() []string {
	return slices.Clone(c.sources)
}

// WithRegion returns a copy with the region replaced.
func (c Confidence) WithRegion(region string) Confidence {
	c.sources = slices.Clone(c.sources)
	c.Region = region
	return c
}

// WithSources returns a copy with the sources replaced.
func (c Confidence) WithSources(sources ...string) Confidence {
	c.sources = slices.Clone(sources)
	return c
}

// WithLevel returns a copy with the level replaced.
func (c Confidence) WithLevel(level Level) Confidence {
	c.sources = slices.Clone(c.sources)
	c.Level = level
	return c
}

// Baselines.
var (
	None = Confidence{
		Tier:        TierNone,
		Level:       LevelNone,
		Description: "No provider selected. Please select a provider to see its confidence level.",
	}

	Unknown = Confidence{
		Tier:        TierUnknown,
		Level:       LevelUnknown,
		Description: "The trust level of this provider **has not yet** been thoroughly **investigated and evaluated**. We do not recommend sending confidential or sensitive data to this provider.",
	}

	SelfHosted = Confidence{
		Tier:        TierSelfHosted,
		Level:       LevelHigh,
		Region:      "Self-hosted",
		Description: "You or your organization operate the LLM locally or within your trusted network. In terms of data processing and security, this is the best possible way.",
	}

	USANotTrusted = Confidence{
		Tier:        TierUSANotTrusted,
		Level:       LevelUntrusted,
		Description: "The provider operates its service from the USA and is subject to **U.S. jurisdiction**. In case of suspicion, authorities in the USA can access your data. **Please inform yourself about the use of your data.** We do not know if your data is safe.",
	}

	USANoTraining = Confidence{
		Tier:        TierUSANoTraining,
		Level:       LevelModerate,
		Description: "The provider operates its service from the USA and is subject to **U.S. jurisdiction**. In case of suspicion, authorities in the USA can access your data. However, **your data is not used for training** purposes.",
	}

	GDPRNoTraining = Confidence{
		Tier:        TierGDPRNoTraining,
		Level:       LevelMedium,
		Description: "The provider is located in the EU and is subject to the **GDPR** (General Data Protection Regulation). Additionally, the provider states that **your data is not used for training**.",
	}
)
