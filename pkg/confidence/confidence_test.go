package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

type fixedResolver map[types.ProviderType]Level

func (f fixedResolver) ConfiguredConfidenceLevel(t types.ProviderType) Level {
	return f[t]
}

func TestGet_Vendors(t *testing.T) {
	tests := []struct {
		name     string
		provider types.ProviderType
		tier     Tier
		region   string
		sources  int
	}{
		{"fireworks", types.ProviderTypeFireworks, TierUSANotTrusted, "America, U.S.", 1},
		{"openai", types.ProviderTypeOpenAI, TierUSANoTraining, "America, U.S.", 4},
		{"google", types.ProviderTypeGoogle, TierUSANoTraining, "America, U.S.", 1},
		{"groq", types.ProviderTypeGroq, TierUSANoTraining, "America, U.S.", 1},
		{"anthropic", types.ProviderTypeAnthropic, TierUSANoTraining, "America, U.S.", 1},
		{"mistral", types.ProviderTypeMistral, TierGDPRNoTraining, "Europe, France", 1},
		{"self-hosted", types.ProviderTypeSelfHosted, TierSelfHosted, "Self-hosted", 0},
		{"unknown", types.ProviderType("bogus"), TierUnknown, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Get(tt.provider, LevelLow)
			assert.Equal(t, tt.tier, c.Tier)
			assert.Equal(t, tt.region, c.Region)
			assert.Len(t, c.Sources(), tt.sources)
			assert.Equal(t, LevelLow, c.Level)
		})
	}
}

func TestGet_Fireworks(t *testing.T) {
	c := Get(types.ProviderTypeFireworks, LevelUntrusted)
	assert.Equal(t, "America, U.S.", c.Region)
	assert.Equal(t, []string{"https://fireworks.ai/terms-of-service"}, c.Sources())
	assert.Equal(t, LevelUntrusted, c.Level)
}

func TestGet_NoneIgnoresConfiguredLevel(t *testing.T) {
	c := Get(types.ProviderTypeNone, LevelHigh)
	assert.Equal(t, None, c)
	assert.Equal(t, LevelNone, c.Level)

	resolver := fixedResolver{types.ProviderTypeNone: LevelHigh}
	assert.Equal(t, None, GetFor(types.ProviderTypeNone, resolver))
}

func TestGetFor_UsesResolver(t *testing.T) {
	resolver := fixedResolver{types.ProviderTypeMistral: LevelHigh}
	c := GetFor(types.ProviderTypeMistral, resolver)
	assert.Equal(t, LevelHigh, c.Level)
	assert.Equal(t, "Europe, France", c.Region)
}

func TestWith_DoesNotMutateBaseline(t *testing.T) {
	before := USANoTraining
	derived := USANoTraining.WithRegion("x").WithSources("a", "b").WithLevel(LevelHigh)

	assert.Equal(t, before, USANoTraining)
	assert.Empty(t, USANoTraining.Region)
	assert.Empty(t, USANoTraining.Sources())
	assert.Equal(t, LevelModerate, USANoTraining.Level)
	assert.Equal(t, []string{"a", "b"}, derived.Sources())

	// Callers cannot reach the internal slice.
	srcs := derived.Sources()
	srcs[0] = "changed"
	assert.Equal(t, "a", derived.Sources()[0])

	// Two derivations from the same parent stay independent.
	parent := USANoTraining.WithSources("p")
	left := parent.WithLevel(LevelLow)
	right := parent.WithLevel(LevelHigh)
	assert.Equal(t, LevelLow, left.Level)
	assert.Equal(t, LevelHigh, right.Level)
	assert.Equal(t, LevelModerate, parent.Level)
}

func TestLevel_Ordering(t *testing.T) {
	levels := AllLevels()
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i])
	}
}

func TestLevel_Text(t *testing.T) {
	for _, level := range AllLevels() {
		text, err := level.MarshalText()
		require.NoError(t, err)

		var decoded Level
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, level, decoded)
	}

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("very_low")))
	assert.Equal(t, LevelVeryLow, l)
	assert.Error(t, l.UnmarshalText([]byte("EXTREME")))

	_, err := Level(42).MarshalText()
	assert.Error(t, err)
}

func TestScheme_Level(t *testing.T) {
	tests := []struct {
		scheme   Scheme
		provider types.ProviderType
		expected Level
	}{
		{SchemeTrustAll, types.ProviderTypeSelfHosted, LevelHigh},
		{SchemeTrustAll, types.ProviderTypeFireworks, LevelMedium},
		{SchemeTrustUSAEurope, types.ProviderTypeFireworks, LevelUntrusted},
		{SchemeTrustUSAEurope, types.ProviderTypeMistral, LevelMedium},
		{SchemeTrustUSA, types.ProviderTypeMistral, LevelLow},
		{SchemeTrustUSA, types.ProviderTypeOpenAI, LevelMedium},
		{SchemeTrustEuropeOnly, types.ProviderTypeMistral, LevelMedium},
		{SchemeTrustEuropeOnly, types.ProviderTypeOpenAI, LevelLow},
		{SchemeTrustOnlySelfHosted, types.ProviderTypeAnthropic, LevelVeryLow},
		{SchemeTrustOnlySelfHosted, types.ProviderTypeSelfHosted, LevelHigh},
		{SchemeCustom, types.ProviderTypeGroq, LevelUnknown},
		{SchemeCustom, types.ProviderTypeOpenAI, LevelHigh},
		{SchemeTrustAll, types.ProviderTypeNone, LevelNone},
	}

	custom := map[types.ProviderType]Level{types.ProviderTypeOpenAI: LevelHigh}
	for _, tt := range tests {
		t.Run(string(tt.scheme)+"/"+string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scheme.Level(tt.provider, custom))
		})
	}
}
