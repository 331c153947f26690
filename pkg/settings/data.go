// Package settings holds the versioned settings aggregate and the manager
// that loads, migrates, saves and watches the settings file.
package settings

import (
	"maps"
	"slices"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/confidence"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// Data is the root of the settings file.
type Data struct {
	Version         Version                `json:"version" yaml:"version" toml:"version"`
	Providers       []types.ProviderConfig `json:"providers" yaml:"providers" toml:"providers"`
	NextProviderNum uint                   `json:"next_provider_num" yaml:"next_provider_num" toml:"next_provider_num"`

	// App
	IsSavingEnergy      bool           `json:"is_saving_energy" yaml:"is_saving_energy" toml:"is_saving_energy"`
	EnableSpellchecking bool           `json:"enable_spellchecking" yaml:"enable_spellchecking" toml:"enable_spellchecking"`
	UpdateBehavior      UpdateBehavior `json:"update_behavior" yaml:"update_behavior" toml:"update_behavior"`
	NavigationBehavior  NavBehavior    `json:"navigation_behavior" yaml:"navigation_behavior" toml:"navigation_behavior"`

	// Chat
	ShortcutSendBehavior SendBehavior `json:"shortcut_send_behavior" yaml:"shortcut_send_behavior" toml:"shortcut_send_behavior"`

	// Workspaces
	WorkspaceStorageBehavior                   WorkspaceStorageBehavior `json:"workspace_storage_behavior" yaml:"workspace_storage_behavior" toml:"workspace_storage_behavior"`
	WorkspaceStorageTemporaryMaintenancePolicy MaintenancePolicy        `json:"workspace_storage_temporary_maintenance_policy" yaml:"workspace_storage_temporary_maintenance_policy" toml:"workspace_storage_temporary_maintenance_policy"`

	// Icon finder
	PreselectIconOptions    bool       `json:"preselect_icon_options" yaml:"preselect_icon_options" toml:"preselect_icon_options"`
	PreselectedIconSource   IconSource `json:"preselected_icon_source" yaml:"preselected_icon_source" toml:"preselected_icon_source"`
	PreselectedIconProvider string     `json:"preselected_icon_provider" yaml:"preselected_icon_provider" toml:"preselected_icon_provider"`

	// Translation
	LiveTranslationDebounceIntervalMilliseconds int            `json:"live_translation_debounce_interval_ms" yaml:"live_translation_debounce_interval_ms" toml:"live_translation_debounce_interval_ms"`
	PreselectTranslationOptions                 bool           `json:"preselect_translation_options" yaml:"preselect_translation_options" toml:"preselect_translation_options"`
	PreselectLiveTranslation                    bool           `json:"preselect_live_translation" yaml:"preselect_live_translation" toml:"preselect_live_translation"`
	PreselectedTranslationTargetLanguage        CommonLanguage `json:"preselected_translation_target_language" yaml:"preselected_translation_target_language" toml:"preselected_translation_target_language"`
	PreselectTranslationOtherLanguage           string         `json:"preselect_translation_other_language" yaml:"preselect_translation_other_language" toml:"preselect_translation_other_language"`
	PreselectedTranslationProvider              string         `json:"preselected_translation_provider" yaml:"preselected_translation_provider" toml:"preselected_translation_provider"`

	// Confidence
	ConfidenceScheme       confidence.Scheme                       `json:"confidence_scheme" yaml:"confidence_scheme" toml:"confidence_scheme"`
	CustomConfidenceLevels map[types.ProviderType]confidence.Level `json:"custom_confidence_levels,omitempty" yaml:"custom_confidence_levels,omitempty" toml:"custom_confidence_levels,omitempty"`
}

// Default returns the settings of a fresh installation.
func Default() *Data {
	return &Data{
		Version:         CurrentVersion,
		Providers:       []types.ProviderConfig{},
		NextProviderNum: 1,

		UpdateBehavior:       UpdateOnceStartup,
		NavigationBehavior:   NavExpandOnHover,
		ShortcutSendBehavior: SendModifierEnter,

		WorkspaceStorageBehavior:                   WorkspacesStoreAutomatically,
		WorkspaceStorageTemporaryMaintenancePolicy: MaintenanceAfter90d,

		PreselectedIconSource: IconSourceGeneric,

		LiveTranslationDebounceIntervalMilliseconds: 1000,
		PreselectedTranslationTargetLanguage:        LanguageEnUS,

		ConfidenceScheme: confidence.SchemeTrustAll,
	}
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := *d
	c.Providers = slices.Clone(d.Providers)
	if c.Providers == nil {
		c.Providers = []types.ProviderConfig{}
	}
	if d.CustomConfidenceLevels != nil {
		c.CustomConfidenceLevels = maps.Clone(d.CustomConfidenceLevels)
	}
	return &c
}

// Provider returns the provider with the given id.
func (d *Data) Provider(id string) (types.ProviderConfig, bool) {
	for _, p := range d.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return types.ProviderConfig{}, false
}

// ConfidenceLevel returns the level the active scheme assigns to t.
func (d *Data) ConfidenceLevel(t types.ProviderType) confidence.Level {
	return d.ConfidenceScheme.Level(t, d.CustomConfidenceLevels)
}
