package settings

// Version is the schema version of the settings file.
type Version string

const (
	VersionUnknown Version = ""
	V1             Version = "V1"
	V2             Version = "V2"
	V3             Version = "V3"

	// CurrentVersion is the version written by this package.
	CurrentVersion = V3
)

// UpdateBehavior controls when the application looks for updates.
type UpdateBehavior string

const (
	UpdateNoCheck     UpdateBehavior = "NO_CHECK"
	UpdateOnceStartup UpdateBehavior = "ONCE_STARTUP"
	UpdateHourly      UpdateBehavior = "HOURLY"
	UpdateDaily       UpdateBehavior = "DAILY"
	UpdateWeekly      UpdateBehavior = "WEEKLY"
)

// NavBehavior controls how the navigation menu expands.
type NavBehavior string

const (
	NavExpandOnHover         NavBehavior = "EXPAND_ON_HOVER"
	NavNeverExpandUseTooltip NavBehavior = "NEVER_EXPAND_USE_TOOLTIPS"
	NavAlwaysExpand          NavBehavior = "ALWAYS_EXPAND"
)

// SendBehavior controls which shortcut sends chat input.
type SendBehavior string

const (
	SendNoKey         SendBehavior = "NO_KEY_IS_SENDING"
	SendModifierEnter SendBehavior = "MODIFER_ENTER_IS_SENDING"
	SendEnter         SendBehavior = "ENTER_IS_SENDING"
)

// WorkspaceStorageBehavior controls whether chats are kept in workspaces.
type WorkspaceStorageBehavior string

const (
	WorkspacesDisabled           WorkspaceStorageBehavior = "DISABLE_WORKSPACES"
	WorkspacesStoreAutomatically WorkspaceStorageBehavior = "STORE_CHATS_AUTOMATICALLY"
	WorkspacesStoreManually      WorkspaceStorageBehavior = "STORE_CHATS_MANUALLY"
)

// MaintenancePolicy controls how long temporary chats are kept.
type MaintenancePolicy string

const (
	MaintenanceNone      MaintenancePolicy = "NO_AUTOMATIC_MAINTENANCE"
	MaintenanceAfter7d   MaintenancePolicy = "DELETE_OLDER_THAN_7_DAYS"
	MaintenanceAfter30d  MaintenancePolicy = "DELETE_OLDER_THAN_30_DAYS"
	MaintenanceAfter90d  MaintenancePolicy = "DELETE_OLDER_THAN_90_DAYS"
	MaintenanceAfter180d MaintenancePolicy = "DELETE_OLDER_THAN_180_DAYS"
	MaintenanceAfter365d MaintenancePolicy = "DELETE_OLDER_THAN_365_DAYS"
)

// IconSource is a website offering icons.
type IconSource string

const (
	IconSourceGeneric     IconSource = "GENERIC"
	IconSourceIconsDotCom IconSource = "ICONS_DOT_COM"
	IconSourceFlatIcons   IconSource = "FLAT_ICONS"
	IconSourceMaterialUI  IconSource = "MATERIAL_UI"
	IconSourceFontAwesome IconSource = "FONT_AWESOME"
	IconSourceBootstrap   IconSource = "BOOTSTRAP"
)

// AllIconSources returns every icon source in display order.
func AllIconSources() []IconSource {
	return []IconSource{
		IconSourceGeneric,
		IconSourceIconsDotCom,
		IconSourceFlatIcons,
		IconSourceMaterialUI,
		IconSourceFontAwesome,
		IconSourceBootstrap,
	}
}

// Name returns the display name of the icon source.
func (s IconSource) Name() string {
	switch s {
	case IconSourceIconsDotCom:
		return "Icons.com"
	case IconSourceFlatIcons:
		return "Flaticon"
	case IconSourceMaterialUI:
		return "Material UI"
	case IconSourceFontAwesome:
		return "Font Awesome"
	case IconSourceBootstrap:
		return "Bootstrap Icons"
	default:
		return "Generic"
	}
}

// URL returns the website of the icon source, or "" for the generic source.
func (s IconSource) URL() string {
	switch s {
	case IconSourceIconsDotCom:
		return "https://icons.com"
	case IconSourceFlatIcons:
		return "https://www.flaticon.com"
	case IconSourceMaterialUI:
		return "https://mui.com/material-ui/material-icons/"
	case IconSourceFontAwesome:
		return "https://fontawesome.com/search"
	case IconSourceBootstrap:
		return "https://icons.getbootstrap.com"
	default:
		return ""
	}
}

// CommonLanguage is a translation target language.
type CommonLanguage string

const (
	LanguageAsIs  CommonLanguage = "AS_IS"
	LanguageEnUS  CommonLanguage = "EN_US"
	LanguageEnGB  CommonLanguage = "EN_GB"
	LanguageZhCN  CommonLanguage = "ZH_CN"
	LanguageHiIN  CommonLanguage = "HI_IN"
	LanguageEsES  CommonLanguage = "ES_ES"
	LanguageFrFR  CommonLanguage = "FR_FR"
	LanguageDeDE  CommonLanguage = "DE_DE"
	LanguageDeAT  CommonLanguage = "DE_AT"
	LanguageDeCH  CommonLanguage = "DE_CH"
	LanguageJaJP  CommonLanguage = "JA_JP"
	LanguageOther CommonLanguage = "OTHER"
)

// AllLanguages returns every selectable language.
func AllLanguages() []CommonLanguage {
	return []CommonLanguage{
		LanguageAsIs, LanguageEnUS, LanguageEnGB, LanguageZhCN, LanguageHiIN, LanguageEsES,
		LanguageFrFR, LanguageDeDE, LanguageDeAT, LanguageDeCH, LanguageJaJP, LanguageOther,
	}
}

// Name returns the English name of the language.
func (l CommonLanguage) Name() string {
	switch l {
	case LanguageAsIs:
		return "Do not change the language"
	case LanguageEnUS:
		return "English (US)"
	case LanguageEnGB:
		return "English (UK)"
	case LanguageZhCN:
		return "Chinese (Simplified)"
	case LanguageHiIN:
		return "Hindi (India)"
	case LanguageEsES:
		return "Spanish (Spain)"
	case LanguageFrFR:
		return "French (France)"
	case LanguageDeDE:
		return "German (Germany)"
	case LanguageDeAT:
		return "German (Austria)"
	case LanguageDeCH:
		return "German (Switzerland)"
	case LanguageJaJP:
		return "Japanese (Japan)"
	case LanguageOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// PromptName returns the language name to use inside a prompt. For
// LanguageOther the custom name is used.
func (l CommonLanguage) PromptName(custom string) string {
	if l == LanguageOther {
		return custom
	}
	return l.Name()
}
