package factory

import (
	"strings"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/selfhosted"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// MissingProviderMessage is shown when no provider is selected.
const MissingProviderMessage = "Please select a provider."

// ValidateProviderSelection returns a user-facing message when config cannot
// be used, or "" when it can.
func ValidateProviderSelection(config types.ProviderConfig) string {
	if config.Type == types.ProviderTypeNone || config.Type == "" {
		return MissingProviderMessage
	}
	return ""
}

// ValidateProviderConfig checks a configuration before it is saved. Unlike
// CreateProvider it reports problems instead of falling back.
func ValidateProviderConfig(config types.ProviderConfig) []string {
	var issues []string

	if msg := ValidateProviderSelection(config); msg != "" {
		issues = append(issues, msg)
	}
	if strings.TrimSpace(config.InstanceName) == "" {
		issues = append(issues, "Please enter an instance name.")
	}
	if config.Type == types.ProviderTypeSelfHosted {
		if err := selfhosted.Validate(config); err != nil {
			issues = append(issues, err.Error())
		}
	} else if ValidateProviderSelection(config) == "" && config.Model.IsZero() {
		issues = append(issues, "Please select a model.")
	}
	return issues
}
