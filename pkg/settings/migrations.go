package settings

import (
	"errors"
	"fmt"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrUnknownVersion is returned when a settings file names a version this
// package cannot migrate from.
var ErrUnknownVersion = errors.New("unknown settings version")

// Migrate upgrades d in place to CurrentVersion. A missing version is read as
// V1, the only version that did not record one. It reports whether anything
// was migrated.
func Migrate(d *Data) (bool, error) {
	if d.Version == VersionUnknown {
		d.Version = V1
	}

	migrated := false
	for {
		switch d.Version {
		case V1:
			migrateV1ToV2(d)
		case V2:
			migrateV2ToV3(d)
		case CurrentVersion:
			return migrated, nil
		default:
			return migrated, fmt.Errorf("%w: %q", ErrUnknownVersion, d.Version)
		}
		migrated = true
	}
}

// V2 introduced self-hosted providers with an explicit hostname.
func migrateV1ToV2(d *Data) {
	for i := range d.Providers {
		if d.Providers[i].Type == types.ProviderTypeSelfHosted {
			d.Providers[i].IsSelfHosted = true
			d.Providers[i].Hostname = ""
		}
	}
	d.Version = V2
}

// V3 introduced the host kind and workspaces.
func migrateV2ToV3(d *Data) {
	for i := range d.Providers {
		if d.Providers[i].IsSelfHosted || d.Providers[i].Type == types.ProviderTypeSelfHosted {
			d.Providers[i].Host = types.HostLMStudio
		} else {
			d.Providers[i].Host = types.HostNone
		}
	}
	d.WorkspaceStorageBehavior = WorkspacesStoreAutomatically
	d.WorkspaceStorageTemporaryMaintenancePolicy = MaintenanceAfter90d
	d.Version = V3
}
