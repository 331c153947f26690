package common

import "github.com/cecil-the-coder/ai-studio-kit/pkg/types"

// Identity implements types.CoreProvider and is embedded by every provider.
type Identity struct {
	name         string
	providerType types.ProviderType
	instanceName string
}

// NewIdentity creates the identity of a provider handle.
func NewIdentity(name string, providerType types.ProviderType, instanceName string) Identity {
	return Identity{name: name, providerType: providerType, instanceName: instanceName}
}

func (i Identity) Name() string             { return i.name }
func (i Identity) Type() types.ProviderType { return i.providerType }
func (i Identity) InstanceName() string     { return i.instanceName }
