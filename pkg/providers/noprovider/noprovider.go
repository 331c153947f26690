// Package noprovider is the null provider used when nothing, or nothing
// usable, is selected.
package noprovider

import (
	"context"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// Provider never contacts anything: streams end immediately and the model
// list is empty.
type Provider struct {
	common.Identity
}

var _ types.Provider = (*Provider)(nil)

// New returns a null provider carrying instanceName.
func New(instanceName string) *Provider {
	return &Provider{Identity: common.NewIdentity(types.ProviderTypeNone.Name(), types.ProviderTypeNone, instanceName)}
}

// NewProvider matches the factory constructor signature.
func NewProvider(config types.ProviderConfig, _ types.Logger) (types.Provider, error) {
	return New(config.InstanceName), nil
}

func (p *Provider) GetTextModels(context.Context) ([]types.Model, error) {
	return []types.Model{}, nil
}

func (p *Provider) StreamChatCompletion(context.Context, types.ChatRequest) (types.ChatCompletionStream, error) {
	return common.NewEmptyStream(), nil
}
