package factory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/noprovider"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ConstructorFunc builds a provider from its configuration.
type ConstructorFunc func(config types.ProviderConfig, logger types.Logger) (types.Provider, error)

// DefaultProviderFactory is the default factory implementation
type DefaultProviderFactory struct {
	providers map[types.ProviderType]ConstructorFunc
	mutex     sync.RWMutex
}

// NewProviderFactory creates an empty factory
func NewProviderFactory() *DefaultProviderFactory {
	return &DefaultProviderFactory{
		providers: make(map[types.ProviderType]ConstructorFunc),
	}
}

// NewDefaultFactory creates a factory with every built-in provider registered
func NewDefaultFactory() *DefaultProviderFactory {
	f := NewProviderFactory()
	RegisterDefaultProviders(f)
	return f
}

// RegisterProvider registers a constructor, replacing any existing one
func (f *DefaultProviderFactory) RegisterProvider(providerType types.ProviderType, constructor ConstructorFunc) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.providers[providerType] = constructor
}

// IsRegistered reports whether a constructor exists for providerType
func (f *DefaultProviderFactory) IsRegistered(providerType types.ProviderType) bool {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	_, ok := f.providers[providerType]
	return ok
}

// GetSupportedProviders returns the registered provider types, sorted
func (f *DefaultProviderFactory) GetSupportedProviders() []types.ProviderType {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	providerTypes := make([]types.ProviderType, 0, len(f.providers))
	for providerType := range f.providers {
		providerTypes = append(providerTypes, providerType)
	}
	slices.Sort(providerTypes)
	return providerTypes
}

// CreateProvider returns a handle for config. It never returns nil and never
// panics: an unregistered type yields the null provider, and a constructor
// error or panic is logged and converted to the null provider. The handle
// always carries config.InstanceName.
func (f *DefaultProviderFactory) CreateProvider(config types.ProviderConfig, logger types.Logger) types.Provider {
	if logger == nil {
		logger = logging.Nop()
	}

	f.mutex.RLock()
	constructor, exists := f.providers[config.Type]
	f.mutex.RUnlock()

	if !exists || config.Type == types.ProviderTypeNone {
		return noprovider.New(config.InstanceName)
	}

	provider, err := construct(constructor, config, logger)
	if err == nil && provider == nil {
		err = fmt.Errorf("constructor for %s returned no provider", config.Type)
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to create provider: %s", err.Error()),
			"provider_type", string(config.Type),
			"instance", config.InstanceName,
		)
		return noprovider.New(config.InstanceName)
	}
	return provider
}

func construct(constructor ConstructorFunc, config types.ProviderConfig, logger types.Logger) (provider types.Provider, err error) {
	defer func() {
		if r := recover(); r != nil {
			provider, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return constructor(config, logger)
}
