package common

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// DefaultModelCacheTTL is how long a fetched model list stays fresh.
const DefaultModelCacheTTL = 10 * time.Minute

// ModelCache keeps the last model list of a provider.
type ModelCache struct {
	models    []types.Model
	timestamp time.Time
	ttl       time.Duration
	mutex     sync.RWMutex
}

// NewModelCache creates an empty cache.
func NewModelCache(ttl time.Duration) *ModelCache {
	return &ModelCache{ttl: ttl}
}

// IsStale reports whether the cached list has expired or was never filled.
func (mc *ModelCache) IsStale() bool {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return mc.timestamp.IsZero() || time.Since(mc.timestamp) > mc.ttl
}

// Get returns a copy of the cached models.
func (mc *ModelCache) Get() []types.Model {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return slices.Clone(mc.models)
}

// Update replaces the cached models.
func (mc *ModelCache) Update(models []types.Model) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.models = slices.Clone(models)
	mc.timestamp = time.Now()
}

// Clear empties the cache.
func (mc *ModelCache) Clear() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.models = nil
	mc.timestamp = time.Time{}
}

// GetModels returns the cached models while fresh and calls fetch otherwise.
// When fetch fails a stale list is returned instead of the error.
func (mc *ModelCache) GetModels(ctx context.Context, fetch func(context.Context) ([]types.Model, error)) ([]types.Model, error) {
	if !mc.IsStale() {
		return mc.Get(), nil
	}

	models, err := fetch(ctx)
	if err != nil {
		if stale := mc.Get(); len(stale) > 0 {
			return stale, nil
		}
		return nil, err
	}

	mc.Update(models)
	return models, nil
}
