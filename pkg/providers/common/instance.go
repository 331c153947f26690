package common

import (
	"sync"
	"time"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// The factory builds a fresh provider handle for every exchange, so state
// that must outlive a handle is kept here per configured instance.
var sharedModelCaches sync.Map

// InstanceKey identifies a configured provider instance talking to baseURL.
// It is empty for configs without an ID, which get no shared state.
func InstanceKey(config types.ProviderConfig, baseURL string) string {
	if config.ID == "" {
		return ""
	}
	return config.ID + "@" + baseURL
}

// SharedModelCache returns the model cache of the instance identified by
// key, creating it on first use. An empty key gets a private cache.
func SharedModelCache(key string, ttl time.Duration) *ModelCache {
	if key == "" {
		return NewModelCache(ttl)
	}
	cache, _ := sharedModelCaches.LoadOrStore(key, NewModelCache(ttl))
	return cache.(*ModelCache)
}
