package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
)

// ProviderConstructor is a function that creates an object store for a resolved config
type ProviderConstructor func(ctx context.Context, cfg config.ClientConfig) (ObjectStore, error)

var (
	registryMu       sync.RWMutex
	providerRegistry = make(map[string]ProviderConstructor)
)

// RegisterProvider registers a provider constructor
func RegisterProvider(name string, constructor ProviderConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providerRegistry[name] = constructor
}

// Providers returns the registered provider names, sorted
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory creates object stores from configuration
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create instantiates the store selected by cfg.Provider()
func (f *Factory) Create(ctx context.Context, cfg config.ClientConfig) (ObjectStore, error) {
	registryMu.RLock()
	constructor, ok := providerRegistry[cfg.Provider()]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown provider: %s", ErrInvalidConfig, cfg.Provider())
	}

	store, err := constructor(ctx, cfg)
	if err != nil {
		return nil, WrapError(cfg.Provider(), "init", err)
	}
	return store, nil
}
