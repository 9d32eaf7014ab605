package oracle

import (
	"fmt"
	"sort"
	"sync"

	"umlage/internal/config"
	"umlage/internal/port"
)

// ProviderFactory creates an Oracle from a provider config.
type ProviderFactory func(cfg *config.OracleProviderConfig) (port.Oracle, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers an oracle provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// Providers lists the registered provider names.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for n := range providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates an Oracle from a provider config using the registered factory.
func New(cfg *config.OracleProviderConfig) (port.Oracle, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown oracle provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
