package agent

import (
	"fmt"

	"sovbridge/internal/config"
	"sovbridge/internal/port"
)

// ProviderFactory is a function that creates a SheetExtractor from a
// provider config.
type ProviderFactory func(cfg *config.AgentProviderConfig) (port.SheetExtractor, error)

// registry of agent provider factories, populated by each provider
// package's init via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an agent provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a SheetExtractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.AgentProviderConfig) (port.SheetExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown agent provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
