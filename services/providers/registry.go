package providers

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrProviderNotFound is returned when a provider is not registered
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderAlreadyRegistered is returned when trying to register a duplicate provider
	ErrProviderAlreadyRegistered = errors.New("provider already registered")

	// ErrUnknownProvider is returned when a credential names a provider with no builder
	ErrUnknownProvider = errors.New("unknown provider")
)

// Registry holds the adapters of every available (credentialed) provider.
// It is populated at startup and only read afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// RegisterProvider registers a provider instance
func (r *Registry) RegisterProvider(provider Provider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("%w: %s", ErrProviderAlreadyRegistered, name)
	}
	r.providers[name] = provider

	return nil
}

// GetProvider retrieves a provider by name
func (r *Registry) GetProvider(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	return provider, nil
}

// Available returns a fresh, sorted snapshot of the available provider names
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Count returns the number of available providers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}

// ProviderBuilder creates an adapter from a configured secret
type ProviderBuilder func(secret string) (Provider, error)

// RegistryBuilder builds a registry from credentials, one builder per known provider
type RegistryBuilder struct {
	registry *Registry
	builders map[string]ProviderBuilder
}

// NewRegistryBuilder creates a new registry builder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		registry: NewRegistry(),
		builders: make(map[string]ProviderBuilder),
	}
}

// WithProviderBuilder registers a provider builder
func (rb *RegistryBuilder) WithProviderBuilder(name string, builder ProviderBuilder) *RegistryBuilder {
	rb.builders[name] = builder
	return rb
}

// Known returns the names of all providers a builder exists for, sorted
func (rb *RegistryBuilder) Known() []string {
	names := make([]string, 0, len(rb.builders))
	for name := range rb.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates an adapter for every credential that carries a secret.
// Credentials without a secret are skipped; the provider stays unavailable.
func (rb *RegistryBuilder) Build(credentials []Credential) (*Registry, error) {
	for _, cred := range credentials {
		builder, exists := rb.builders[cred.Provider]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cred.Provider)
		}
		if !cred.Configured() {
			continue
		}

		provider, err := builder(cred.Secret)
		if err != nil {
			return nil, fmt.Errorf("failed to build provider %s: %w", cred.Provider, err)
		}
		if err := rb.registry.RegisterProvider(provider); err != nil {
			return nil, fmt.Errorf("failed to register provider %s: %w", cred.Provider, err)
		}
	}

	return rb.registry, nil
}
