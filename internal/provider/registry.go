// Package provider defines the backend adapter contracts and a registry of
// vendor implementations. Vendor packages register themselves in init().
package provider

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
)

// registryEntry holds a provider's metadata and factory
type registryEntry struct {
	meta    ProviderMeta
	factory ProviderFactory
}

// Registry manages provider registration and discovery
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry // key: "provider:authMethod"
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// globalRegistry is the default registry instance
var globalRegistry = NewRegistry()

// Register registers a provider with its metadata and factory
func Register(meta ProviderMeta, factory ProviderFactory) {
	globalRegistry.Register(meta, factory)
}

// Register registers a provider with its metadata and factory
func (r *Registry) Register(meta ProviderMeta, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[meta.Key()] = registryEntry{
		meta:    meta,
		factory: factory,
	}
}

// GetProvider returns a provider instance for the given provider and auth method
func GetProvider(ctx context.Context, provider Provider, authMethod AuthMethod) (Backend, error) {
	return globalRegistry.GetProvider(ctx, provider, authMethod)
}

// GetProvider returns a provider instance for the given provider and auth method
func (r *Registry) GetProvider(ctx context.Context, provider Provider, authMethod AuthMethod) (Backend, error) {
	r.mu.RLock()
	entry, ok := r.entries[makeProviderKey(provider, authMethod)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("provider not registered: %s:%s", provider, authMethod)
	}
	return entry.factory(ctx)
}

// GetImageGenerator returns the registered provider as an ImageGenerator.
func GetImageGenerator(ctx context.Context, provider Provider, authMethod AuthMethod) (ImageGenerator, error) {
	return globalRegistry.GetImageGenerator(ctx, provider, authMethod)
}

// GetImageGenerator returns the registered provider as an ImageGenerator.
func (r *Registry) GetImageGenerator(ctx context.Context, provider Provider, authMethod AuthMethod) (ImageGenerator, error) {
	b, err := r.GetProvider(ctx, provider, authMethod)
	if err != nil {
		return nil, err
	}
	gen, ok := b.(ImageGenerator)
	if !ok {
		return nil, fmt.Errorf("provider %s does not support image generation", b.Name())
	}
	return gen, nil
}

// GetConversationalist returns the registered provider as a Conversationalist.
func GetConversationalist(ctx context.Context, provider Provider, authMethod AuthMethod) (Conversationalist, error) {
	return globalRegistry.GetConversationalist(ctx, provider, authMethod)
}

// GetConversationalist returns the registered provider as a Conversationalist.
func (r *Registry) GetConversationalist(ctx context.Context, provider Provider, authMethod AuthMethod) (Conversationalist, error) {
	b, err := r.GetProvider(ctx, provider, authMethod)
	if err != nil {
		return nil, err
	}
	conv, ok := b.(Conversationalist)
	if !ok {
		return nil, fmt.Errorf("provider %s does not support conversation", b.Name())
	}
	return conv, nil
}

// GetMeta returns the metadata for a specific provider configuration
func GetMeta(provider Provider, authMethod AuthMethod) (ProviderMeta, bool) {
	return globalRegistry.GetMeta(provider, authMethod)
}

// GetMeta returns the metadata for a specific provider configuration
func (r *Registry) GetMeta(provider Provider, authMethod AuthMethod) (ProviderMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[makeProviderKey(provider, authMethod)]
	if !ok {
		return ProviderMeta{}, false
	}
	return entry.meta, true
}

// makeProviderKey creates a unique key for provider and auth method combination
func makeProviderKey(provider Provider, authMethod AuthMethod) string {
	return string(provider) + ":" + string(authMethod)
}

// ParseKey splits a "provider:auth" key. A bare provider name means API key auth.
func ParseKey(key string) (Provider, AuthMethod) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return Provider(key[:i]), AuthMethod(key[i+1:])
		}
	}
	return Provider(key), AuthAPIKey
}

// IsReady checks if all required environment variables are set for a provider
func IsReady(meta ProviderMeta) bool {
	return globalRegistry.IsReady(meta)
}

// IsReady checks if all required environment variables are set for a provider
func (r *Registry) IsReady(meta ProviderMeta) bool {
	for _, envVar := range meta.EnvVars {
		if os.Getenv(envVar) == "" {
			return false
		}
	}
	return true
}

// GetAllMetas returns all registered provider metadata
func GetAllMetas() []ProviderMeta {
	return globalRegistry.GetAllMetas()
}

// GetAllMetas returns all registered provider metadata, sorted by key
func (r *Registry) GetAllMetas() []ProviderMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]ProviderMeta, 0, len(r.entries))
	for _, entry := range r.entries {
		metas = append(metas, entry.meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Key() < metas[j].Key() })
	return metas
}

// GetReadyProviders returns providers with the capability whose env vars are configured
func GetReadyProviders(c Capability) []ProviderMeta {
	return globalRegistry.GetReadyProviders(c)
}

// GetReadyProviders returns providers with the capability whose env vars are configured
func (r *Registry) GetReadyProviders(c Capability) []ProviderMeta {
	ready := make([]ProviderMeta, 0)
	for _, meta := range r.GetAllMetas() {
		if meta.Supports(c) && r.IsReady(meta) {
			ready = append(ready, meta)
		}
	}
	return ready
}
