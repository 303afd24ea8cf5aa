package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/yanmxa/lumina/internal/provider"
)

// APIKeyMeta is the metadata for Anthropic via API Key
var APIKeyMeta = provider.ProviderMeta{
	Provider:     provider.ProviderAnthropic,
	AuthMethod:   provider.AuthAPIKey,
	EnvVars:      []string{"ANTHROPIC_API_KEY"},
	DisplayName:  "Direct API",
	Capabilities: []provider.Capability{provider.CapChat},
}

// NewAPIKeyClient creates a new Anthropic client using API Key authentication
func NewAPIKeyClient(ctx context.Context) (provider.Backend, error) {
	client := anthropic.NewClient()
	return NewClient(client, "anthropic:api_key"), nil
}

// init registers the API Key provider
func init() {
	provider.Register(APIKeyMeta, NewAPIKeyClient)
}
