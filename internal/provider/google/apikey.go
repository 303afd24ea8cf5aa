package google

import (
	"context"
	"os"

	"google.golang.org/genai"

	"github.com/yanmxa/lumina/internal/provider"
)

// APIKeyMeta is the metadata for Google via API Key
var APIKeyMeta = provider.ProviderMeta{
	Provider:     provider.ProviderGoogle,
	AuthMethod:   provider.AuthAPIKey,
	EnvVars:      []string{"GOOGLE_API_KEY"},
	DisplayName:  "Gemini API",
	Capabilities: []provider.Capability{provider.CapImage, provider.CapChat},
}

// NewAPIKeyClient creates a new Google client using API Key authentication
func NewAPIKeyClient(ctx context.Context) (provider.Backend, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return NewClient(client, "google:api_key"), nil
}

// init registers the API Key provider
func init() {
	provider.Register(APIKeyMeta, NewAPIKeyClient)
}
