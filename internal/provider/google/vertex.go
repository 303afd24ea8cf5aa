package google

import (
	"context"
	"os"

	"google.golang.org/genai"

	"github.com/yanmxa/lumina/internal/provider"
)

// VertexMeta is the metadata for Gemini via Vertex AI
var VertexMeta = provider.ProviderMeta{
	Provider:     provider.ProviderGoogle,
	AuthMethod:   provider.AuthVertex,
	EnvVars:      []string{"GOOGLE_CLOUD_PROJECT"},
	DisplayName:  "Vertex AI",
	Capabilities: []provider.Capability{provider.CapImage, provider.CapChat},
}

// NewVertexClient creates a new Google client using Vertex AI authentication
func NewVertexClient(ctx context.Context) (provider.Backend, error) {
	location := os.Getenv("GOOGLE_CLOUD_LOCATION")
	if location == "" {
		location = "global"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, err
	}

	return NewClient(client, "google:vertex"), nil
}

// init registers the Vertex AI provider
func init() {
	provider.Register(VertexMeta, NewVertexClient)
}
