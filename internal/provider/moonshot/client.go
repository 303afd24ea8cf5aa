// Package moonshot adapts the Moonshot AI platform as a conversational backend.
// Moonshot's API is OpenAI-compatible, so the openai-go SDK is reused with a custom base URL.
package moonshot

import (
	"context"

	"github.com/openai/openai-go/v3"

	"github.com/yanmxa/lumina/internal/provider"
	lopenai "github.com/yanmxa/lumina/internal/provider/openai"
)

// DefaultChatModel is a vision-capable Kimi model.
const DefaultChatModel = "moonshot-v1-8k-vision-preview"

// Client answers design questions through Moonshot's chat completions.
// It does not generate images.
type Client struct {
	chat *lopenai.Client
}

// NewClient creates a new Moonshot client with the given OpenAI SDK client.
func NewClient(client openai.Client, name string) *Client {
	return &Client{chat: lopenai.NewClient(client, name)}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.chat.Name()
}

// Converse answers with a chat completion, defaulting to a vision model.
func (c *Client) Converse(ctx context.Context, opts provider.ConverseOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = DefaultChatModel
	}
	return c.chat.Converse(ctx, opts)
}

var _ provider.Conversationalist = (*Client)(nil)
