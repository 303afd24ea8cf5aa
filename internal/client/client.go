// Package client binds provider backends to configured models and exposes the
// two operations the engine needs: image generation and conversation.
package client

import (
	"context"
	"fmt"

	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

// ImageClient generates a new image from a source image and prompt.
type ImageClient interface {
	Generate(ctx context.Context, source message.Image, prompt string) (message.Image, error)
	Name() string
	ModelID() string
}

// ChatClient answers a question about an image given prior turns.
type ChatClient interface {
	Converse(ctx context.Context, history []message.Turn, image *message.Image, userText string) (string, error)
	Name() string
	ModelID() string
}

// Generator wraps an image-generating provider with a model.
type Generator struct {
	Provider provider.ImageGenerator
	Model    string
}

// Generate sends a generation request using the configured model.
func (g *Generator) Generate(ctx context.Context, source message.Image, prompt string) (message.Image, error) {
	return g.Provider.Generate(ctx, provider.GenerateOptions{
		Model:  g.Model,
		Source: source,
		Prompt: prompt,
	})
}

// Name returns the provider name (e.g., "google:api_key").
func (g *Generator) Name() string {
	return g.Provider.Name()
}

// ModelID returns the model identifier.
func (g *Generator) ModelID() string {
	return g.Model
}

// Converser wraps a conversational provider with a model and system prompt.
type Converser struct {
	Provider     provider.Conversationalist
	Model        string
	SystemPrompt string
}

// Converse sends a conversational request using the configured model.
func (c *Converser) Converse(ctx context.Context, history []message.Turn, image *message.Image, userText string) (string, error) {
	return c.Provider.Converse(ctx, provider.ConverseOptions{
		Model:        c.Model,
		SystemPrompt: c.SystemPrompt,
		History:      history,
		ContextImage: image,
		UserText:     userText,
	})
}

// Name returns the provider name.
func (c *Converser) Name() string {
	return c.Provider.Name()
}

// ModelID returns the model identifier.
func (c *Converser) ModelID() string {
	return c.Model
}

// NewGenerator resolves a "provider:auth" key from the registry.
func NewGenerator(ctx context.Context, key, model string) (*Generator, error) {
	p, auth := provider.ParseKey(key)
	gen, err := provider.GetImageGenerator(ctx, p, auth)
	if err != nil {
		return nil, fmt.Errorf("image provider: %w", err)
	}
	return &Generator{Provider: gen, Model: model}, nil
}

// NewConverser resolves a "provider:auth" key from the registry.
func NewConverser(ctx context.Context, key, model, systemPrompt string) (*Converser, error) {
	p, auth := provider.ParseKey(key)
	conv, err := provider.GetConversationalist(ctx, p, auth)
	if err != nil {
		return nil, fmt.Errorf("chat provider: %w", err)
	}
	return &Converser{Provider: conv, Model: model, SystemPrompt: systemPrompt}, nil
}
