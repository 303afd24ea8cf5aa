package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/yanmxa/lumina/internal/message"
)

// Provider represents a provider name
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderMoonshot  Provider = "moonshot"
)

// AuthMethod represents an authentication method
type AuthMethod string

const (
	AuthAPIKey AuthMethod = "api_key"
	AuthVertex AuthMethod = "vertex"
)

// Capability is an operation a provider backend can perform.
type Capability string

const (
	CapImage Capability = "image"
	CapChat  Capability = "chat"
)

// ProviderMeta contains static metadata about a provider
type ProviderMeta struct {
	Provider     Provider
	AuthMethod   AuthMethod
	EnvVars      []string // Required environment variables
	DisplayName  string
	Capabilities []Capability
}

// Key returns a unique key for this provider configuration
func (m ProviderMeta) Key() string {
	return string(m.Provider) + ":" + string(m.AuthMethod)
}

// Supports reports whether the provider offers the capability.
func (m ProviderMeta) Supports(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Reply texts substituted by conversational backends.
const (
	FallbackReply = "Sorry, I'm having trouble connecting to the design service right now."
	EmptyReply    = "I couldn't generate a text response."
)

// ErrNoImageGenerated is returned when a generation call succeeds but the
// response carries no image.
var ErrNoImageGenerated = errors.New("no image generated")

// GenerateOptions contains options for an image generation request
type GenerateOptions struct {
	Model  string
	Source message.Image
	Prompt string
}

// ConverseOptions contains options for a conversational request.
// UserText is sent as the final user turn together with ContextImage;
// History holds only the turns before it.
type ConverseOptions struct {
	Model        string
	SystemPrompt string
	History      []message.Turn
	ContextImage *message.Image
	UserText     string
}

// Backend is the common interface of every provider client.
type Backend interface {
	// Name returns the provider name
	Name() string
}

// ImageGenerator produces a new image from a source image and instruction.
type ImageGenerator interface {
	Backend
	Generate(ctx context.Context, opts GenerateOptions) (message.Image, error)
}

// Conversationalist answers a question about an image in a conversation.
// Backend failures are reported as FallbackReply; only context errors are
// returned.
type Conversationalist interface {
	Backend
	Converse(ctx context.Context, opts ConverseOptions) (string, error)
}

// ProviderFactory creates a new Backend instance
type ProviderFactory func(ctx context.Context) (Backend, error)

// SettleReply maps a raw backend result onto the conversational contract:
// context errors pass through, other errors become FallbackReply, and blank
// text becomes EmptyReply.
func SettleReply(ctx context.Context, text string, err error) (string, error) {
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return FallbackReply, nil
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReply, nil
	}
	return text, nil
}
