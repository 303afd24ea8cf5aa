package anthropic

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

const (
	// DefaultChatModel is used when no model is configured
	DefaultChatModel = "claude-sonnet-4-20250514"
	// DefaultMaxTokens bounds a design answer
	DefaultMaxTokens = 2048
)

// openingTurn stands in for the upload when history starts with a model turn;
// the Messages API requires the first message to come from the user.
const openingTurn = "Here is a photo of my room."

// Client answers design questions using the Anthropic SDK.
// Claude models do not generate images, so only Converse is offered.
type Client struct {
	client anthropic.Client
	name   string
}

// NewClient creates a new Anthropic client with the given SDK client
func NewClient(client anthropic.Client, name string) *Client {
	return &Client{
		client: client,
		name:   name,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return c.name
}

// Converse sends prior turns, then the context image and user text as the final user message.
func (c *Client) Converse(ctx context.Context, opts provider.ConverseOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = DefaultChatModel
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: DefaultMaxTokens,
		Messages:  buildMessages(opts),
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: opts.SystemPrompt},
		}
	}

	call := log.LogConverse(c.name, opts)
	start := time.Now()

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return provider.SettleReply(ctx, "", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()

	log.LogResult(c.name, call, text, nil, time.Since(start))
	return provider.SettleReply(ctx, text, nil)
}

func buildMessages(opts provider.ConverseOptions) []anthropic.MessageParam {
	history := provider.CollapseTurns(opts.History)
	msgs := make([]anthropic.MessageParam, 0, len(history)+2)

	if len(history) > 0 && history[0].Role == message.RoleModel {
		msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(openingTurn)))
	}

	for _, turn := range history {
		switch turn.Role {
		case message.RoleModel:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
		}
	}

	blocks := make([]anthropic.ContentBlockParamUnion, 0, 2)
	if opts.ContextImage != nil && !opts.ContextImage.Empty() {
		blocks = append(blocks, anthropic.NewImageBlockBase64(
			opts.ContextImage.MediaType,
			opts.ContextImage.Base64(),
		))
	}
	blocks = append(blocks, anthropic.NewTextBlock(opts.UserText))
	return append(msgs, anthropic.NewUserMessage(blocks...))
}

var _ provider.Conversationalist = (*Client)(nil)
