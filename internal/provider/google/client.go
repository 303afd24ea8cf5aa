package google

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

// Default models
const (
	DefaultImageModel = "gemini-2.5-flash-image"
	DefaultChatModel  = "gemini-3-pro-preview"
)

// Client implements both provider contracts using the Google GenAI SDK
type Client struct {
	client *genai.Client
	name   string
}

// NewClient creates a new Google client with the given SDK client
func NewClient(client *genai.Client, name string) *Client {
	return &Client{
		client: client,
		name:   name,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return c.name
}

// Generate sends the source image and instruction and returns the first
// inline image of the response.
func (c *Client) Generate(ctx context.Context, opts provider.GenerateOptions) (message.Image, error) {
	if opts.Model == "" {
		opts.Model = DefaultImageModel
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: opts.Source.MediaType, Data: opts.Source.Data}},
		genai.NewPartFromText(opts.Prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	call := log.LogGenerate(c.name, opts)
	start := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, opts.Model, contents, nil)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return message.Image{}, err
	}

	img, ok := firstImage(resp)
	if !ok {
		log.LogError(c.name, provider.ErrNoImageGenerated)
		log.WriteDevError(c.name, call, provider.ErrNoImageGenerated)
		return message.Image{}, provider.ErrNoImageGenerated
	}

	log.LogResult(c.name, call, responseText(resp), &img, time.Since(start))
	return img, nil
}

// Converse answers UserText about ContextImage, with History as prior turns
// and SystemPrompt as the system instruction.
func (c *Client) Converse(ctx context.Context, opts provider.ConverseOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = DefaultChatModel
	}

	contents := make([]*genai.Content, 0, len(opts.History)+1)
	for _, turn := range provider.CollapseTurns(opts.History) {
		var role genai.Role = genai.RoleUser
		if turn.Role == message.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	parts := make([]*genai.Part, 0, 2)
	if opts.ContextImage != nil && !opts.ContextImage.Empty() {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: opts.ContextImage.MediaType, Data: opts.ContextImage.Data},
		})
	}
	parts = append(parts, genai.NewPartFromText(opts.UserText))
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	config := &genai.GenerateContentConfig{}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemPrompt}},
		}
	}

	call := log.LogConverse(c.name, opts)
	start := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return provider.SettleReply(ctx, "", err)
	}

	text := responseText(resp)
	log.LogResult(c.name, call, text, nil, time.Since(start))
	return provider.SettleReply(ctx, text, nil)
}

// firstImage returns the first inline image part of the first candidate.
func firstImage(resp *genai.GenerateContentResponse) (message.Image, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return message.Image{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mediaType := part.InlineData.MIMEType
			if mediaType == "" {
				mediaType = "image/png"
			}
			return message.NewImage(part.InlineData.Data, mediaType), true
		}
	}
	return message.Image{}, false
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// Ensure Client implements both contracts
var (
	_ provider.ImageGenerator    = (*Client)(nil)
	_ provider.Conversationalist = (*Client)(nil)
)
