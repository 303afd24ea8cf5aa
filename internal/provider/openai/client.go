package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

// Default models
const (
	DefaultImageModel = "gpt-image-1"
	DefaultChatModel  = "gpt-4o"
)

// Client implements both provider contracts using the OpenAI SDK
type Client struct {
	client openai.Client
	name   string
}

// NewClient creates a new OpenAI client with the given SDK client
func NewClient(client openai.Client, name string) *Client {
	return &Client{
		client: client,
		name:   name,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return c.name
}

// Generate edits the source image with the images API.
func (c *Client) Generate(ctx context.Context, opts provider.GenerateOptions) (message.Image, error) {
	if opts.Model == "" {
		opts.Model = DefaultImageModel
	}

	params := openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(opts.Source.Data), "room"+opts.Source.Extension(), opts.Source.MediaType),
		},
		Prompt: opts.Prompt,
		Model:  openai.ImageModel(opts.Model),
	}

	call := log.LogGenerate(c.name, opts)
	start := time.Now()

	resp, err := c.client.Images.Edit(ctx, params)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return message.Image{}, err
	}

	img, err := decodeImage(resp)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return message.Image{}, err
	}

	log.LogResult(c.name, call, "", &img, time.Since(start))
	return img, nil
}

// Converse answers with a chat completion. The context image travels as a
// data URI part of the final user message.
func (c *Client) Converse(ctx context.Context, opts provider.ConverseOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = DefaultChatModel
	}

	params := openai.ChatCompletionNewParams{
		Model:    opts.Model,
		Messages: BuildChatMessages(opts),
	}

	call := log.LogConverse(c.name, opts)
	start := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.LogError(c.name, err)
		log.WriteDevError(c.name, call, err)
		return provider.SettleReply(ctx, "", err)
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	log.LogResult(c.name, call, text, nil, time.Since(start))
	return provider.SettleReply(ctx, text, nil)
}

// BuildChatMessages converts conversational options into chat completion
// messages: system prompt, prior turns, then the image and user text.
func BuildChatMessages(opts provider.ConverseOptions) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(opts.History)+2)

	if opts.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(opts.SystemPrompt))
	}

	for _, turn := range opts.History {
		switch turn.Role {
		case message.RoleModel:
			messages = append(messages, openai.AssistantMessage(turn.Text))
		default:
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}

	if opts.ContextImage == nil || opts.ContextImage.Empty() {
		return append(messages, openai.UserMessage(opts.UserText))
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: opts.ContextImage.DataURI(),
				},
			},
		},
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: opts.UserText,
			},
		},
	}
	return append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	})
}

// decodeImage extracts the first base64 image of an images response.
func decodeImage(resp *openai.ImagesResponse) (message.Image, error) {
	if resp == nil || len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return message.Image{}, provider.ErrNoImageGenerated
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return message.Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if len(data) == 0 {
		return message.Image{}, provider.ErrNoImageGenerated
	}
	return message.NewImage(data, http.DetectContentType(data)), nil
}

// Ensure Client implements both contracts
var (
	_ provider.ImageGenerator    = (*Client)(nil)
	_ provider.Conversationalist = (*Client)(nil)
)
