package core

import (
	"fmt"
	"strings"

	"github.com/yanmxa/lumina/internal/style"
)

// ConsultantPrompt is the system instruction for advice conversations.
const ConsultantPrompt = `You are an expert Interior Design Consultant.
Analyze the provided room image. Answer the user's questions about design, color matching,
furniture placement, and style.
If asked for recommendations, provide specific types of products that would fit the style.
Format your response using Markdown. Use bolding for product names.`

// User-facing failure messages.
const (
	MsgStyleFailed   = "Failed to generate design. Please try again."
	MsgMessageFailed = "Something went wrong. Please try again."
	MsgNoImageToEdit = "No image to edit"
)

// StylePrompt builds the generation prompt for a style redesign.
func StylePrompt(s style.Style) string {
	prompt := fmt.Sprintf("Redesign this room interior in a %s style. "+
		"Keep the structural layout but change furniture, colors, and textures to match the aesthetic. "+
		"Photorealistic, high quality.", s.Name)
	if g := strings.TrimSpace(s.Guidance); g != "" {
		prompt += " " + g
	}
	return prompt
}

// StyleReply is the model message appended after a successful redesign.
func StyleReply(name string) string {
	return fmt.Sprintf("I've redesigned your room in a **%s** style! How do you like it? "+
		"You can ask me to refine specific details or find similar products.", name)
}

// EditPrompt builds the generation prompt for a visual edit.
func EditPrompt(text string) string {
	return fmt.Sprintf("Modify this room image: %s. Maintain photorealism.", text)
}

// EditReply is the model message appended after a successful visual edit.
func EditReply(text string) string {
	return fmt.Sprintf("I've updated the design based on your request: \"%s\".", text)
}
