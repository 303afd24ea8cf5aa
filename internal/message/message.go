// Package message defines the canonical session types used across the codebase.
// All packages import from here to avoid circular dependencies.
package message

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Role represents the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Image is a binary image payload with its media type.
// Data is never mutated after construction, so copies may share it.
type Image struct {
	Data      []byte `json:"-"`
	MediaType string `json:"media_type"`
}

// NewImage creates an image, defaulting the media type to JPEG.
func NewImage(data []byte, mediaType string) Image {
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return Image{Data: data, MediaType: mediaType}
}

// Empty reports whether the image carries no payload.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Size returns the payload size in bytes.
func (i Image) Size() int {
	return len(i.Data)
}

// Base64 returns the payload as standard base64.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI returns the payload as a data: URI.
func (i Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MediaType, i.Base64())
}

// Extension returns a file extension matching the media type.
func (i Image) Extension() string {
	switch i.MediaType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

// ChatMessage is one entry of the session history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// IsVisualUpdate marks a user message that was routed through the image-edit path.
	IsVisualUpdate bool `json:"isVisualUpdate,omitempty"`
}

// Turn is the role/text projection of a ChatMessage sent to a conversational backend.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Turns projects history into backend turns, preserving order.
func Turns(history []ChatMessage) []Turn {
	turns := make([]Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, Turn{Role: msg.Role, Text: msg.Text})
	}
	return turns
}

// BuildTranscript renders history as plain text, one speaker label per message.
func BuildTranscript(history []ChatMessage) string {
	var sb strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case RoleUser:
			if msg.IsVisualUpdate {
				fmt.Fprintf(&sb, "You (edit): %s\n\n", msg.Text)
			} else {
				fmt.Fprintf(&sb, "You: %s\n\n", msg.Text)
			}
		case RoleModel:
			fmt.Fprintf(&sb, "Lumina: %s\n\n", msg.Text)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
