package session

import "github.com/yanmxa/lumina/internal/message"

// State is one session: the uploaded room, its latest redesign and the
// conversation about it.
type State struct {
	OriginalImage  *message.Image        `json:"originalImage,omitempty"`
	GeneratedImage *message.Image        `json:"generatedImage,omitempty"`
	History        []message.ChatMessage `json:"history"`
	IsLoading      bool                  `json:"isLoading"`
	Error          string                `json:"error,omitempty"`
	SelectedStyle  string                `json:"selectedStyle,omitempty"`
}

// HasImage reports whether a room has been uploaded.
func (s State) HasImage() bool {
	return s.OriginalImage != nil && !s.OriginalImage.Empty()
}

// CanCompare reports whether both images exist.
func (s State) CanCompare() bool {
	return s.HasImage() && s.GeneratedImage != nil && !s.GeneratedImage.Empty()
}

// Current returns the generated image when present, else the original.
// It returns nil when neither exists.
func (s State) Current() *message.Image {
	if s.GeneratedImage != nil && !s.GeneratedImage.Empty() {
		return s.GeneratedImage
	}
	return s.OriginalImage
}

// clone copies the state so that later store mutations are not visible
// through it. Image payloads are shared since they are never mutated.
func (s State) clone() State {
	out := s
	if s.OriginalImage != nil {
		img := *s.OriginalImage
		out.OriginalImage = &img
	}
	if s.GeneratedImage != nil {
		img := *s.GeneratedImage
		out.GeneratedImage = &img
	}
	if s.History != nil {
		out.History = make([]message.ChatMessage, len(s.History))
		copy(out.History, s.History)
	}
	return out
}
