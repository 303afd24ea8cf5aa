// Package session holds the state of one redesign session.
//
// The store is a plain container. It does no locking and no validation;
// its single owner (the engine) serialises every call.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanmxa/lumina/internal/message"
)

// Store owns the current session state.
type Store struct {
	state State
	newID func() string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides message ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: newMessageID, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newMessageID returns a time-ordered UUIDv7.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.clone()
}

// Reset starts a new session around img. Everything else is cleared.
func (s *Store) Reset(img message.Image) {
	s.state = State{OriginalImage: &img}
}

// Begin marks a backend call as outstanding and clears the last error.
// A non-empty style is recorded as the selected style.
func (s *Store) Begin(style string) {
	s.state.IsLoading = true
	s.state.Error = ""
	if style != "" {
		s.state.SelectedStyle = style
	}
}

// AppendUser appends a user message and returns it.
func (s *Store) AppendUser(text string, visual bool) message.ChatMessage {
	msg := s.newMessage(message.RoleUser, text)
	msg.IsVisualUpdate = visual
	s.state.History = append(s.state.History, msg)
	return msg
}

// CommitImage stores a generated image together with the model's reply and
// ends the outstanding call.
func (s *Store) CommitImage(img message.Image, reply string) message.ChatMessage {
	s.state.GeneratedImage = &img
	return s.CommitReply(reply)
}

// CommitReply appends a model reply and ends the outstanding call.
func (s *Store) CommitReply(text string) message.ChatMessage {
	msg := s.newMessage(message.RoleModel, text)
	s.state.History = append(s.state.History, msg)
	s.state.IsLoading = false
	return msg
}

// Fail ends the outstanding call with an error message.
func (s *Store) Fail(msg string) {
	s.state.IsLoading = false
	s.state.Error = msg
}

func (s *Store) newMessage(role message.Role, text string) message.ChatMessage {
	return message.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}
