package session

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yanmxa/lumina/internal/message"
)

func newTestStore() *Store {
	n := 0
	clock := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewStore(
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("msg-%d", n)
		}),
		WithClock(func() time.Time { return clock }),
	)
}

func room() message.Image {
	return message.NewImage([]byte("room"), "image/png")
}

func TestNewStoreEmpty(t *testing.T) {
	s := NewStore().Snapshot()
	if s.HasImage() || s.IsLoading || s.Error != "" || len(s.History) != 0 {
		t.Errorf("expected empty state, got %+v", s)
	}
}

func TestDefaultIDsAreUUIDv7(t *testing.T) {
	s := NewStore()
	msg := s.AppendUser("hi", false)

	id, err := uuid.Parse(msg.ID)
	if err != nil {
		t.Fatalf("expected UUID, got %q: %v", msg.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("expected version 7, got %d", id.Version())
	}
}

func TestResetClearsSession(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.Begin("Boho")
	s.CommitImage(message.NewImage([]byte("boho"), "image/png"), "done")
	s.Fail("boom")

	next := message.NewImage([]byte("kitchen"), "image/jpeg")
	s.Reset(next)

	snap := s.Snapshot()
	if string(snap.OriginalImage.Data) != "kitchen" {
		t.Errorf("expected new original image, got %q", snap.OriginalImage.Data)
	}
	if snap.GeneratedImage != nil {
		t.Error("expected generated image to be cleared")
	}
	if len(snap.History) != 0 {
		t.Errorf("expected empty history, got %d messages", len(snap.History))
	}
	if snap.SelectedStyle != "" || snap.Error != "" || snap.IsLoading {
		t.Errorf("expected cleared flags, got %+v", snap)
	}
}

func TestBeginKeepsStyleWhenEmpty(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.Begin("Coastal")
	s.CommitReply("ok")
	s.Begin("")

	snap := s.Snapshot()
	if snap.SelectedStyle != "Coastal" {
		t.Errorf("expected style to be kept, got %q", snap.SelectedStyle)
	}
	if !snap.IsLoading {
		t.Error("expected loading")
	}
}

func TestBeginClearsError(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.Fail("previous")
	s.Begin("")
	if s.Snapshot().Error != "" {
		t.Error("expected error to be cleared")
	}
}

func TestAppendAndCommit(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.Begin("")
	user := s.AppendUser("paint it blue", true)
	reply := s.CommitImage(message.NewImage([]byte("blue"), "image/png"), "updated")

	if user.ID != "msg-1" || reply.ID != "msg-2" {
		t.Errorf("unexpected ids %q, %q", user.ID, reply.ID)
	}
	if !user.IsVisualUpdate {
		t.Error("expected visual update flag on user message")
	}

	snap := s.Snapshot()
	if len(snap.History) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.History))
	}
	if snap.History[0].Role != message.RoleUser || snap.History[1].Role != message.RoleModel {
		t.Errorf("unexpected roles %q, %q", snap.History[0].Role, snap.History[1].Role)
	}
	if snap.IsLoading {
		t.Error("expected loading to be cleared")
	}
	if string(snap.GeneratedImage.Data) != "blue" {
		t.Errorf("expected generated image, got %q", snap.GeneratedImage.Data)
	}
	if !snap.CanCompare() {
		t.Error("expected compare to be available")
	}
}

func TestFailKeepsImageAndHistory(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.Begin("")
	s.CommitImage(message.NewImage([]byte("v1"), "image/png"), "first")
	s.Begin("")
	s.AppendUser("more plants", true)
	s.Fail("Something went wrong. Please try again.")

	snap := s.Snapshot()
	if string(snap.GeneratedImage.Data) != "v1" {
		t.Errorf("expected generated image unchanged, got %q", snap.GeneratedImage.Data)
	}
	if len(snap.History) != 2 {
		t.Errorf("expected user message to be kept, got %d messages", len(snap.History))
	}
	if snap.IsLoading {
		t.Error("expected loading to be cleared")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore()
	s.Reset(room())
	s.AppendUser("one", false)

	snap := s.Snapshot()
	s.AppendUser("two", false)
	s.CommitImage(message.NewImage([]byte("gen"), "image/png"), "three")

	if len(snap.History) != 1 {
		t.Errorf("expected snapshot to keep 1 message, got %d", len(snap.History))
	}
	if snap.GeneratedImage != nil {
		t.Error("expected snapshot not to see later image")
	}

	snap.History[0].Text = "mutated"
	if s.Snapshot().History[0].Text != "one" {
		t.Error("expected snapshot mutation not to leak into store")
	}
}

func TestCurrent(t *testing.T) {
	var st State
	if st.Current() != nil {
		t.Error("expected nil current image for empty state")
	}

	orig := room()
	st.OriginalImage = &orig
	if st.Current() != &orig {
		t.Error("expected original image")
	}

	gen := message.NewImage([]byte("gen"), "image/png")
	st.GeneratedImage = &gen
	if st.Current() != &gen {
		t.Error("expected generated image")
	}
}

func TestTitle(t *testing.T) {
	long := strings.Repeat("please add more plants ", 5)
	tests := []struct {
		name     string
		state    State
		expected string
	}{
		{"empty", State{}, "Untitled Session"},
		{"style", State{SelectedStyle: "Boho"}, "Boho redesign"},
		{"first user message", State{History: []message.ChatMessage{
			{Role: message.RoleModel, Text: "hello"},
			{Role: message.RoleUser, Text: "  what   rug? "},
		}}, "what rug?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.state); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	got := Title(State{History: []message.ChatMessage{{Role: message.RoleUser, Text: long}}})
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated title, got %q", got)
	}
	if len([]rune(got)) > MaxTitleLength+3 {
		t.Errorf("title too long: %d runes", len([]rune(got)))
	}
}
