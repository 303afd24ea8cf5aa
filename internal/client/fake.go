package client

import (
	"context"
	"sync"

	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

// FakeGenerator is a test double that returns predefined images.
//
// Usage:
//
//	fake := &client.FakeGenerator{
//	    Images: []message.Image{message.NewImage([]byte("png"), "image/png")},
//	}
type FakeGenerator struct {
	// Images is the queue of images to return, consumed in order.
	// If exhausted, a one-byte PNG placeholder is returned.
	Images []message.Image

	// Calls records every request received, in order.
	Calls []provider.GenerateOptions

	// ErrorAt injects an error on the Nth call (1-based). 0 means disabled.
	ErrorAt int

	// ErrorValue is the error to inject when ErrorAt triggers.
	ErrorValue error

	// Gate, when non-nil, blocks every call until it is closed or the
	// context ends. A never-closed gate models a call that never resolves.
	Gate chan struct{}

	mu        sync.Mutex
	callCount int
}

// Generate returns the next image.
func (f *FakeGenerator) Generate(ctx context.Context, source message.Image, prompt string) (message.Image, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, provider.GenerateOptions{Model: f.ModelID(), Source: source, Prompt: prompt})
	f.callCount++
	inject := f.ErrorAt > 0 && f.callCount == f.ErrorAt
	f.mu.Unlock()

	if err := wait(ctx, f.Gate); err != nil {
		return message.Image{}, err
	}
	if inject {
		return message.Image{}, f.ErrorValue
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Images) == 0 {
		return message.NewImage([]byte{0x89}, "image/png"), nil
	}
	img := f.Images[0]
	f.Images = f.Images[1:]
	return img, nil
}

// CallCount returns how many calls were made.
func (f *FakeGenerator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastCall returns the most recent request.
func (f *FakeGenerator) LastCall() provider.GenerateOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return provider.GenerateOptions{}
	}
	return f.Calls[len(f.Calls)-1]
}

// Name returns the provider name.
func (f *FakeGenerator) Name() string { return "fake" }

// ModelID returns the model identifier.
func (f *FakeGenerator) ModelID() string { return "fake-image-model" }

// FakeConverser is a test double that returns predefined replies.
type FakeConverser struct {
	// Replies is the queue of replies to return, consumed in order.
	// If exhausted, "no more replies" is returned.
	Replies []string

	// Calls records every request received, in order.
	Calls []provider.ConverseOptions

	// ErrorAt injects an error on the Nth call (1-based). 0 means disabled.
	ErrorAt int

	// ErrorValue is the error to inject when ErrorAt triggers.
	ErrorValue error

	// Gate, when non-nil, blocks every call until it is closed or the context ends.
	Gate chan struct{}

	mu        sync.Mutex
	callCount int
}

// Converse returns the next reply.
func (f *FakeConverser) Converse(ctx context.Context, history []message.Turn, image *message.Image, userText string) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, provider.ConverseOptions{
		Model:        f.ModelID(),
		History:      history,
		ContextImage: image,
		UserText:     userText,
	})
	f.callCount++
	inject := f.ErrorAt > 0 && f.callCount == f.ErrorAt
	f.mu.Unlock()

	if err := wait(ctx, f.Gate); err != nil {
		return "", err
	}
	if inject {
		return "", f.ErrorValue
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Replies) == 0 {
		return "no more replies", nil
	}
	reply := f.Replies[0]
	f.Replies = f.Replies[1:]
	return reply, nil
}

// CallCount returns how many calls were made.
func (f *FakeConverser) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastCall returns the most recent request.
func (f *FakeConverser) LastCall() provider.ConverseOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return provider.ConverseOptions{}
	}
	return f.Calls[len(f.Calls)-1]
}

// Name returns the provider name.
func (f *FakeConverser) Name() string { return "fake" }

// ModelID returns the model identifier.
func (f *FakeConverser) ModelID() string { return "fake-chat-model" }

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ ImageClient = (*FakeGenerator)(nil)
	_ ChatClient  = (*FakeConverser)(nil)
)
