// Package core provides the session orchestration engine. It turns user
// intents (upload, style selection, chat) into backend calls and commits
// their results into the session store, one call at a time.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yanmxa/lumina/internal/client"
	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
	"github.com/yanmxa/lumina/internal/session"
	"github.com/yanmxa/lumina/internal/style"
)

// DefaultRequestTimeout bounds a single backend call.
const DefaultRequestTimeout = 2 * time.Minute

// Intent errors. A rejected intent leaves the state untouched.
var (
	ErrBusy          = errors.New("a request is already in progress")
	ErrNoImage       = errors.New("no room image uploaded")
	ErrEmptyImage    = errors.New("image is empty")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrUnknownStyle  = errors.New("unknown style")
	ErrNoImageToEdit = errors.New("no image to edit")
)

// Status is the terminal state of an accepted intent.
type Status int

const (
	Committed Status = iota
	Failed
)

func (s Status) String() string {
	if s == Committed {
		return "committed"
	}
	return "failed"
}

// Outcome is delivered exactly once per accepted intent.
type Outcome struct {
	Status Status
	Err    error
	State  session.State
}

// Config configures an Engine.
type Config struct {
	Images client.ImageClient
	Chat   client.ChatClient
	Styles *style.Catalog

	// RequestTimeout bounds each backend call. Zero disables the bound.
	RequestTimeout time.Duration

	// Store overrides the session store (tests inject clocks and IDs).
	Store *session.Store
}

// Engine serialises all session mutations and runs at most one backend call.
type Engine struct {
	images  client.ImageClient
	chat    client.ChatClient
	styles  *style.Catalog
	timeout time.Duration

	mu    sync.Mutex
	store *session.Store

	// published is the last transition sequence number, guarded by mu.
	// delivered is the last one handed to listeners, guarded by notifyMu.
	// Deliveries wait their turn on notified so no one holds mu meanwhile.
	published    uint64
	notifyMu     sync.Mutex
	notified     *sync.Cond
	delivered    uint64
	listenersMu  sync.Mutex
	listeners    map[int]func(session.State)
	nextListener int

	wg sync.WaitGroup
}

// New creates an engine with an empty session.
func New(cfg Config) *Engine {
	e := &Engine{
		images:    cfg.Images,
		chat:      cfg.Chat,
		styles:    cfg.Styles,
		timeout:   cfg.RequestTimeout,
		store:     cfg.Store,
		listeners: make(map[int]func(session.State)),
	}
	e.notified = sync.NewCond(&e.notifyMu)
	if e.styles == nil {
		e.styles = style.NewCatalog()
	}
	if e.store == nil {
		e.store = session.NewStore()
	}
	return e
}

// Styles returns the style catalog.
func (e *Engine) Styles() *style.Catalog {
	return e.styles
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() session.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshot()
}

// Subscribe registers fn to receive a snapshot after every transition, in
// transition order. fn runs on the goroutine that made the transition. It may
// call Snapshot but must not block or call the engine's intents.
func (e *Engine) Subscribe(fn func(session.State)) (cancel func()) {
	e.listenersMu.Lock()
	e.nextListener++
	id := e.nextListener
	e.listeners[id] = fn
	e.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.listenersMu.Lock()
			delete(e.listeners, id)
			e.listenersMu.Unlock()
		})
	}
}

// Wait blocks until no backend call is outstanding.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Upload starts a new session around img.
func (e *Engine) Upload(img message.Image) error {
	if img.Empty() {
		return ErrEmptyImage
	}

	e.mu.Lock()
	if e.store.Snapshot().IsLoading {
		e.mu.Unlock()
		return ErrBusy
	}
	e.store.Reset(img)
	log.LogTransition("upload", log.ImageField("image", img))
	e.publishLocked()
	return nil
}

// SelectStyle regenerates the original image in the named style.
func (e *Engine) SelectStyle(ctx context.Context, name string) (<-chan Outcome, error) {
	s, ok := e.styles.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	e.mu.Lock()
	state := e.store.Snapshot()
	if state.IsLoading {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	if !state.HasImage() {
		e.mu.Unlock()
		return nil, ErrNoImage
	}

	e.store.Begin(s.Name)
	source := *state.OriginalImage
	prompt := StylePrompt(s)
	log.LogTransition("select_style", zap.String("style", s.Name))

	return e.launchLocked(ctx, MsgStyleFailed, func(ctx context.Context) (commit, error) {
		img, err := e.images.Generate(ctx, source, prompt)
		if err != nil {
			return nil, err
		}
		if img.Empty() {
			return nil, provider.ErrNoImageGenerated
		}
		return func(st *session.Store) { st.CommitImage(img, StyleReply(s.Name)) }, nil
	}), nil
}

// SendMessage appends a user message and either edits the current image
// (visual edit) or asks the consultant about it. Advice requires an uploaded
// room; a visual edit with nothing to edit is accepted and fails with
// ErrNoImageToEdit.
func (e *Engine) SendMessage(ctx context.Context, text string, visualEdit bool) (<-chan Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	e.mu.Lock()
	state := e.store.Snapshot()
	if state.IsLoading {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	// A visual edit without an image still records the request and fails
	// with an error state below.
	if !state.HasImage() && !visualEdit {
		e.mu.Unlock()
		return nil, ErrNoImage
	}

	prior := message.Turns(state.History)
	e.store.AppendUser(text, visualEdit)
	e.store.Begin("")
	log.LogTransition("send_message", zap.Bool("visual_edit", visualEdit), zap.String("text", text))

	current := state.Current()

	if visualEdit {
		if current == nil || current.Empty() {
			e.store.Fail(MsgNoImageToEdit)
			out := e.outcomeLocked(ErrNoImageToEdit)
			e.publishLocked()
			ch := make(chan Outcome, 1)
			ch <- out
			close(ch)
			return ch, nil
		}

		source := *current
		prompt := EditPrompt(text)
		return e.launchLocked(ctx, MsgMessageFailed, func(ctx context.Context) (commit, error) {
			img, err := e.images.Generate(ctx, source, prompt)
			if err != nil {
				return nil, err
			}
			if img.Empty() {
				return nil, provider.ErrNoImageGenerated
			}
			return func(st *session.Store) { st.CommitImage(img, EditReply(text)) }, nil
		}), nil
	}

	var contextImage *message.Image
	if current != nil {
		img := *current
		contextImage = &img
	}
	return e.launchLocked(ctx, MsgMessageFailed, func(ctx context.Context) (commit, error) {
		reply, err := e.chat.Converse(ctx, prior, contextImage, text)
		if err != nil {
			return nil, err
		}
		return func(st *session.Store) { st.CommitReply(reply) }, nil
	}), nil
}

// commit applies a successful result to the store.
type commit func(*session.Store)

// launchLocked runs call in its own goroutine. The start transition is
// published before the goroutine starts. It releases e.mu.
func (e *Engine) launchLocked(ctx context.Context, failMsg string, call func(context.Context) (commit, error)) <-chan Outcome {
	e.wg.Add(1)
	e.publishLocked()

	ch := make(chan Outcome, 1)
	go func() {
		defer e.wg.Done()
		defer close(ch)

		apply, err := e.invoke(ctx, call)

		e.mu.Lock()
		if err != nil {
			log.LogError("engine", err)
			e.store.Fail(failMsg)
		} else {
			apply(e.store)
		}
		out := e.outcomeLocked(err)
		log.LogTransition(out.Status.String())
		e.publishLocked()

		ch <- out
	}()
	return ch
}

// invoke calls the backend with the request timeout and converts panics into errors.
func (e *Engine) invoke(ctx context.Context, call func(context.Context) (commit, error)) (apply commit, err error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			apply, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()

	return call(ctx)
}

func (e *Engine) outcomeLocked(err error) Outcome {
	out := Outcome{Status: Committed, State: e.store.Snapshot()}
	if err != nil {
		out.Status = Failed
		out.Err = err
	}
	return out
}

// publishLocked delivers the current snapshot to listeners. It releases e.mu
// before waiting for earlier transitions to finish delivering.
func (e *Engine) publishLocked() {
	snap := e.store.Snapshot()
	e.published++
	seq := e.published
	e.mu.Unlock()

	e.notifyMu.Lock()
	for e.delivered+1 != seq {
		e.notified.Wait()
	}
	e.notifyMu.Unlock()

	defer func() {
		e.notifyMu.Lock()
		e.delivered = seq
		e.notified.Broadcast()
		e.notifyMu.Unlock()
	}()

	e.listenersMu.Lock()
	fns := make([]func(session.State), 0, len(e.listeners))
	for id := 1; id <= e.nextListener; id++ {
		if fn, ok := e.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
