package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/yanmxa/lumina/internal/client"
	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/style"
)

// --- Test helpers ---

func testPNG(t *testing.T, c color.RGBA) message.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return message.NewImage(buf.Bytes(), "image/png")
}

func newTestModel(t *testing.T, gen *client.FakeGenerator, conv *client.FakeConverser) (*model, *core.Engine) {
	t.Helper()
	e := core.New(core.Config{Images: gen, Chat: conv})
	m, err := newModel(context.Background(), e, Options{})
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	next, _ := update(t, &m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return next, e
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (*model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	switch v := next.(type) {
	case *model:
		return v, cmd
	case model:
		return &v, cmd
	}
	t.Fatalf("unexpected model type %T", next)
	return nil, nil
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds the outcome produced by cmd back into the model.
func settle(t *testing.T, m *model, cmd tea.Cmd) *model {
	t.Helper()
	for _, msg := range collect(cmd) {
		if out, ok := msg.(outcomeMsg); ok {
			next, _ := update(t, m, out)
			return next
		}
	}
	t.Fatal("no outcome produced")
	return nil
}

func typeAndSend(t *testing.T, m *model, text string) (*model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func plain(s string) string {
	return xansi.Strip(s)
}

func uploadAndStyle(t *testing.T, m *model, e *core.Engine) *model {
	t.Helper()
	if err := e.Upload(testPNG(t, color.RGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	m, cmd := typeAndSend(t, m, "/style Boho")
	return settle(t, m, cmd)
}

// --- Tests ---

func TestTabTogglesMode(t *testing.T) {
	m, _ := newTestModel(t, &client.FakeGenerator{}, &client.FakeConverser{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeRefine {
		t.Errorf("expected refine mode, got %v", m.mode)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeChat {
		t.Errorf("expected chat mode, got %v", m.mode)
	}
}

func TestSendWithoutImageShowsNotice(t *testing.T) {
	conv := &client.FakeConverser{}
	m, _ := newTestModel(t, &client.FakeGenerator{}, conv)

	m, cmd := typeAndSend(t, m, "hello")
	if cmd != nil {
		t.Error("expected no command for a rejected intent")
	}
	if !strings.Contains(m.notice, "room photo") {
		t.Errorf("expected upload notice, got %q", m.notice)
	}
	if conv.CallCount() != 0 {
		t.Error("expected no backend call")
	}
}

func TestAdviceRoundTrip(t *testing.T) {
	conv := &client.FakeConverser{Replies: []string{"A **jute** rug would work."}}
	m, e := newTestModel(t, &client.FakeGenerator{}, conv)
	if err := e.Upload(testPNG(t, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	m, cmd := typeAndSend(t, m, "What rug?")
	if m.textarea.Value() != "" {
		t.Error("expected input cleared after send")
	}
	m = settle(t, m, cmd)

	if len(m.state.History) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(m.state.History))
	}
	if m.state.History[0].IsVisualUpdate {
		t.Error("expected chat mode message not to be a visual edit")
	}

	out := plain(m.renderMessages())
	if !strings.Contains(out, "A jute rug would work.") {
		t.Errorf("expected reply rendered without markers, got %q", out)
	}
	if strings.Contains(out, "**") {
		t.Error("expected bold markers removed")
	}
}

func TestRefineModeSendsVisualEdit(t *testing.T) {
	gen := &client.FakeGenerator{Images: []message.Image{testPNG(t, color.RGBA{G: 255, A: 255})}}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	if err := e.Upload(testPNG(t, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := typeAndSend(t, m, "paint the walls green")
	m = settle(t, m, cmd)

	if gen.CallCount() != 1 {
		t.Fatalf("expected one generate call, got %d", gen.CallCount())
	}
	if !m.state.History[0].IsVisualUpdate {
		t.Error("expected visual edit flag")
	}
	if !strings.Contains(plain(m.renderMessages()), visualBadge) {
		t.Error("expected visual edit badge")
	}
	if !m.state.CanCompare() {
		t.Error("expected compare view to be available")
	}
}

func TestEmptyHint(t *testing.T) {
	m, e := newTestModel(t, &client.FakeGenerator{}, &client.FakeConverser{})
	if !strings.Contains(plain(m.renderMessages()), "/image <path>") {
		t.Error("expected welcome text before upload")
	}

	if err := e.Upload(testPNG(t, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	m.refresh()
	if !strings.Contains(plain(m.renderMessages()), emptyHint) {
		t.Errorf("expected empty hint, got %q", plain(m.renderMessages()))
	}
}

func TestStyleCommand(t *testing.T) {
	gen := &client.FakeGenerator{}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	m = uploadAndStyle(t, m, e)

	if !strings.Contains(gen.LastCall().Prompt, style.Boho) {
		t.Errorf("expected Boho prompt, got %q", gen.LastCall().Prompt)
	}
	if m.state.SelectedStyle != style.Boho {
		t.Errorf("expected selected style Boho, got %q", m.state.SelectedStyle)
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t, &client.FakeGenerator{}, &client.FakeConverser{})

	m, _ = typeAndSend(t, m, "/teleport")
	if !strings.Contains(m.notice, "Unknown command") {
		t.Errorf("expected unknown command notice, got %q", m.notice)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		name  string
		args  string
	}{
		{"/style", "style", ""},
		{"/style  Mid-Century Modern ", "style", "Mid-Century Modern"},
		{"/IMAGE room.jpg", "image", "room.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args := parseCommand(tt.input)
			if name != tt.name || args != tt.args {
				t.Errorf("parseCommand(%q) = %q, %q; want %q, %q", tt.input, name, args, tt.name, tt.args)
			}
		})
	}
}

func TestStyleSelectorPick(t *testing.T) {
	m, _ := newTestModel(t, &client.FakeGenerator{}, &client.FakeConverser{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.selector.IsActive() {
		t.Fatal("expected selector to open")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.selector.IsActive() {
		t.Error("expected selector to close")
	}

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	picked, ok := msgs[0].(StyleSelectedMsg)
	if !ok || picked.Name != style.Scandinavian {
		t.Errorf("expected Scandinavian, got %+v", msgs[0])
	}
}

func TestStyleSelectorFilter(t *testing.T) {
	s := NewStyleSelectorState()
	s.Enter(style.NewCatalog(), "", 100, 40)

	for _, r := range "brass" {
		s.HandleKeypress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	selected, ok := s.Selected()
	if !ok || selected.Name != style.ArtDeco {
		t.Errorf("expected Art Deco, got %+v", selected)
	}
	s.HandleKeypress(tea.KeyMsg{Type: tea.KeyEsc})
	if !s.IsActive() {
		t.Error("expected first Esc to clear the filter only")
	}
	s.HandleKeypress(tea.KeyMsg{Type: tea.KeyEsc})
	if s.IsActive() {
		t.Error("expected second Esc to close")
	}
}

func TestMouseDragMovesDivider(t *testing.T) {
	gen := &client.FakeGenerator{Images: []message.Image{testPNG(t, color.RGBA{G: 255, A: 255})}}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	m = uploadAndStyle(t, m, e)

	y := m.paneTop + 2
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.slider.Dragging() {
		t.Fatal("expected drag to start")
	}
	if m.slider.Position() != 50 {
		t.Errorf("expected press alone not to move the divider, got %v", m.slider.Position())
	}

	m, _ = update(t, m, tea.MouseMsg{X: 24, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.slider.Position(); got != 24.5 {
		t.Errorf("expected 24.5, got %v", got)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 24, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.slider.Dragging() || m.hub.Listeners() != 0 {
		t.Error("expected release to end the drag")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 80, Y: y, Action: tea.MouseActionMotion})
	if got := m.slider.Position(); got != 24.5 {
		t.Errorf("expected position unchanged after release, got %v", got)
	}
}

func TestNudgeKeys(t *testing.T) {
	m, e := newTestModel(t, &client.FakeGenerator{}, &client.FakeConverser{})
	m = uploadAndStyle(t, m, e)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got := m.slider.Position(); got != 50-nudgeStep {
		t.Errorf("expected %v, got %v", 50-nudgeStep, got)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.slider.Position(); got != 50 {
		t.Errorf("expected reset to 50, got %v", got)
	}
}

func TestCompareViewLabels(t *testing.T) {
	gen := &client.FakeGenerator{Images: []message.Image{testPNG(t, color.RGBA{G: 255, A: 255})}}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	m = uploadAndStyle(t, m, e)

	view := plain(m.View())
	if !strings.Contains(view, afterLabel) || !strings.Contains(view, beforeLabel) {
		t.Error("expected Redesign and Original labels")
	}
}

func TestLoadingOverlay(t *testing.T) {
	gate := make(chan struct{})
	gen := &client.FakeGenerator{Gate: gate}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	defer func() {
		close(gate)
		e.Wait()
	}()
	if err := e.Upload(testPNG(t, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	m, _ = typeAndSend(t, m, "/style Coastal")
	if !m.state.IsLoading {
		t.Fatal("expected loading state")
	}
	if !strings.Contains(plain(m.View()), loadingText) {
		t.Error("expected loading overlay")
	}

	m, _ = typeAndSend(t, m, "another")
	if !strings.Contains(m.notice, "Still working") {
		t.Errorf("expected busy notice, got %q", m.notice)
	}
}

func TestErrorBanner(t *testing.T) {
	gen := &client.FakeGenerator{ErrorAt: 1, ErrorValue: context.DeadlineExceeded}
	m, e := newTestModel(t, gen, &client.FakeConverser{})
	if err := e.Upload(testPNG(t, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	m, cmd := typeAndSend(t, m, "/style Modern")
	m = settle(t, m, cmd)
	if !strings.Contains(plain(m.renderBanner()), core.MsgStyleFailed) {
		t.Errorf("expected style failure banner, got %q", plain(m.renderBanner()))
	}
}

func TestSanitize(t *testing.T) {
	got := sanitize("ok\x1b[31mred\x07\nnext")
	if got != "ok[31mred\nnext" {
		t.Errorf("unexpected sanitize result %q", got)
	}
}

func TestHelpListsCommands(t *testing.T) {
	for _, c := range sortedCommands() {
		if !strings.Contains(helpMarkdown(), c.Usage) {
			t.Errorf("expected help to mention %s", c.Usage)
		}
	}
}
