package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/image"
)

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.textarea.SetWidth(max(msg.Width-4, 10))
	m.mdRenderer = createMarkdownRenderer(msg.Width)
	m.ready = true
	m.refresh()
	return m, nil
}

func (m *model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.state.IsLoading {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	m.refresh()
	if msg.Status == core.Failed && msg.Err != nil && m.state.Error == "" {
		m.notice = msg.Err.Error()
		m.layout()
	}
	return m, nil
}

// start records an accepted intent and waits for its outcome.
func (m *model) start(ch <-chan core.Outcome, err error) tea.Cmd {
	if err != nil {
		m.notice = describeError(err)
		m.layout()
		return nil
	}
	m.notice = ""
	m.refresh()
	return tea.Batch(waitForOutcome(ch), m.spinner.Tick)
}

func (m *model) selectStyle(name string) tea.Cmd {
	ch, err := m.engine.SelectStyle(m.ctx, name)
	return m.start(ch, err)
}

func (m *model) sendMessage(text string) tea.Cmd {
	ch, err := m.engine.SendMessage(m.ctx, text, m.mode == modeRefine)
	return m.start(ch, err)
}

// uploadFile loads path and starts a new session with it.
func (m *model) uploadFile(path string) error {
	info, err := image.Load(path)
	if err != nil {
		return err
	}
	if err := m.engine.Upload(info.ToMessage()); err != nil {
		return err
	}
	m.slider.Reset()
	return nil
}

func (m *model) pasteClipboard() {
	img, ok, err := image.ReadClipboard(m.ctx)
	switch {
	case err != nil:
		m.notice = err.Error()
	case !ok:
		m.notice = "No image in clipboard"
	default:
		if err := m.engine.Upload(img); err != nil {
			m.notice = describeError(err)
		} else {
			m.slider.Reset()
			m.notice = fmt.Sprintf("Pasted image (%s)", image.FormatBytes(img.Size()))
		}
	}
	m.refresh()
}

// saveGenerated writes the redesign to path, or to a name derived from
// the style in the working directory.
func (m *model) saveGenerated(path string) {
	img := m.state.GeneratedImage
	if img == nil || img.Empty() {
		m.notice = "Nothing to save yet: pick a style first"
		m.layout()
		return
	}
	if path == "" {
		path = image.OutputName("room", m.state.SelectedStyle, *img)
	}
	written, err := image.Save(path, *img)
	if err != nil {
		m.notice = "Save failed: " + err.Error()
	} else {
		abs, _ := filepath.Abs(written)
		m.notice = "Saved " + abs
	}
	m.layout()
}

func (m *model) toggleMode() {
	if m.mode == modeChat {
		m.mode = modeRefine
	} else {
		m.mode = modeChat
	}
	m.updatePlaceholder()
}

// describeError turns a rejected intent into a banner line.
func describeError(err error) string {
	switch {
	case errors.Is(err, core.ErrBusy):
		return "Still working on the last request..."
	case errors.Is(err, core.ErrNoImage):
		return "Add a room photo first: /image <path> or Ctrl+V"
	case errors.Is(err, core.ErrEmptyMessage):
		return "Type a message first"
	case errors.Is(err, core.ErrUnknownStyle):
		return err.Error() + " (see /styles)"
	default:
		return err.Error()
	}
}
