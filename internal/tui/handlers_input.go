package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeypress returns handled=false when the key belongs to the textarea.
func (m *model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		m.slider.Close()
		return m, tea.Quit, true
	}

	if m.showHelp {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyF1, tea.KeyEnter:
			m.showHelp = false
		default:
			if msg.String() == "q" {
				m.showHelp = false
			}
		}
		return m, nil, true
	}

	if m.selector.IsActive() {
		return m, m.selector.HandleKeypress(msg), true
	}

	switch msg.Type {
	case tea.KeyTab:
		m.toggleMode()
		return m, nil, true

	case tea.KeyEnter:
		return m, m.submit(), true

	case tea.KeyF1:
		m.showHelp = true
		return m, nil, true

	case tea.KeyCtrlS:
		m.openStyleSelector()
		return m, nil, true

	case tea.KeyCtrlV:
		m.pasteClipboard()
		return m, nil, true

	case tea.KeyCtrlO:
		m.saveGenerated("")
		return m, nil, true

	case tea.KeyShiftLeft:
		if m.state.CanCompare() {
			m.slider.Nudge(-nudgeStep)
		}
		return m, nil, true

	case tea.KeyShiftRight:
		if m.state.CanCompare() {
			m.slider.Nudge(nudgeStep)
		}
		return m, nil, true

	case tea.KeyCtrlR:
		m.slider.Reset()
		return m, nil, true

	case tea.KeyPgUp, tea.KeyCtrlU:
		m.viewport.HalfPageUp()
		return m, nil, true

	case tea.KeyPgDown, tea.KeyCtrlD:
		m.viewport.HalfPageDown()
		return m, nil, true

	case tea.KeyEsc:
		if m.notice != "" {
			m.notice = ""
			m.layout()
		}
		return m, nil, true

	case tea.KeyUp:
		if m.textarea.Line() == 0 && len(m.inputHistory) > 0 {
			m.historyPrev()
			return m, nil, true
		}

	case tea.KeyDown:
		if m.historyIndex >= 0 && m.textarea.Line() == m.textarea.LineCount()-1 {
			m.historyNext()
			return m, nil, true
		}
	}

	return m, nil, false
}

// handleMouse drives the compare divider: press inside the pane starts a
// drag, motion moves it and release ends it. It reports whether the event
// was consumed.
func (m *model) handleMouse(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.state.CanCompare() && m.inImagePane(msg.Y) {
			m.slider.Begin()
			return true
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			return false
		}
	case tea.MouseActionMotion:
		if m.slider.Dragging() {
			// Cell centre, so the divider lands under the pointer.
			m.hub.Move(float64(msg.X) + 0.5)
			return true
		}
	case tea.MouseActionRelease:
		if m.slider.Dragging() {
			m.hub.End()
			return true
		}
	}
	return false
}

func (m *model) submit() tea.Cmd {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return nil
	}

	m.inputHistory = append(m.inputHistory, text)
	m.historyIndex = -1
	m.tempInput = ""
	m.textarea.Reset()
	m.updateTextareaHeight()

	if strings.HasPrefix(text, "/") {
		return m.runCommand(text)
	}
	return m.sendMessage(text)
}

func (m *model) openStyleSelector() {
	m.selector.Enter(m.engine.Styles(), m.state.SelectedStyle, m.width, m.height)
}

func (m *model) historyPrev() {
	if m.historyIndex == -1 {
		m.tempInput = m.textarea.Value()
		m.historyIndex = len(m.inputHistory) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.textarea.SetValue(m.inputHistory[m.historyIndex])
	m.updateTextareaHeight()
}

func (m *model) historyNext() {
	if m.historyIndex < len(m.inputHistory)-1 {
		m.historyIndex++
		m.textarea.SetValue(m.inputHistory[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.textarea.SetValue(m.tempInput)
	}
	m.updateTextareaHeight()
}
