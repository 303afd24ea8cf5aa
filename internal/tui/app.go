// Package tui is the interactive terminal surface: chat, style picker and
// the before/after compare view.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanmxa/lumina/internal/compare"
	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/session"
)

// inputMode selects how a submitted message is routed.
type inputMode int

const (
	modeChat inputMode = iota
	modeRefine
)

func (m inputMode) String() string {
	if m == modeRefine {
		return "Refine"
	}
	return "Chat"
}

// Options configures the initial session.
type Options struct {
	// ImagePath is uploaded before the UI starts.
	ImagePath string
	// Style is applied to the uploaded image on start.
	Style string
}

type (
	// outcomeMsg carries the result of an accepted intent.
	outcomeMsg core.Outcome
	// startStyleMsg applies a style once the program is running.
	startStyleMsg struct{ name string }
)

type model struct {
	engine *core.Engine
	ctx    context.Context

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool

	state  session.State
	mode   inputMode
	notice string

	selector StyleSelectorState

	showHelp   bool
	mdRenderer *glamour.TermRenderer

	hub      *compare.Hub
	slider   *compare.Slider
	previews *previewCache

	// Image pane geometry, in terminal rows.
	paneTop   int
	imageRows int

	inputHistory []string
	historyIndex int
	tempInput    string

	initialStyle string
}

// Run starts the TUI on engine until the user quits.
func Run(ctx context.Context, engine *core.Engine, opts Options) error {
	m, err := newModel(ctx, engine, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	m.slider.Close()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newModel(ctx context.Context, engine *core.Engine, opts Options) (model, error) {
	ta := textarea.New()
	ta.Placeholder = "Ask about your room..."
	ta.Focus()
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(minTextareaHeight)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    spinnerFPS,
	}
	sp.Style = thinkingStyle

	hub := compare.NewHub()

	m := model{
		engine:       engine,
		ctx:          ctx,
		viewport:     viewport.New(defaultWidth, 10),
		textarea:     ta,
		spinner:      sp,
		selector:     NewStyleSelectorState(),
		mdRenderer:   createMarkdownRenderer(defaultWidth),
		hub:          hub,
		slider:       compare.NewSlider(hub),
		previews:     &previewCache{},
		historyIndex: -1,
		initialStyle: opts.Style,
	}

	if opts.ImagePath != "" {
		if err := m.uploadFile(opts.ImagePath); err != nil {
			return model{}, err
		}
	}
	m.state = engine.Snapshot()
	m.updatePlaceholder()
	return m, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.initialStyle != "" {
		name := m.initialStyle
		cmds = append(cmds, func() tea.Msg { return startStyleMsg{name: name} })
	}
	return tea.Batch(cmds...)
}

func (m *model) updateTextareaHeight() {
	lines := strings.Count(m.textarea.Value(), "\n") + 1
	m.textarea.SetHeight(max(minTextareaHeight, min(lines, maxTextareaHeight)))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case outcomeMsg:
		return m.handleOutcome(msg)

	case startStyleMsg:
		return m, m.selectStyle(msg.name)

	case StyleSelectedMsg:
		return m, m.selectStyle(msg.Name)

	case StyleSelectorCancelledMsg:
		return m, nil

	case tea.KeyMsg:
		if result, cmd, handled := m.handleKeypress(msg); handled {
			return result, cmd
		}

	case tea.MouseMsg:
		if m.handleMouse(msg) {
			return m, nil
		}

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	var cmd tea.Cmd
	prevValue := m.textarea.Value()
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	if m.textarea.Value() != prevValue {
		m.updateTextareaHeight()
		m.layout()
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.selector.IsActive() {
		return m.selector.Render()
	}

	separator := separatorStyle.Render(strings.Repeat("─", m.width))

	var parts []string
	parts = append(parts, m.renderHeader())
	if pane := m.renderImagePane(); pane != "" {
		parts = append(parts, pane)
	}
	parts = append(parts, m.viewport.View())
	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner)
	}

	prompt := inputPromptStyle.Render("❯ ")
	if m.mode == modeRefine {
		prompt = lipgloss.NewStyle().Foreground(CurrentTheme.Success).Bold(true).Render("✎ ")
	}
	parts = append(parts, separator, prompt+m.textarea.View(), separator, m.renderStatus())

	return strings.Join(parts, "\n")
}

// layout sizes the image pane, viewport and compare bounds for the
// current window and state.
func (m *model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	const headerH, separatorH, statusH = 1, 2, 1
	bannerH := 0
	if m.renderBanner() != "" {
		bannerH = 1
	}
	free := m.height - headerH - separatorH - statusH - bannerH - m.textarea.Height()

	m.paneTop = headerH
	m.imageRows = 0
	if m.state.HasImage() {
		paneH := max(free*imagePanePercent/100, minImageRows+1)
		if paneH > free-1 {
			paneH = free - 1
		}
		if paneH > 1 {
			// One label line, then the image.
			m.imageRows = paneH - 1
			free -= paneH
		}
	}

	m.viewport.Width = m.width
	m.viewport.Height = max(free, 1)
	m.slider.SetBounds(compare.Bounds{Left: 0, Width: float64(m.width)})
}

// refresh pulls the latest snapshot and re-renders the conversation.
func (m *model) refresh() {
	m.state = m.engine.Snapshot()
	m.updatePlaceholder()
	m.layout()
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *model) updatePlaceholder() {
	switch {
	case !m.state.HasImage():
		m.textarea.Placeholder = "/image <path> or Ctrl+V to add a room photo"
	case m.mode == modeRefine:
		m.textarea.Placeholder = "Describe a change, e.g. make the rug navy blue"
	default:
		m.textarea.Placeholder = "Ask about your room..."
	}
}

// waitForOutcome resumes the UI when an accepted intent settles.
func waitForOutcome(ch <-chan core.Outcome) tea.Cmd {
	return func() tea.Msg {
		out, ok := <-ch
		if !ok {
			return outcomeMsg{Status: core.Failed, Err: fmt.Errorf("request abandoned")}
		}
		return outcomeMsg(out)
	}
}
