package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/yanmxa/lumina/internal/markup"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/session"
)

func createMarkdownRenderer(width int) *glamour.TermRenderer {
	wrapWidth := max(width-4, minWrapWidth)

	var compactStyle ansi.StyleConfig
	if isDarkBackground {
		compactStyle = styles.DarkStyleConfig
	} else {
		compactStyle = styles.LightStyleConfig
	}

	uintPtr := func(u uint) *uint { return &u }
	compactStyle.Document.Margin = uintPtr(0)
	compactStyle.Paragraph.Margin = uintPtr(0)
	compactStyle.CodeBlock.Margin = uintPtr(0)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStyles(compactStyle),
		glamour.WithWordWrap(wrapWidth),
	)
	return renderer
}

// helpMarkdown is static text, so rendering it as full markdown is safe.
// Conversation text goes through the markup subset instead.
func helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Lumina\n\n")
	sb.WriteString("Upload a photo of a room, pick a design style, then refine the result.\n\n")
	sb.WriteString("## Keys\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	sb.WriteString("| `Enter` | Send message |\n")
	sb.WriteString("| `Tab` | Toggle **Chat** (advice) and **Refine** (edit the image) |\n")
	sb.WriteString("| `Ctrl+S` | Choose a style |\n")
	sb.WriteString("| `Ctrl+V` | Paste an image from the clipboard |\n")
	sb.WriteString("| `Ctrl+O` | Save the redesign |\n")
	sb.WriteString("| `Shift+←/→` | Move the compare divider |\n")
	sb.WriteString("| `Ctrl+R` | Center the compare divider |\n")
	sb.WriteString("| `PgUp/PgDn` | Scroll the conversation |\n")
	sb.WriteString("| `Ctrl+C` | Quit |\n\n")
	sb.WriteString("Drag across the image with the mouse to reveal the original.\n\n")
	sb.WriteString("## Commands\n\n")
	for _, c := range sortedCommands() {
		fmt.Fprintf(&sb, "- `%s` %s\n", c.Usage, c.Description)
	}
	return sb.String()
}

func (m model) renderHelp() string {
	out := helpMarkdown()
	if m.mdRenderer != nil {
		if rendered, err := m.mdRenderer.Render(out); err == nil {
			out = rendered
		}
	}
	return out + "\n" + hintStyle.Render("  Esc to close")
}

func (m model) renderHeader() string {
	title := headerStyle.Render("✦ Lumina")
	sub := session.Title(m.state)
	if m.state.IsLoading {
		sub += " · " + m.spinner.View() + " working"
	}
	line := title + "  " + noticeStyle.Render(sub)
	return truncate(line, m.width)
}

// renderBanner returns the error or notice line, or "".
func (m model) renderBanner() string {
	switch {
	case m.state.Error != "":
		return truncate(errorStyle.Render("  ✖ "+m.state.Error), m.width)
	case m.notice != "":
		return truncate(noticeStyle.Render("  "+m.notice), m.width)
	}
	return ""
}

// renderStatus shows the input mode, the style strip and key hints.
func (m model) renderStatus() string {
	badge := chatModeStyle.Render(m.mode.String())
	if m.mode == modeRefine {
		badge = refineModeStyle.Render(m.mode.String())
	}

	var chips []string
	for _, name := range m.engine.Styles().Names() {
		if strings.EqualFold(name, m.state.SelectedStyle) {
			chips = append(chips, styleChipSelected.Render(name))
		} else {
			chips = append(chips, styleChipStyle.Render(name))
		}
	}

	line := badge + hintStyle.Render("  tab mode · ctrl+s style · F1 help  ") + strings.Join(chips, hintStyle.Render(" · "))
	return truncate(line, m.width)
}

func (m model) renderMessages() string {
	width := max(m.width-2, 10)

	if !m.state.HasImage() {
		return m.renderWelcome()
	}
	if len(m.state.History) == 0 {
		return m.renderEmptyHint()
	}

	var sb strings.Builder
	for i, msg := range m.state.History {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderChatMessage(msg, width))
		sb.WriteString("\n")
	}
	if m.state.IsLoading {
		sb.WriteString("\n" + m.spinner.View() + thinkingStyle.Render(" thinking..."))
	}
	return sb.String()
}

func renderChatMessage(msg message.ChatMessage, width int) string {
	wrap := lipgloss.NewStyle().Width(width - 2)
	text := sanitize(msg.Text)

	if msg.Role == message.RoleUser {
		var sb strings.Builder
		if msg.IsVisualUpdate {
			sb.WriteString("  " + visualBadgeStyle.Render(visualBadge) + "\n")
		}
		sb.WriteString(inputPromptStyle.Render("❯ ") + wrap.Render(textStyle.Render(text)))
		return sb.String()
	}

	body := markup.Render(markup.Parse(text),
		func(s string) string { return textStyle.Render(s) },
		func(s string) string { return boldStyle.Render(s) },
	)
	return aiPromptStyle.Render("✦ ") + wrap.Render(body)
}

func (m model) renderEmptyHint() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  " + noticeStyle.Render(emptyHint) + "\n\n")
	sb.WriteString("  " + hintStyle.Render("Chat:   \"Where can I find a rug like this?\"") + "\n")
	sb.WriteString("  " + hintStyle.Render("Refine: \"Make the walls sage green\"") + "\n")
	if m.state.GeneratedImage == nil {
		sb.WriteString("\n  " + hintStyle.Render("Or press Ctrl+S to restyle the whole room.") + "\n")
	}
	return sb.String()
}

func (m model) renderWelcome() string {
	gradient := []lipgloss.Color{
		CurrentTheme.Accent,
		CurrentTheme.AI,
		CurrentTheme.Primary,
	}

	logoLines := []string{
		"   ╻  ╻ ╻┏┳┓╻┏┓╻┏━┓",
		"   ┃  ┃ ┃┃┃┃┃┃┗┫┣━┫",
		"   ┗━╸┗━┛╹ ╹╹╹ ╹╹ ╹",
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for i, line := range logoLines {
		style := lipgloss.NewStyle().Foreground(gradient[i%len(gradient)])
		sb.WriteString(style.Render(line) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString("   " + noticeStyle.Render("Redesign your room with AI") + "\n\n")
	sb.WriteString("   " + hintStyle.Render("/image <path> to upload a photo · Ctrl+V to paste · F1 help") + "\n")
	return sb.String()
}

// sanitize drops control characters so message text cannot emit
// terminal escape sequences.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// truncate cuts a styled line to width cells, keeping escape sequences intact.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}
