package tui

import "github.com/charmbracelet/lipgloss"

// Message styles
var (
	inputPromptStyle lipgloss.Style
	aiPromptStyle    lipgloss.Style
	separatorStyle   lipgloss.Style
	thinkingStyle    lipgloss.Style
	boldStyle        lipgloss.Style
	textStyle        lipgloss.Style
	visualBadgeStyle lipgloss.Style
	hintStyle        lipgloss.Style
	errorStyle       lipgloss.Style
	noticeStyle      lipgloss.Style
)

// Chrome styles
var (
	headerStyle       lipgloss.Style
	chatModeStyle     lipgloss.Style
	refineModeStyle   lipgloss.Style
	styleChipStyle    lipgloss.Style
	styleChipSelected lipgloss.Style
	compareLabelStyle lipgloss.Style
	overlayStyle      lipgloss.Style
)

// Selector styles
var (
	selectorBorderStyle   lipgloss.Style
	selectorTitleStyle    lipgloss.Style
	selectorItemStyle     lipgloss.Style
	selectorSelectedStyle lipgloss.Style
	selectorHintStyle     lipgloss.Style
	selectorDescStyle     lipgloss.Style
)

func init() {
	inputPromptStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Primary).
		Bold(true)

	aiPromptStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.AI).
		Bold(true)

	separatorStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(CurrentTheme.Separator)

	thinkingStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Accent)

	boldStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Bold(true)

	textStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Text)

	visualBadgeStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Background).
		Background(CurrentTheme.Success).
		Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted)

	errorStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Error).
		Bold(true)

	noticeStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextDim)

	headerStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Accent).
		Bold(true)

	chatModeStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Background).
		Background(CurrentTheme.Primary).
		Bold(true).
		Padding(0, 1)

	refineModeStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Background).
		Background(CurrentTheme.Success).
		Bold(true).
		Padding(0, 1)

	styleChipStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextDim)

	styleChipSelected = lipgloss.NewStyle().
		Foreground(CurrentTheme.Accent).
		Bold(true).
		Underline(true)

	compareLabelStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Background(CurrentTheme.Background).
		Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Background(CurrentTheme.Background).
		Bold(true).
		Padding(0, 2)

	selectorBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Primary).
		Padding(1, 2)

	selectorTitleStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Primary).
		Bold(true)

	selectorItemStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted).
		PaddingLeft(2)

	selectorSelectedStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.TextBright).
		Bold(true).
		PaddingLeft(2)

	selectorHintStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted).
		MarginTop(1)

	selectorDescStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Muted)
}
