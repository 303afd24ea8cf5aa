package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yanmxa/lumina/internal/style"
)

// StyleSelectedMsg is sent when a style is picked
type StyleSelectedMsg struct {
	Name string
}

// StyleSelectorCancelledMsg is sent when the style selector is closed without a pick
type StyleSelectorCancelledMsg struct{}

// StyleSelectorState holds state for the style picker
type StyleSelectorState struct {
	active       bool
	styles       []style.Style
	filtered     []style.Style
	selectedIdx  int
	width        int
	height       int
	searchQuery  string
	scrollOffset int
	maxVisible   int
	currentStyle string
}

// NewStyleSelectorState creates a new StyleSelectorState
func NewStyleSelectorState() StyleSelectorState {
	return StyleSelectorState{maxVisible: 8}
}

// Enter opens the picker with the cursor on current, if present.
func (s *StyleSelectorState) Enter(catalog *style.Catalog, current string, width, height int) {
	s.styles = catalog.Styles()
	s.filtered = s.styles
	s.active = true
	s.selectedIdx = 0
	s.scrollOffset = 0
	s.searchQuery = ""
	s.width = width
	s.height = height
	s.currentStyle = current

	for i, st := range s.filtered {
		if strings.EqualFold(st.Name, current) {
			s.selectedIdx = i
			s.ensureVisible()
			break
		}
	}
}

// IsActive returns whether the selector is active
func (s *StyleSelectorState) IsActive() bool {
	return s.active
}

// Cancel closes the selector
func (s *StyleSelectorState) Cancel() {
	s.active = false
	s.filtered = nil
	s.selectedIdx = 0
	s.scrollOffset = 0
	s.searchQuery = ""
}

// MoveUp moves the selection up
func (s *StyleSelectorState) MoveUp() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
		s.ensureVisible()
	}
}

// MoveDown moves the selection down
func (s *StyleSelectorState) MoveDown() {
	if s.selectedIdx < len(s.filtered)-1 {
		s.selectedIdx++
		s.ensureVisible()
	}
}

// Selected returns the highlighted style
func (s *StyleSelectorState) Selected() (style.Style, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.filtered) {
		return style.Style{}, false
	}
	return s.filtered[s.selectedIdx], true
}

func (s *StyleSelectorState) ensureVisible() {
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+s.maxVisible {
		s.scrollOffset = s.selectedIdx - s.maxVisible + 1
	}
}

// updateFilter narrows the list to styles whose name or description
// contains the query characters in order.
func (s *StyleSelectorState) updateFilter() {
	if s.searchQuery == "" {
		s.filtered = s.styles
	} else {
		query := strings.ToLower(s.searchQuery)
		s.filtered = make([]style.Style, 0)
		for _, st := range s.styles {
			if fuzzyMatch(strings.ToLower(st.Name), query) ||
				fuzzyMatch(strings.ToLower(st.Description), query) {
				s.filtered = append(s.filtered, st)
			}
		}
	}
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// HandleKeypress handles a keypress and returns a command if needed
func (s *StyleSelectorState) HandleKeypress(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		s.MoveUp()
		return nil
	case tea.KeyDown, tea.KeyCtrlN:
		s.MoveDown()
		return nil
	case tea.KeyEnter:
		selected, ok := s.Selected()
		if !ok {
			return nil
		}
		s.Cancel()
		return func() tea.Msg {
			return StyleSelectedMsg{Name: selected.Name}
		}
	case tea.KeyEsc:
		if s.searchQuery != "" {
			s.searchQuery = ""
			s.updateFilter()
			return nil
		}
		s.Cancel()
		return func() tea.Msg {
			return StyleSelectorCancelledMsg{}
		}
	case tea.KeyBackspace:
		if len(s.searchQuery) > 0 {
			runes := []rune(s.searchQuery)
			s.searchQuery = string(runes[:len(runes)-1])
			s.updateFilter()
		}
		return nil
	case tea.KeyRunes:
		if s.searchQuery == "" {
			switch key.String() {
			case "j":
				s.MoveDown()
				return nil
			case "k":
				s.MoveUp()
				return nil
			}
		}
		s.searchQuery += string(key.Runes)
		s.updateFilter()
		return nil
	}
	return nil
}

func calculateBoxWidth(screenWidth int) int {
	boxWidth := screenWidth - 8
	return max(40, min(boxWidth, 72))
}

// Render renders the style selector
func (s *StyleSelectorState) Render() string {
	if !s.active {
		return ""
	}

	var sb strings.Builder

	title := fmt.Sprintf("Choose a Style (%d/%d)", len(s.filtered), len(s.styles))
	sb.WriteString(selectorTitleStyle.Render(title))
	sb.WriteString("\n")

	if s.searchQuery == "" {
		sb.WriteString(selectorHintStyle.Render("Type to filter..."))
	} else {
		sb.WriteString(noticeStyle.Render("/ " + s.searchQuery + "▏"))
	}
	sb.WriteString("\n\n")

	boxWidth := calculateBoxWidth(s.width)
	// border + padding + item padding + cursor + name column
	maxDescLen := max(boxWidth-42, 12)

	if len(s.filtered) == 0 {
		sb.WriteString(selectorHintStyle.Render("  No styles match the filter"))
		sb.WriteString("\n")
	} else {
		endIdx := min(s.scrollOffset+s.maxVisible, len(s.filtered))

		if s.scrollOffset > 0 {
			sb.WriteString(selectorDescStyle.Render("  ↑ more above"))
			sb.WriteString("\n")
		}

		for i := s.scrollOffset; i < endIdx; i++ {
			st := s.filtered[i]

			marker := " "
			if strings.EqualFold(st.Name, s.currentStyle) {
				marker = "●"
			}
			name := runewidth.FillRight(runewidth.Truncate(st.Name, 20, "…"), 20)
			desc := runewidth.Truncate(st.Description, maxDescLen, "…")
			line := fmt.Sprintf("%s %s  %s", marker, name, selectorDescStyle.Render(desc))

			if i == s.selectedIdx {
				sb.WriteString(selectorSelectedStyle.Render("> " + line))
			} else {
				sb.WriteString(selectorItemStyle.Render("  " + line))
			}
			sb.WriteString("\n")
		}

		if endIdx < len(s.filtered) {
			sb.WriteString(selectorDescStyle.Render("  ↓ more below"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(selectorHintStyle.Render("↑/↓ navigate · Enter apply · Esc cancel"))

	box := selectorBorderStyle.Width(boxWidth).Render(sb.String())
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}

// fuzzyMatch reports whether pattern's characters appear in str in order.
func fuzzyMatch(str, pattern string) bool {
	pi := 0
	for si := 0; si < len(str) && pi < len(pattern); si++ {
		if str[si] == pattern[pi] {
			pi++
		}
	}
	return pi == len(pattern)
}
