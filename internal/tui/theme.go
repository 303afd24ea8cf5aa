package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds all color definitions for the UI
type Theme struct {
	// Base colors
	Muted     lipgloss.Color // muted text, placeholders
	Accent    lipgloss.Color // spinner, divider, highlights
	Primary   lipgloss.Color // user prompt, selection
	AI        lipgloss.Color // consultant replies
	Separator lipgloss.Color // separator lines

	// Text colors
	Text       lipgloss.Color // normal text
	TextDim    lipgloss.Color // dimmed text
	TextBright lipgloss.Color // bright/highlighted text

	// Semantic colors
	Success lipgloss.Color // refine mode, saved files
	Error   lipgloss.Color // error banner

	// UI element colors
	Border     lipgloss.Color // borders
	Background lipgloss.Color // backgrounds for badges/boxes
}

// DarkTheme is the color palette for dark terminals
var DarkTheme = Theme{
	Muted:     lipgloss.Color("#78716C"),
	Accent:    lipgloss.Color("#F59E0B"),
	Primary:   lipgloss.Color("#60A5FA"),
	AI:        lipgloss.Color("#A78BFA"),
	Separator: lipgloss.Color("#44403C"),

	Text:       lipgloss.Color("#E7E5E4"),
	TextDim:    lipgloss.Color("#A8A29E"),
	TextBright: lipgloss.Color("#FFFFFF"),

	Success: lipgloss.Color("#10B981"),
	Error:   lipgloss.Color("#EF4444"),

	Border:     lipgloss.Color("#57534E"),
	Background: lipgloss.Color("#292524"),
}

// LightTheme is the color palette for light terminals
var LightTheme = Theme{
	Muted:     lipgloss.Color("#78716C"),
	Accent:    lipgloss.Color("#D97706"),
	Primary:   lipgloss.Color("#2563EB"),
	AI:        lipgloss.Color("#7C3AED"),
	Separator: lipgloss.Color("#D6D3D1"),

	Text:       lipgloss.Color("#292524"),
	TextDim:    lipgloss.Color("#57534E"),
	TextBright: lipgloss.Color("#0C0A09"),

	Success: lipgloss.Color("#059669"),
	Error:   lipgloss.Color("#DC2626"),

	Border:     lipgloss.Color("#E7E5E4"),
	Background: lipgloss.Color("#F5F5F4"),
}

// CurrentTheme holds the active theme based on terminal background
var CurrentTheme Theme

// isDarkBackground caches the result of background detection
var isDarkBackground bool

func init() {
	isDarkBackground = lipgloss.HasDarkBackground()
	if isDarkBackground {
		CurrentTheme = DarkTheme
	} else {
		CurrentTheme = LightTheme
	}
}
