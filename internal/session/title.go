package session

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the maximum length for a session title
	MaxTitleLength = 60
)

// Title describes a session for headers and file names: the selected style,
// else the first user request, else a placeholder.
func Title(s State) string {
	if s.SelectedStyle != "" {
		return s.SelectedStyle + " redesign"
	}
	for _, msg := range s.History {
		if msg.Role == "user" && strings.TrimSpace(msg.Text) != "" {
			return truncateTitle(msg.Text)
		}
	}
	if s.HasImage() {
		return "New room"
	}
	return "Untitled Session"
}

// truncateTitle truncates to MaxTitleLength runes, preferring a word boundary.
func truncateTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}

	runes := []rune(s)
	truncated := string(runes[:MaxTitleLength])

	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > MaxTitleLength/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}
