// Package markup parses the restricted markdown subset used in chat messages.
//
// Only two constructs are recognised: bold spans delimited by "**" on a single
// line, and line breaks. Everything else, including HTML, is literal text, so a
// renderer consuming the tokens never interprets message text as markup.
package markup

import "strings"

// Kind identifies a token type.
type Kind int

const (
	Text Kind = iota
	Bold
	Break
)

func (k Kind) String() string {
	switch k {
	case Bold:
		return "bold"
	case Break:
		return "break"
	default:
		return "text"
	}
}

// Token is a single piece of parsed message text.
type Token struct {
	Kind Kind
	Text string
}

const boldDelim = "**"

// Parse splits text into text, bold and break tokens.
// A "**" without a closing partner on the same line is kept as literal text.
func Parse(s string) []Token {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var tokens []Token
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			tokens = append(tokens, Token{Kind: Break})
		}
		tokens = appendLine(tokens, line)
	}
	return tokens
}

func appendLine(tokens []Token, line string) []Token {
	for line != "" {
		open := strings.Index(line, boldDelim)
		if open < 0 {
			return appendText(tokens, line)
		}
		rest := line[open+len(boldDelim):]
		closeIdx := strings.Index(rest, boldDelim)
		if closeIdx < 0 {
			return appendText(tokens, line)
		}

		tokens = appendText(tokens, line[:open])
		if inner := rest[:closeIdx]; inner != "" {
			tokens = append(tokens, Token{Kind: Bold, Text: inner})
		}
		line = rest[closeIdx+len(boldDelim):]
	}
	return tokens
}

// appendText merges adjacent text so consumers see maximal runs.
func appendText(tokens []Token, s string) []Token {
	if s == "" {
		return tokens
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == Text {
		tokens[n-1].Text += s
		return tokens
	}
	return append(tokens, Token{Kind: Text, Text: s})
}

// Plain renders tokens without any styling, breaks as newlines.
func Plain(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Kind == Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Render walks tokens, styling bold runs with bold and plain runs with text.
func Render(tokens []Token, text, bold func(string) string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case Break:
			sb.WriteByte('\n')
		case Bold:
			sb.WriteString(bold(tok.Text))
		default:
			sb.WriteString(text(tok.Text))
		}
	}
	return sb.String()
}
