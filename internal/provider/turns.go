package provider

import "github.com/yanmxa/lumina/internal/message"

// CollapseTurns merges consecutive turns of the same role, joining their text
// with a blank line. Failed calls can leave two user turns in a row, which
// some backends reject.
func CollapseTurns(turns []message.Turn) []message.Turn {
	out := make([]message.Turn, 0, len(turns))
	for _, t := range turns {
		if n := len(out); n > 0 && out[n-1].Role == t.Role {
			out[n-1].Text += "\n\n" + t.Text
			continue
		}
		out = append(out, t)
	}
	return out
}
