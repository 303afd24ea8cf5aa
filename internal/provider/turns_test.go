package provider

import (
	"testing"

	"github.com/yanmxa/lumina/internal/message"
)

func TestCollapseTurns(t *testing.T) {
	in := []message.Turn{
		{Role: message.RoleModel, Text: "styled"},
		{Role: message.RoleUser, Text: "a"},
		{Role: message.RoleUser, Text: "b"},
		{Role: message.RoleModel, Text: "c"},
	}

	out := CollapseTurns(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(out))
	}
	if out[1].Text != "a\n\nb" {
		t.Errorf("expected merged user text, got %q", out[1].Text)
	}
	if in[1].Text != "a" {
		t.Error("expected input not to be modified")
	}
	if len(CollapseTurns(nil)) != 0 {
		t.Error("expected empty result for nil input")
	}
}
