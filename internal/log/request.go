package log

import (
	"fmt"
	"strings"

	"github.com/yanmxa/lumina/internal/provider"
)

// LogGenerate logs an image generation request and returns its call number
func LogGenerate(providerName string, opts provider.GenerateOptions) int {
	call := NextCall()
	writeDevGenerate(providerName, opts, call)

	if !enabled {
		return call
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "───────────────────── %s ─────────────────────\n", GetCallPrefix(call))
	fmt.Fprintf(&sb, ">>> [%s] generate %s | source=%s %d bytes\n", providerName, opts.Model, opts.Source.MediaType, opts.Source.Size())
	fmt.Fprintf(&sb, "    Prompt: %s", escapeForLog(opts.Prompt))

	logger.Info(sb.String())
	return call
}

// LogConverse logs a conversational request and returns its call number
func LogConverse(providerName string, opts provider.ConverseOptions) int {
	call := NextCall()
	writeDevConverse(providerName, opts, call)

	if !enabled {
		return call
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "───────────────────── %s ─────────────────────\n", GetCallPrefix(call))
	fmt.Fprintf(&sb, ">>> [%s] converse %s\n", providerName, opts.Model)
	if opts.SystemPrompt != "" {
		fmt.Fprintf(&sb, "    System: %s\n", escapeForLog(opts.SystemPrompt))
	}
	if opts.ContextImage != nil {
		fmt.Fprintf(&sb, "    Image: %s %d bytes\n", opts.ContextImage.MediaType, opts.ContextImage.Size())
	}
	fmt.Fprintf(&sb, "    History(%d):\n", len(opts.History))
	for i, turn := range opts.History {
		fmt.Fprintf(&sb, "      [%d] %s: %s\n", i, turn.Role, escapeForLog(turn.Text))
	}
	fmt.Fprintf(&sb, "    User: %s", escapeForLog(opts.UserText))

	logger.Info(sb.String())
	return call
}
