package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a slash command
type Command struct {
	Name        string
	Usage       string
	Description string
	Handler     CommandHandler
}

// CommandHandler handles a slash command. A returned error is shown as a notice.
type CommandHandler func(m *model, args string) (tea.Cmd, error)

// getCommandRegistry returns the command registry
func getCommandRegistry() map[string]Command {
	return map[string]Command{
		"image": {
			Name:        "image",
			Usage:       "/image <path>",
			Description: "Upload a room photo and start a new session",
			Handler:     handleImageCommand,
		},
		"paste": {
			Name:        "paste",
			Usage:       "/paste",
			Description: "Upload the image on the clipboard",
			Handler:     handlePasteCommand,
		},
		"style": {
			Name:        "style",
			Usage:       "/style [name]",
			Description: "Apply a design style, or open the style picker",
			Handler:     handleStyleCommand,
		},
		"styles": {
			Name:        "styles",
			Usage:       "/styles",
			Description: "Open the style picker",
			Handler:     handleStyleCommand,
		},
		"mode": {
			Name:        "mode",
			Usage:       "/mode [chat|refine]",
			Description: "Switch between advice and direct image edits",
			Handler:     handleModeCommand,
		},
		"save": {
			Name:        "save",
			Usage:       "/save [path]",
			Description: "Save the redesigned image",
			Handler:     handleSaveCommand,
		},
		"help": {
			Name:        "help",
			Usage:       "/help",
			Description: "Show keys and commands",
			Handler:     handleHelpCommand,
		},
		"quit": {
			Name:        "quit",
			Usage:       "/quit",
			Description: "Exit Lumina",
			Handler:     handleQuitCommand,
		},
	}
}

// sortedCommands returns the registry ordered by name.
func sortedCommands() []Command {
	registry := getCommandRegistry()
	cmds := make([]Command, 0, len(registry))
	for _, c := range registry {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// parseCommand splits "/name args" into name and args.
func parseCommand(input string) (name, args string) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	name, args, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(args)
}

func (m *model) runCommand(input string) tea.Cmd {
	name, args := parseCommand(input)
	cmd, ok := getCommandRegistry()[name]
	if !ok {
		m.notice = fmt.Sprintf("Unknown command: /%s (try /help)", name)
		m.layout()
		return nil
	}

	result, err := cmd.Handler(m, args)
	if err != nil {
		m.notice = err.Error()
		m.layout()
	}
	return result
}

func handleImageCommand(m *model, args string) (tea.Cmd, error) {
	if args == "" {
		return nil, fmt.Errorf("usage: /image <path>")
	}
	if err := m.uploadFile(args); err != nil {
		return nil, errors.New(describeError(err))
	}
	m.notice = ""
	m.refresh()
	return nil, nil
}

func handlePasteCommand(m *model, _ string) (tea.Cmd, error) {
	m.pasteClipboard()
	return nil, nil
}

func handleStyleCommand(m *model, args string) (tea.Cmd, error) {
	if args == "" {
		m.openStyleSelector()
		return nil, nil
	}
	return m.selectStyle(args), nil
}

func handleModeCommand(m *model, args string) (tea.Cmd, error) {
	switch strings.ToLower(args) {
	case "":
		m.toggleMode()
	case "chat":
		m.mode = modeChat
	case "refine", "edit":
		m.mode = modeRefine
	default:
		return nil, fmt.Errorf("unknown mode %q: use chat or refine", args)
	}
	m.updatePlaceholder()
	return nil, nil
}

func handleSaveCommand(m *model, args string) (tea.Cmd, error) {
	m.saveGenerated(args)
	return nil, nil
}

func handleHelpCommand(m *model, _ string) (tea.Cmd, error) {
	m.showHelp = true
	return nil, nil
}

func handleQuitCommand(m *model, _ string) (tea.Cmd, error) {
	m.slider.Close()
	return tea.Quit, nil
}
