// Package config provides layered settings for Lumina.
// Settings are loaded from the following sources (lowest to highest priority):
//  1. ~/.lumina/settings.json (user level)
//  2. .lumina/settings.json (project level)
//  3. .lumina/settings.local.json (local level, not checked in)
//  4. LUMINA_* environment variables
package config

import (
	"fmt"
	"time"
)

const (
	DefaultImageProvider  = "google:api_key"
	DefaultChatProvider   = "google:api_key"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultServerAddr     = "127.0.0.1:8080"
)

// Settings represents the complete Lumina configuration.
type Settings struct {
	// ImageProvider is the registry key of the image backend (e.g., "openai:api_key")
	ImageProvider string `json:"imageProvider,omitempty" env:"LUMINA_IMAGE_PROVIDER" env-description:"image backend, provider:auth"`

	// ChatProvider is the registry key of the conversational backend
	ChatProvider string `json:"chatProvider,omitempty" env:"LUMINA_CHAT_PROVIDER" env-description:"chat backend, provider:auth"`

	// ImageModel overrides the provider's default image model
	ImageModel string `json:"imageModel,omitempty" env:"LUMINA_IMAGE_MODEL" env-description:"image model id"`

	// ChatModel overrides the provider's default chat model
	ChatModel string `json:"chatModel,omitempty" env:"LUMINA_CHAT_MODEL" env-description:"chat model id"`

	// RequestTimeout bounds each backend call, as a Go duration ("90s").
	// "0" disables the timeout; empty means DefaultRequestTimeout.
	RequestTimeout string `json:"requestTimeout,omitempty" env:"LUMINA_TIMEOUT" env-description:"backend call timeout, 0 disables"`

	// ServerAddr is the listen address of `lumina serve`
	ServerAddr string `json:"serverAddr,omitempty" env:"LUMINA_ADDR" env-description:"web listen address"`

	// StylesFile is a YAML file of custom styles added to the catalog
	StylesFile string `json:"stylesFile,omitempty"`
}

// NewSettings creates a new Settings instance with default values
func NewSettings() *Settings {
	return &Settings{
		ImageProvider: DefaultImageProvider,
		ChatProvider:  DefaultChatProvider,
		ServerAddr:    DefaultServerAddr,
	}
}

// Timeout parses RequestTimeout.
func (s *Settings) Timeout() (time.Duration, error) {
	if s.RequestTimeout == "" {
		return DefaultRequestTimeout, nil
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid requestTimeout %q: %w", s.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid requestTimeout %q: negative", s.RequestTimeout)
	}
	return d, nil
}
