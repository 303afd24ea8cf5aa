package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanmxa/lumina/internal/client"
	"github.com/yanmxa/lumina/internal/config"
	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/style"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadCatalog returns the built-in styles plus those in the configured file.
func loadCatalog(settings *config.Settings) (*style.Catalog, error) {
	catalog := style.NewCatalog()
	if settings.StylesFile != "" {
		if err := catalog.LoadFile(settings.StylesFile); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// engineConfig resolves settings into an engine configuration.
func engineConfig(ctx context.Context, settings *config.Settings) (core.Config, error) {
	timeout, err := settings.Timeout()
	if err != nil {
		return core.Config{}, err
	}

	catalog, err := loadCatalog(settings)
	if err != nil {
		return core.Config{}, err
	}

	images, err := client.NewGenerator(ctx, settings.ImageProvider, settings.ImageModel)
	if err != nil {
		return core.Config{}, err
	}
	chat, err := client.NewConverser(ctx, settings.ChatProvider, settings.ChatModel, core.ConsultantPrompt)
	if err != nil {
		return core.Config{}, err
	}

	return core.Config{
		Images:         images,
		Chat:           chat,
		Styles:         catalog,
		RequestTimeout: timeout,
	}, nil
}

func loadSettings() (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// newEngine loads configuration and builds an engine with an empty session.
func newEngine(ctx context.Context) (*core.Engine, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	cfg, err := engineConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	return core.New(cfg), nil
}
