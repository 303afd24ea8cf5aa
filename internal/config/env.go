package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// ApplyEnv overrides settings with any LUMINA_* variables that are set.
// Unset variables leave the loaded values alone.
func ApplyEnv(s *Settings) error {
	if err := cleanenv.ReadEnv(s); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// EnvHelp describes the supported environment variables.
func EnvHelp() string {
	help, err := cleanenv.GetDescription(&Settings{}, nil)
	if err != nil {
		return ""
	}
	return help
}
