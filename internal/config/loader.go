package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Loader handles loading and merging settings from multiple sources.
type Loader struct {
	// userDir is the user-level config directory (e.g., ~/.lumina)
	userDir string

	// projectDir is the project-level config directory (e.g., .lumina)
	projectDir string
}

// NewLoader creates a loader for ~/.lumina and ./.lumina.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		userDir:    filepath.Join(homeDir, ".lumina"),
		projectDir: ".lumina",
	}
}

// NewLoaderWithOptions creates a loader with custom directories.
func NewLoaderWithOptions(userDir, projectDir string) *Loader {
	return &Loader{
		userDir:    userDir,
		projectDir: projectDir,
	}
}

// Sources returns the settings files in priority order (lowest to highest).
func (l *Loader) Sources() []string {
	return []string{
		filepath.Join(l.userDir, "settings.json"),
		filepath.Join(l.projectDir, "settings.json"),
		filepath.Join(l.projectDir, "settings.local.json"),
	}
}

// Load loads and merges settings from all files. Missing files are skipped;
// a file that exists but does not parse is an error.
func (l *Loader) Load() (*Settings, error) {
	settings := NewSettings()

	for _, src := range l.Sources() {
		s, err := l.LoadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		settings = MergeSettings(settings, s)
	}

	return settings, nil
}

// LoadFile loads settings from a specific file.
func (l *Loader) LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &settings, nil
}

// GetUserDir returns the user config directory path.
func (l *Loader) GetUserDir() string {
	return l.userDir
}

// GetProjectDir returns the project config directory path.
func (l *Loader) GetProjectDir() string {
	return l.projectDir
}

// Load is a convenience function: default loader files, then environment.
func Load() (*Settings, error) {
	settings, err := NewLoader().Load()
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
