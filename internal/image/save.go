package image

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanmxa/lumina/internal/message"
)

// Save writes img to path, creating parent directories. A path without an
// extension gets one matching the media type. It returns the written path.
func Save(path string, img message.Image) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("nothing to save")
	}
	if filepath.Ext(path) == "" {
		path += img.Extension()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// OutputName derives a file name for a redesign of src in style.
// Example: living-room.jpg + "Mid-Century Modern" -> living-room-mid-century-modern.png
func OutputName(src, style string, img message.Image) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	slug := strings.ToLower(strings.Join(strings.Fields(style), "-"))
	if slug == "" {
		slug = "redesign"
	}
	return base + "-" + slug + img.Extension()
}
