// Package image loads, validates, previews and saves room photos.
package image

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanmxa/lumina/internal/message"
)

const (
	// MaxImageSize is the maximum allowed image size (20MB)
	MaxImageSize = 20 * 1024 * 1024
)

// ErrNotImage is returned when content sniffing finds no image.
var ErrNotImage = errors.New("file is not a valid image")

// SupportedTypes maps file extensions to MIME types
var SupportedTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ImageInfo holds information about a loaded image
type ImageInfo struct {
	Path      string
	MediaType string
	Data      []byte
	Size      int
	FileName  string
}

// Load loads and validates an image from the given path
func Load(path string) (*ImageInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("image too large: %d bytes (max %d)", info.Size(), MaxImageSize)
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if _, ok := SupportedTypes[ext]; !ok {
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	img, err := FromBytes(data)
	if err != nil {
		return nil, err
	}

	return &ImageInfo{
		Path:      absPath,
		MediaType: img.MediaType,
		Data:      data,
		Size:      len(data),
		FileName:  filepath.Base(absPath),
	}, nil
}

// FromBytes validates an in-memory upload. The media type is taken from
// the content, not from any file name.
func FromBytes(data []byte) (message.Image, error) {
	if len(data) == 0 {
		return message.Image{}, ErrNotImage
	}
	if len(data) > MaxImageSize {
		return message.Image{}, fmt.Errorf("image too large: %d bytes (max %d)", len(data), MaxImageSize)
	}

	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return message.Image{}, ErrNotImage
	}
	return message.NewImage(data, detected), nil
}

// IsImageFile returns true if the file extension indicates a supported image format
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := SupportedTypes[ext]
	return ok
}

// ToMessage converts ImageInfo to a message.Image
func (i *ImageInfo) ToMessage() message.Image {
	return message.NewImage(i.Data, i.MediaType)
}

// FormatBytes formats byte size as human-readable string
func FormatBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
