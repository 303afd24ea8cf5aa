package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodePNG returns a w x h PNG: red on the left half, blue on the right.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= w/2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"screenshot.png", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"animation.gif", true},
		{"modern.webp", true},
		{"document.md", false},
		{"code.go", false},
		{"data.json", false},
		{"PHOTO.PNG", true}, // Case insensitive
		{"Image.JPEG", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := IsImageFile(tt.path)
			if result != tt.expected {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	// Create a temp file with unsupported extension
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(tmpFile, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int
		expected string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5242880, "5.0 MB"},
		{MaxImageSize, "20.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatBytes(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestSupportedTypes(t *testing.T) {
	// Verify all expected types are supported
	expectedTypes := map[string]string{
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".webp": "image/webp",
		".gif":  "image/gif",
	}

	for ext, mimeType := range expectedTypes {
		if SupportedTypes[ext] != mimeType {
			t.Errorf("SupportedTypes[%q] = %q, want %q", ext, SupportedTypes[ext], mimeType)
		}
	}
}

func TestLoadDetectsContentType(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "room.jpg")
	if err := os.WriteFile(path, encodePNG(t, 2, 2), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if info.MediaType != "image/png" {
		t.Errorf("expected sniffed media type image/png, got %q", info.MediaType)
	}
	if info.FileName != "room.jpg" || info.Size != len(info.Data) {
		t.Errorf("unexpected info %+v", info)
	}
	if info.ToMessage().MediaType != "image/png" {
		t.Error("expected message image to carry media type")
	}
}

func TestLoad_NotAnImage(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fake.png")
	if err := os.WriteFile(path, []byte("plain text pretending"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for non-image content")
	}
}

func TestFromBytes(t *testing.T) {
	if _, err := FromBytes(nil); err != ErrNotImage {
		t.Errorf("expected ErrNotImage for empty data, got %v", err)
	}
	if _, err := FromBytes([]byte("<html></html>")); err != ErrNotImage {
		t.Errorf("expected ErrNotImage for html, got %v", err)
	}
	img, err := FromBytes(encodePNG(t, 1, 1))
	if err != nil || img.MediaType != "image/png" {
		t.Errorf("expected png, got %q, %v", img.MediaType, err)
	}
}
