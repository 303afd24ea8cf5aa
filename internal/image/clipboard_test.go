package image

import (
	"errors"
	"testing"
)

func TestFromClipboard(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantOK  bool
		wantErr error
	}{
		{"empty", nil, false, nil},
		{"png", encodePNG(t, 2, 2), true, nil},
		{"text", []byte("not an image at all"), false, ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, ok, err := fromClipboard(tt.data)
			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if ok && img.MediaType != "image/png" {
				t.Errorf("expected %q, got %q", "image/png", img.MediaType)
			}
		})
	}
}
