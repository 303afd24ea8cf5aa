package image

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yanmxa/lumina/internal/message"
)

const clipboardTimeout = 3 * time.Second

// clipboardReader returns raw clipboard bytes, or nil when it holds no image.
type clipboardReader func(ctx context.Context) ([]byte, error)

var clipboardReaders = map[string][]clipboardReader{
	"darwin": {readOSAScript},
	"linux": {
		execReader("xclip", "-selection", "clipboard", "-t", "image/png", "-o"),
		execReader("wl-paste", "--type", "image/png"),
	},
}

// ReadClipboard returns the image on the system clipboard. ok is false
// when the clipboard holds no image.
func ReadClipboard(ctx context.Context) (img message.Image, ok bool, err error) {
	readers, supported := clipboardReaders[runtime.GOOS]
	if !supported {
		return message.Image{}, false, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}

	ctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	for _, read := range readers {
		data, err := read(ctx)
		if err != nil || len(data) == 0 {
			continue
		}
		return fromClipboard(data)
	}
	return message.Image{}, false, nil
}

func fromClipboard(data []byte) (message.Image, bool, error) {
	if len(data) == 0 {
		return message.Image{}, false, nil
	}
	img, err := FromBytes(data)
	if err != nil {
		return message.Image{}, false, fmt.Errorf("clipboard: %w", err)
	}
	return img, true, nil
}

func execReader(name string, args ...string) clipboardReader {
	return func(ctx context.Context) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}
}

// readOSAScript has AppleScript write the PNG flavour to a temp file.
func readOSAScript(ctx context.Context) ([]byte, error) {
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("lumina_clipboard_%d.png", time.Now().UnixNano()))
	defer os.Remove(tmpFile)

	script := fmt.Sprintf(`
		set theFile to POSIX file "%s"
		try
			set imgData to the clipboard as «class PNGf»
			set fileRef to open for access theFile with write permission
			write imgData to fileRef
			close access fileRef
			return "ok"
		on error
			return "no image"
		end try
	`, tmpFile)

	output, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	if strings.TrimSpace(string(output)) == "no image" {
		return nil, nil
	}
	return os.ReadFile(tmpFile)
}
