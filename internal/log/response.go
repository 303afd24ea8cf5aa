package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/yanmxa/lumina/internal/message"
)

// LogResult logs a completed backend call. img is nil for text replies.
func LogResult(providerName string, call int, text string, img *message.Image, elapsed time.Duration) {
	writeDevResult(providerName, call, text, img, "")

	if !enabled {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<<< [%s] %s %s", GetCallPrefix(call), providerName, elapsed.Round(time.Millisecond))
	if img != nil {
		fmt.Fprintf(&sb, " | image=%s %d bytes", img.MediaType, img.Size())
	}
	if text != "" {
		sb.WriteString("\n    Text:")
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintf(&sb, "\n        %s", line)
		}
	}

	logger.Info(sb.String())
}

// LogError logs an error in human-readable format
func LogError(context string, err error) {
	if !enabled {
		return
	}
	logger.Error(fmt.Sprintf("!!! ERROR [%s] %v", context, err))
}
