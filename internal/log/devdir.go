package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/provider"
)

// DevImage describes an image without its payload
type DevImage struct {
	MediaType string `json:"media_type"`
	Bytes     int    `json:"bytes"`
}

func devImage(img *message.Image) *DevImage {
	if img == nil {
		return nil
	}
	return &DevImage{MediaType: img.MediaType, Bytes: img.Size()}
}

// DevRequest represents the request data saved to JSON file
type DevRequest struct {
	Call         int            `json:"call"`
	Timestamp    time.Time      `json:"timestamp"`
	Provider     string         `json:"provider"`
	Kind         string         `json:"kind"`
	Model        string         `json:"model"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Prompt       string         `json:"prompt"`
	History      []message.Turn `json:"history,omitempty"`
	Image        *DevImage      `json:"image,omitempty"`
}

// DevResponse represents the response data saved to JSON file
type DevResponse struct {
	Call      int       `json:"call"`
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"`
	Text      string    `json:"text,omitempty"`
	Image     *DevImage `json:"image,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func writeDevGenerate(providerName string, opts provider.GenerateOptions, call int) {
	if !devEnabled {
		return
	}
	src := opts.Source
	writeJSON(devPath(call, "request"), DevRequest{
		Call:      call,
		Timestamp: time.Now().UTC(),
		Provider:  providerName,
		Kind:      "generate",
		Model:     opts.Model,
		Prompt:    opts.Prompt,
		Image:     devImage(&src),
	})
}

func writeDevConverse(providerName string, opts provider.ConverseOptions, call int) {
	if !devEnabled {
		return
	}
	writeJSON(devPath(call, "request"), DevRequest{
		Call:         call,
		Timestamp:    time.Now().UTC(),
		Provider:     providerName,
		Kind:         "converse",
		Model:        opts.Model,
		SystemPrompt: opts.SystemPrompt,
		Prompt:       opts.UserText,
		History:      opts.History,
		Image:        devImage(opts.ContextImage),
	})
}

func writeDevResult(providerName string, call int, text string, img *message.Image, errMsg string) {
	if !devEnabled {
		return
	}
	writeJSON(devPath(call, "response"), DevResponse{
		Call:      call,
		Timestamp: time.Now().UTC(),
		Provider:  providerName,
		Text:      text,
		Image:     devImage(img),
		Error:     errMsg,
	})
}

// WriteDevError records a failed call in DEV_DIR
func WriteDevError(providerName string, call int, err error) {
	writeDevResult(providerName, call, "", nil, err.Error())
}

func devPath(call int, kind string) string {
	return filepath.Join(devDir, GetCallPrefix(call)+"-"+kind+".json")
}

func writeJSON(filename string, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filename, jsonData, 0644)
}
