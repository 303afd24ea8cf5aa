package moonshot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yanmxa/lumina/internal/provider"
)

type captureTransport struct {
	body []byte
	host string
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		t.body = b
	}
	t.host = req.URL.Host

	respBody := `{"id":"1","object":"chat.completion","created":0,"model":"kimi","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ok"}}]}`
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(respBody)),
		Request:    req,
	}, nil
}

func TestMoonshotDefaultsToVisionModel(t *testing.T) {
	transport := &captureTransport{}
	client := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL("https://moonshot.example.com/v1"),
		option.WithHTTPClient(&http.Client{Transport: transport}),
	)

	c := NewClient(client, "moonshot:test")
	reply, err := c.Converse(context.Background(), provider.ConverseOptions{UserText: "hi"})
	if err != nil {
		t.Fatalf("Converse() error: %v", err)
	}
	if reply != "ok" {
		t.Errorf("expected %q, got %q", "ok", reply)
	}
	if transport.host != "moonshot.example.com" {
		t.Errorf("expected request to custom base URL, got host %q", transport.host)
	}

	var payload map[string]any
	if err := json.Unmarshal(transport.body, &payload); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if payload["model"] != DefaultChatModel {
		t.Errorf("expected model %q, got %v", DefaultChatModel, payload["model"])
	}
}

func TestMoonshotIsChatOnly(t *testing.T) {
	var b provider.Backend = NewClient(openai.NewClient(option.WithAPIKey("test")), "moonshot:test")
	if _, ok := b.(provider.ImageGenerator); ok {
		t.Error("expected moonshot not to generate images")
	}
	if !APIKeyMeta.Supports(provider.CapChat) || APIKeyMeta.Supports(provider.CapImage) {
		t.Errorf("unexpected capabilities %v", APIKeyMeta.Capabilities)
	}
}
