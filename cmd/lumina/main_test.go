package main

import (
	"bytes"
	"context"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yanmxa/lumina/internal/client"
	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/style"
)

func encodePNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func writeRoom(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, encodePNG(t, color.RGBA{R: 200, A: 255}), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunRedesign(t *testing.T) {
	src := filepath.Join(t.TempDir(), "room.png")
	writeRoom(t, src)

	styled := message.NewImage(encodePNG(t, color.RGBA{G: 200, A: 255}), "image/png")
	edited := message.NewImage(encodePNG(t, color.RGBA{B: 200, A: 255}), "image/png")
	gen := &client.FakeGenerator{Images: []message.Image{styled, edited}}
	chat := &client.FakeConverser{Replies: []string{"Try a jute rug."}}
	engine := core.New(core.Config{Images: gen, Chat: chat})

	var out bytes.Buffer
	res, err := runRedesign(context.Background(), engine, redesignRequest{
		Source: src,
		Style:  style.Boho,
		Edits:  []string{"add plants"},
		Ask:    "Which rug?",
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.CallCount() != 2 {
		t.Errorf("expected 2 generate calls, got %d", gen.CallCount())
	}
	if chat.CallCount() != 1 {
		t.Errorf("expected 1 converse call, got %d", chat.CallCount())
	}
	if len(res.Replies) != 3 {
		t.Fatalf("expected 3 replies, got %d: %v", len(res.Replies), res.Replies)
	}
	if res.Replies[0] != core.StyleReply(style.Boho) {
		t.Errorf("expected %q, got %q", core.StyleReply(style.Boho), res.Replies[0])
	}
	if res.Replies[2] != "Try a jute rug." {
		t.Errorf("expected %q, got %q", "Try a jute rug.", res.Replies[2])
	}
	if !strings.Contains(out.String(), "Try a jute rug.") {
		t.Errorf("expected reply in output, got %q", out.String())
	}

	img, ok := res.Image()
	if !ok {
		t.Fatal("expected a generated image")
	}
	if !bytes.Equal(img.Data, edited.Data) {
		t.Error("expected the edited image to be the result")
	}
}

func TestRunRedesignNothingToDo(t *testing.T) {
	engine := core.New(core.Config{Images: &client.FakeGenerator{}, Chat: &client.FakeConverser{}})
	_, err := runRedesign(context.Background(), engine, redesignRequest{Source: "room.png"}, &bytes.Buffer{})
	if !errors.Is(err, errNothingToDo) {
		t.Errorf("expected errNothingToDo, got %v", err)
	}
}

func TestRunRedesignErrors(t *testing.T) {
	quota := errors.New("quota exceeded")

	tests := []struct {
		name    string
		req     redesignRequest
		gen     *client.FakeGenerator
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown style",
			req:     redesignRequest{Style: "Gothic"},
			gen:     &client.FakeGenerator{},
			wantErr: core.ErrUnknownStyle,
		},
		{
			name:    "backend failure",
			req:     redesignRequest{Style: style.Modern},
			gen:     &client.FakeGenerator{ErrorAt: 1, ErrorValue: quota},
			wantErr: quota,
			wantMsg: core.MsgStyleFailed,
		},
		{
			name:    "edit failure",
			req:     redesignRequest{Style: style.Modern, Edits: []string{"paint it red"}},
			gen:     &client.FakeGenerator{ErrorAt: 2, ErrorValue: quota},
			wantErr: quota,
			wantMsg: core.MsgMessageFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "room.png")
			writeRoom(t, src)
			tt.req.Source = src

			engine := core.New(core.Config{Images: tt.gen, Chat: &client.FakeConverser{}})
			_, err := runRedesign(context.Background(), engine, tt.req, &bytes.Buffer{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error to contain %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestRunRedesignMissingFile(t *testing.T) {
	engine := core.New(core.Config{Images: &client.FakeGenerator{}, Chat: &client.FakeConverser{}})
	_, err := runRedesign(context.Background(), engine, redesignRequest{
		Source: filepath.Join(t.TempDir(), "missing.png"),
		Style:  style.Modern,
	}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("expected file not found error, got %v", err)
	}
}

func TestSaveResult(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "room.png")
	writeRoom(t, src)

	engine := core.New(core.Config{Images: &client.FakeGenerator{}, Chat: &client.FakeConverser{}})
	req := redesignRequest{Source: src, Style: style.Coastal}
	res, err := runRedesign(context.Background(), engine, req, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := saveResult(&out, req, res, filepath.Join(dir, "result")); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(dir, "result.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}
	if !strings.Contains(out.String(), "Saved "+want) {
		t.Errorf("expected save report, got %q", out.String())
	}
}

func TestSaveResultWithoutRedesign(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "room.png")
	writeRoom(t, src)

	engine := core.New(core.Config{Images: &client.FakeGenerator{}, Chat: &client.FakeConverser{Replies: []string{"Add a lamp."}}})
	req := redesignRequest{Source: src, Ask: "More light?"}
	res, err := runRedesign(context.Background(), engine, req, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := saveResult(&out, req, res, filepath.Join(dir, "result.png")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "result.png")); !os.IsNotExist(err) {
		t.Errorf("expected no file, got %v", err)
	}
}

func TestMatchImages(t *testing.T) {
	dir := t.TempDir()
	writeRoom(t, filepath.Join(dir, "b.png"))
	writeRoom(t, filepath.Join(dir, "nested", "a.png"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := matchImages(filepath.Join(dir, "**", "*"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{filepath.Join(dir, "b.png"), filepath.Join(dir, "nested", "a.png")}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("expected %q, got %q", want[i], files[i])
		}
	}

	if _, err := matchImages(filepath.Join(dir, "*.jpg")); err == nil {
		t.Error("expected error for empty match")
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "kitchen.png"), filepath.Join(dir, "den.png")}
	for _, f := range files {
		writeRoom(t, f)
	}
	outDir := filepath.Join(dir, "out")

	gen := &client.FakeGenerator{}
	cfg := core.Config{Images: gen, Chat: &client.FakeConverser{}}

	var out bytes.Buffer
	if err := runBatch(context.Background(), cfg, files, style.Coastal, outDir, 2, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"kitchen-coastal.png", "den-coastal.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if gen.CallCount() != 2 {
		t.Errorf("expected 2 generate calls, got %d", gen.CallCount())
	}
	if strings.Count(out.String(), "ok ") != 2 {
		t.Errorf("expected 2 ok lines, got %q", out.String())
	}
}

func TestRunBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}
	for _, f := range files {
		writeRoom(t, f)
	}

	gen := &client.FakeGenerator{ErrorAt: 1, ErrorValue: errors.New("boom")}
	cfg := core.Config{Images: gen, Chat: &client.FakeConverser{}}

	var out bytes.Buffer
	err := runBatch(context.Background(), cfg, files, style.Modern, filepath.Join(dir, "out"), 1, &out)
	if err == nil || err.Error() != "1 of 2 images failed" {
		t.Fatalf("expected %q, got %v", "1 of 2 images failed", err)
	}
	if !strings.Contains(out.String(), "FAIL "+files[0]) {
		t.Errorf("expected failure line for %s, got %q", files[0], out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "b-modern.png")); err != nil {
		t.Errorf("expected the second image to be written: %v", err)
	}
}

func TestRunBatchUnknownStyle(t *testing.T) {
	cfg := core.Config{Images: &client.FakeGenerator{}, Chat: &client.FakeConverser{}}
	err := runBatch(context.Background(), cfg, []string{"a.png"}, "Gothic", t.TempDir(), 1, &bytes.Buffer{})
	if !errors.Is(err, core.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestPrintStyles(t *testing.T) {
	var out bytes.Buffer
	printStyles(&out, style.NewCatalog())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 styles, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "  Modern ") {
		t.Errorf("expected Modern first, got %q", lines[0])
	}
	col := strings.Index(lines[0], "Clean lines")
	for _, line := range lines {
		if idx := strings.IndexFunc(line[col:], func(r rune) bool { return r != ' ' }); idx != 0 {
			t.Errorf("expected descriptions aligned at column %d, got %q", col, line)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "lumina version " + version + "\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}
