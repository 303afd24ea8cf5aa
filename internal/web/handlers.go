package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/image"
	"github.com/yanmxa/lumina/internal/session"
)

// StateView is the JSON form of a session. Image payloads are fetched
// separately from /api/images/{which}.
type StateView struct {
	session.State
	Title      string `json:"title"`
	CanCompare bool   `json:"canCompare"`
}

func newStateView(s session.State) StateView {
	return StateView{State: s, Title: session.Title(s), CanCompare: s.CanCompare()}
}

type styleRequest struct {
	Style string `json:"style"`
}

type messageRequest struct {
	Text       string `json:"text"`
	VisualEdit bool   `json:"visualEdit"`
}

// GetState returns the current snapshot.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, newStateView(s.engine.Snapshot()))
}

// GetStyles returns the style catalog.
func (s *Server) GetStyles(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.engine.Styles().Styles())
}

// GetImage returns the original or generated image bytes.
func (s *Server) GetImage(w http.ResponseWriter, r *http.Request) {
	state := s.engine.Snapshot()

	img := state.OriginalImage
	switch chi.URLParam(r, "which") {
	case "original":
	case "generated":
		img = state.GeneratedImage
	default:
		Error(w, http.StatusNotFound, "unknown image")
		return
	}
	if img == nil || img.Empty() {
		Error(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", img.MediaType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// PostImage starts a new session from a raw image body or a multipart
// "image" field.
func (s *Server) PostImage(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := image.FromBytes(data)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.Upload(img); err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}
	JSON(w, http.StatusCreated, newStateView(s.engine.Snapshot()))
}

// PostStyle regenerates the room in a style.
func (s *Server) PostStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ch, err := s.engine.SelectStyle(s.ctx, req.Style)
	s.respond(w, r, ch, err)
}

// PostMessage sends a chat message or a visual edit request.
func (s *Server) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ch, err := s.engine.SendMessage(s.ctx, req.Text, req.VisualEdit)
	s.respond(w, r, ch, err)
}

// respond answers an accepted intent with 202 and the loading snapshot, or
// with ?wait=true blocks for the outcome. A failed outcome is 502.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, ch <-chan core.Outcome, err error) {
	if err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}

	if r.URL.Query().Get("wait") != "true" {
		JSON(w, http.StatusAccepted, newStateView(s.engine.Snapshot()))
		return
	}

	select {
	case out := <-ch:
		status := http.StatusOK
		if out.Status == core.Failed {
			status = http.StatusBadGateway
		}
		JSON(w, status, newStateView(out.State))
	case <-r.Context().Done():
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(image.MaxImageSize); err != nil {
			return nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, errors.New("missing \"image\" field")
		}
		defer file.Close()
		return readLimited(file)
	}
	return readLimited(r.Body)
}

func readLimited(rd io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, image.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > image.MaxImageSize {
		return nil, fmt.Errorf("image too large (max %s)", image.FormatBytes(image.MaxImageSize))
	}
	return data, nil
}
