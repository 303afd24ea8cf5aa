// Package web serves the session engine over HTTP/JSON, with a websocket
// that streams state snapshots.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/log"
)

// Server exposes one engine, and so one session, to every client.
type Server struct {
	engine *core.Engine

	// ctx bounds the backend calls started by requests. Request contexts
	// end when the handler returns, long before the call does.
	ctx context.Context
}

// New creates a server. Cancelling ctx cancels outstanding backend calls.
func New(ctx context.Context, engine *core.Engine) *Server {
	return &Server{engine: engine, ctx: ctx}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.GetState)
		r.Get("/styles", s.GetStyles)
		r.Get("/images/{which}", s.GetImage)
		r.Get("/events", s.Events)
		r.Post("/image", s.PostImage)
		r.Post("/style", s.PostStyle)
		r.Post("/messages", s.PostMessage)
	})
	return r
}

// requestLogger logs each request to the debug log.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Logger().Debug("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.LogError("web: encode response", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// statusFor maps a rejected intent to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, core.ErrNoImage):
		return http.StatusPreconditionFailed
	case errors.Is(err, core.ErrEmptyImage),
		errors.Is(err, core.ErrEmptyMessage),
		errors.Is(err, core.ErrUnknownStyle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
