// Package http exposes an Editor over a chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/glyphgrid"
	"github.com/aretw0/glyphgrid/internal/logging"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/tools"
	"github.com/aretw0/glyphgrid/pkg/view"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Editor is the part of glyphgrid.Editor the server needs.
type Editor interface {
	Start(ctx context.Context, sessionID string) (workspace.State, error)
	State(ctx context.Context, sessionID string) (workspace.State, error)
	Dispatch(ctx context.Context, sessionID string, actions ...action.Action) (workspace.State, error)
	Pointer(ctx context.Context, sessionID string, ev tools.PointerEvent) (workspace.State, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

var _ Editor = (*glyphgrid.Editor)(nil)

// Server serves the editor API.
type Server struct {
	Editor  Editor
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(editor Editor, opts ...Option) http.Handler {
	s := &Server{
		Editor:  editor,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", s.StartSession)
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/dispatch", s.Dispatch)
			r.Post("/pointer", s.Pointer)
			r.Get("/history", s.GetHistory)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/scenes/{sceneID}/composite", s.GetComposite)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "glyphgrid-http",
		"version": glyphgrid.Version,
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Editor.List(r.Context())
	if err != nil {
		s.writeError(w, "list", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// StartSession handles POST /sessions/{id}. An existing session is returned as is.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := s.Editor.Start(r.Context(), id)
	if err != nil {
		s.writeError(w, "start", err)
		return
	}
	s.writeJSON(w, http.StatusOK, view.FromState(id, state))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := s.Editor.State(r.Context(), id)
	if err != nil {
		s.writeError(w, "get", err)
		return
	}
	s.writeJSON(w, http.StatusOK, view.FromState(id, state))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Editor.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dispatch handles POST /sessions/{id}/dispatch. The body is one action
// object or an array of them, applied in order.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, "dispatch", fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	actions, err := action.UnmarshalList(body)
	if err != nil {
		s.writeError(w, "dispatch", err)
		return
	}

	state, err := s.Editor.Dispatch(r.Context(), id, actions...)
	if err != nil {
		s.writeError(w, "dispatch", err)
		return
	}
	s.publish(id, state)
	s.writeJSON(w, http.StatusOK, view.FromState(id, state))
}

// Pointer handles POST /sessions/{id}/pointer.
func (s *Server) Pointer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var ev tools.PointerEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&ev); err != nil {
		s.writeError(w, "pointer", fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	state, err := s.Editor.Pointer(r.Context(), id, ev)
	if err != nil {
		s.writeError(w, "pointer", err)
		return
	}
	s.publish(id, state)
	s.writeJSON(w, http.StatusOK, view.FromState(id, state))
}

// GetHistory handles GET /sessions/{id}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	state, err := s.Editor.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "history", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"summary":   view.Summarize(state.History),
		"revisions": view.Revisions(state.History),
	})
}

// GetComposite handles GET /sessions/{id}/scenes/{sceneID}/composite.
func (s *Server) GetComposite(w http.ResponseWriter, r *http.Request) {
	state, err := s.Editor.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "composite", err)
		return
	}

	scene, ok := state.Document.SceneByID(chi.URLParam(r, "sceneID"))
	if !ok {
		http.Error(w, "scene not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, view.CompositeOf(state.Document, scene))
}

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLastScene):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, domain.ErrUnsupportedAction),
		errors.Is(err, domain.ErrInvalidSessionID),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syntax) || errors.As(err, &typ) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "op", op, "err", err)
	} else {
		s.logger.Debug("request rejected", "op", op, "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) publish(sessionID string, state workspace.State) {
	msg, err := json.Marshal(view.Summarize(state.History))
	if err != nil {
		return
	}
	s.Streams.Broadcast(sessionID, string(msg))
}
