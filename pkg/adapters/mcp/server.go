// Package mcp exposes an Editor as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/glyphgrid"
	"github.com/aretw0/glyphgrid/internal/logging"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/view"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SessionsURI lists the stored sessions.
const SessionsURI = "glyphgrid://sessions"

// Editor is the part of glyphgrid.Editor the server needs.
type Editor interface {
	Start(ctx context.Context, sessionID string) (workspace.State, error)
	State(ctx context.Context, sessionID string) (workspace.State, error)
	Dispatch(ctx context.Context, sessionID string, actions ...action.Action) (workspace.State, error)
	List(ctx context.Context) ([]string, error)
}

var _ Editor = (*glyphgrid.Editor)(nil)

// Server wraps the Editor and exposes it as an MCP server.
type Server struct {
	editor    Editor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP server instance.
func NewServer(editor Editor, opts ...Option) *Server {
	s := &Server{
		editor: editor,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("glyphgrid-mcp", glyphgrid.Version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, true),
			server.WithRecovery(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Open a session, creating an empty document if it does not exist."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[view.State](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("dispatch",
		mcp.WithDescription("Apply editor actions in order. Each action is an object with a \"type\" such as \"node/set-cell\" or \"history/undo\"."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("actions", mcp.Description("JSON action object or array of action objects")),
		mcp.WithObject("action", mcp.Description("A single action object, as an alternative to actions")),
		mcp.WithOutputSchema[view.State](),
	), mcp.NewStructuredToolHandler(s.handleDispatch))

	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the document, selection and history position of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[view.State](),
	), mcp.NewStructuredToolHandler(s.handleGetState))

	s.mcpServer.AddTool(mcp.NewTool("composite",
		mcp.WithDescription("Flatten a scene into its visible cells in world coordinates."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("scene_id", mcp.Description("Scene to flatten (defaults to the current scene)")),
		mcp.WithOutputSchema[view.Composite](),
	), mcp.NewStructuredToolHandler(s.handleComposite))

	s.mcpServer.AddTool(mcp.NewTool("history",
		mcp.WithDescription("List the revisions of a session, oldest first."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
	), s.handleHistory)
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func sessionArg(args map[string]any) (string, error) {
	id := stringArg(args, "session_id")
	if id == "" {
		return "", errors.New("session_id is required")
	}
	return id, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (view.State, error) {
	id, err := sessionArg(args)
	if err != nil {
		return view.State{}, err
	}
	state, err := s.editor.Start(ctx, id)
	if err != nil {
		return view.State{}, fmt.Errorf("start failed: %w", err)
	}
	return view.FromState(id, state), nil
}

// parseActions reads either the actions JSON string or the action object.
func parseActions(args map[string]any) ([]action.Action, error) {
	if raw := stringArg(args, "actions"); raw != "" {
		return action.UnmarshalList([]byte(raw))
	}
	if obj, ok := args["action"].(map[string]any); ok {
		a, err := action.FromMap(obj)
		if err != nil {
			return nil, err
		}
		return []action.Action{a}, nil
	}
	return nil, errors.New("one of actions or action is required")
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (view.State, error) {
	id, err := sessionArg(args)
	if err != nil {
		return view.State{}, err
	}
	actions, err := parseActions(args)
	if err != nil {
		return view.State{}, fmt.Errorf("invalid actions: %w", err)
	}

	state, err := s.editor.Dispatch(ctx, id, actions...)
	if err != nil {
		s.logger.Warn("MCP dispatch rejected", "session_id", id, "err", err)
		return view.State{}, fmt.Errorf("dispatch failed: %w", err)
	}
	return view.FromState(id, state), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (view.State, error) {
	id, err := sessionArg(args)
	if err != nil {
		return view.State{}, err
	}
	state, err := s.editor.State(ctx, id)
	if err != nil {
		return view.State{}, err
	}
	return view.FromState(id, state), nil
}

func (s *Server) handleComposite(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (view.Composite, error) {
	id, err := sessionArg(args)
	if err != nil {
		return view.Composite{}, err
	}
	state, err := s.editor.State(ctx, id)
	if err != nil {
		return view.Composite{}, err
	}

	sceneID := stringArg(args, "scene_id")
	if sceneID == "" {
		sceneID = state.CurrentSceneID
	}
	scene, ok := state.Document.SceneByID(sceneID)
	if !ok {
		return view.Composite{}, fmt.Errorf("scene %q not found", sceneID)
	}
	return view.CompositeOf(state.Document, scene), nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := sessionArg(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.editor.State(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history failed: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(view.Revisions(state.History))
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SessionsURI, "Stored sessions",
		mcp.WithMIMEType("application/json"),
	), s.readSessions)
}

func (s *Server) readSessions(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.editor.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	jsonBytes, _ := json.Marshal(ids)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SessionsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
