package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/glyphgrid/internal/presentation/graph"
	"github.com/aretw0/glyphgrid/internal/presentation/tui"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/snapshot"
	"github.com/aretw0/glyphgrid/pkg/view"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewSession creates a session. An empty id gets a generated one.
func (a *App) NewSession(ctx context.Context, sessionID string) (string, workspace.State, error) {
	if sessionID == "" {
		sessionID = domain.NewID()
	}
	if _, err := a.Editor.State(ctx, sessionID); err == nil {
		return "", workspace.State{}, fmt.Errorf("session %q already exists", sessionID)
	} else if !errors.Is(err, domain.ErrSessionNotFound) {
		return "", workspace.State{}, err
	}
	state, err := a.Editor.Start(ctx, sessionID)
	return sessionID, state, err
}

// ParseActions reads a JSON action, a JSON array of actions, or a YAML
// list of action maps.
func ParseActions(data []byte) ([]action.Action, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("no actions given")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return action.UnmarshalList(trimmed)
	}

	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("decode actions: expected a map or a list, got %T", doc)
	}

	actions := make([]action.Action, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("action %d: expected a map, got %T", i, item)
		}
		act, err := action.FromMap(m)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, act)
	}
	return actions, nil
}

// DispatchScript applies the actions read from r to a session, creating
// the session first if needed.
func (a *App) DispatchScript(ctx context.Context, sessionID string, r io.Reader) (workspace.State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return workspace.State{}, fmt.Errorf("failed to read actions: %w", err)
	}
	actions, err := ParseActions(data)
	if err != nil {
		return workspace.State{}, err
	}
	if _, err := a.Editor.Start(ctx, sessionID); err != nil {
		return workspace.State{}, err
	}
	return a.Editor.Dispatch(ctx, sessionID, actions...)
}

// Undo steps a session back by count revisions.
func (a *App) Undo(ctx context.Context, sessionID string, count int) (workspace.State, error) {
	return a.repeat(ctx, sessionID, count, action.Undo{})
}

// Redo steps a session forward by count revisions.
func (a *App) Redo(ctx context.Context, sessionID string, count int) (workspace.State, error) {
	return a.repeat(ctx, sessionID, count, action.Redo{})
}

func (a *App) repeat(ctx context.Context, sessionID string, count int, act action.Action) (workspace.State, error) {
	actions := make([]action.Action, max(count, 1))
	for i := range actions {
		actions[i] = act
	}
	return a.Editor.Dispatch(ctx, sessionID, actions...)
}

// Render draws a scene of a session. An empty sceneID renders the current scene.
func (a *App) Render(ctx context.Context, w io.Writer, sessionID, sceneID string, profile termenv.Profile) error {
	state, err := a.Editor.State(ctx, sessionID)
	if err != nil {
		return err
	}
	if sceneID == "" {
		sceneID = state.CurrentSceneID
	}
	scene, ok := state.Document.SceneByID(sceneID)
	if !ok {
		return fmt.Errorf("scene %q not found", sceneID)
	}

	fmt.Fprintln(w, tui.SceneTitle(state.Document, scene))
	return tui.RenderScene(w, state.Document, scene, profile)
}

// History prints the revisions of a session as a markdown table or as a
// Mermaid diagram.
func (a *App) History(ctx context.Context, w io.Writer, sessionID string, mermaid, styled bool) error {
	state, err := a.Editor.State(ctx, sessionID)
	if err != nil {
		return err
	}
	revisions := view.Revisions(state.History)

	if mermaid {
		_, err := io.WriteString(w, graph.GenerateMermaid(revisions))
		return err
	}

	out, err := tui.NewRenderer(styled)(tui.HistoryMarkdown(revisions))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Export writes the current document of a session.
func (a *App) Export(ctx context.Context, w io.Writer, sessionID, format string) error {
	state, err := a.Editor.State(ctx, sessionID)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = snapshot.EncodeDocumentYAML(state.Document)
	case FormatJSON, "":
		data, err = json.MarshalIndent(state.Document, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (json, yaml)", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Import replaces a session with a document read from path. The session
// starts a fresh history.
func (a *App) Import(ctx context.Context, sessionID, path string, now time.Time) (workspace.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return workspace.State{}, fmt.Errorf("failed to read document: %w", err)
	}

	// YAML is a superset of JSON, so one decoder covers both formats.
	doc, err := snapshot.DecodeDocumentYAML(data)
	if err != nil {
		return workspace.State{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	state := workspace.FromDocument(doc, now)
	if err := a.Editor.Save(ctx, sessionID, state); err != nil {
		return workspace.State{}, err
	}
	return state, nil
}

// Inspect writes the read model of a session as indented JSON.
func (a *App) Inspect(ctx context.Context, w io.Writer, sessionID string) error {
	state, err := a.Editor.State(ctx, sessionID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view.FromState(sessionID, state))
}

// ListSessions writes a table of the stored sessions.
func (a *App) ListSessions(ctx context.Context, w io.Writer) error {
	ids, err := a.Editor.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	rows := make([]tui.SessionRow, 0, len(ids))
	for _, id := range ids {
		state, err := a.Editor.State(ctx, id)
		if err != nil {
			a.Logger.Warn("Skipping unreadable session", "session_id", id, "err", err)
			continue
		}
		current := state.History.Current()
		rows = append(rows, tui.SessionRow{
			ID:       id,
			Name:     state.Document.Name,
			Scenes:   len(state.Document.Scenes),
			Cursor:   state.History.Cursor,
			Length:   state.History.Len(),
			Modified: current.Timestamp.Local().Format(time.DateTime),
		})
	}
	fmt.Fprintln(w, tui.SessionTable(rows))
	return nil
}

// RemoveSessions deletes every id, reporting each outcome on w.
func (a *App) RemoveSessions(ctx context.Context, w io.Writer, ids ...string) error {
	var errs []string
	for _, id := range ids {
		if err := a.Editor.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to remove sessions: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Summary formats the one-line status printed after a mutation.
func Summary(sessionID string, state workspace.State) string {
	s := view.Summarize(state.History)
	return fmt.Sprintf("session %s: revision %d/%d (undo: %t, redo: %t)",
		sessionID, s.Cursor, s.Length-1, s.CanUndo, s.CanRedo)
}
