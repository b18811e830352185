package glyphgrid

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/glyphgrid/internal/logging"
	"github.com/aretw0/glyphgrid/internal/runtime"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/adapters/memory"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/aretw0/glyphgrid/pkg/ports"
	"github.com/aretw0/glyphgrid/pkg/session"
	"github.com/aretw0/glyphgrid/pkg/shortcuts"
	"github.com/aretw0/glyphgrid/pkg/tools"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Editor is the high-level entry point for the glyphgrid library.
// It binds the reducer pipeline to a session store and exposes the
// read and write surface used by renderers and transports.
type Editor struct {
	pipeline *runtime.Pipeline
	sessions *session.Manager

	store      ports.SnapshotStore
	locker     ports.DistributedLocker
	policy     history.Policy
	clock      func() time.Time
	tools      *tools.Registry
	middleware []runtime.Middleware
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore sets where sessions are persisted. Defaults to an in-memory store.
func WithStore(store ports.SnapshotStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithLocker enables distributed locking of sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Editor) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger. Dispatched actions are
// logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithHistoryPolicy overrides the coalescing policy.
func WithHistoryPolicy(policy history.Policy) Option {
	return func(e *Editor) {
		e.policy = policy
	}
}

// WithClock sets the clock used for revision timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Editor) {
		e.clock = clock
	}
}

// WithTools replaces the built-in tool registry.
func WithTools(registry *tools.Registry) Option {
	return func(e *Editor) {
		e.tools = registry
	}
}

// WithMiddleware wraps the reducer pipeline. The first middleware is the outermost.
func WithMiddleware(mw ...runtime.Middleware) Option {
	return func(e *Editor) {
		e.middleware = append(e.middleware, mw...)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// New initializes an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		policy: history.DefaultPolicy,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.tools == nil {
		e.tools = tools.NewDefaultRegistry()
	}

	middleware := append(slices.Clone(e.middleware), runtime.WithLogging(e.logger))
	e.pipeline = runtime.New(
		runtime.WithTools(e.tools),
		runtime.WithPolicy(e.policy),
		runtime.WithClock(e.clock),
		runtime.WithMiddleware(middleware...),
	)

	sessionOpts := []session.Option{
		session.WithLogger(e.logger),
		session.WithClock(e.clock),
	}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(e.store, sessionOpts...)

	return e
}

// NewState creates a fresh workspace stamped with the editor clock.
func (e *Editor) NewState() workspace.State {
	return workspace.New(e.clock())
}

// Apply reduces actions over state without touching any session.
// Deleting the last scene is silently ignored here; use Check to reject it.
func (e *Editor) Apply(state workspace.State, actions ...action.Action) workspace.State {
	return e.pipeline.Dispatch(state, actions...)
}

// Check applies actions like Apply but fails with domain.ErrLastScene
// when an action would delete the only remaining scene.
func (e *Editor) Check(state workspace.State, actions ...action.Action) (workspace.State, error) {
	for _, a := range actions {
		if del, ok := a.(action.DeleteScene); ok {
			if _, exists := state.Document.SceneByID(del.SceneID); exists && !state.CanDeleteScene() {
				return state, domain.ErrLastScene
			}
		}
		state = e.pipeline.Reduce(state, a)
	}
	return state, nil
}

// Start loads a session, creating it if it does not exist yet.
func (e *Editor) Start(ctx context.Context, sessionID string) (workspace.State, error) {
	state, created, err := e.sessions.LoadOrStart(ctx, sessionID)
	if err != nil {
		return workspace.State{}, err
	}
	if created && e.hooks.OnSessionStart != nil {
		e.hooks.OnSessionStart(ctx, &domain.SessionEvent{
			EventBase:  e.event(domain.EventSessionStart, sessionID),
			DocumentID: state.Document.ID,
		})
	}
	return state, nil
}

// Dispatch applies actions to a stored session as one locked transition and
// persists the result. The whole batch is rejected with domain.ErrLastScene
// if any action would delete the last scene.
func (e *Editor) Dispatch(ctx context.Context, sessionID string, actions ...action.Action) (workspace.State, error) {
	return e.update(ctx, sessionID, func(state workspace.State) (workspace.State, []action.Action, error) {
		next, err := e.Check(state, actions...)
		return next, actions, err
	})
}

// Pointer feeds a pointer event to the current tool of a session and
// dispatches whatever it emits. The hovered cell becomes the cursor.
func (e *Editor) Pointer(ctx context.Context, sessionID string, ev tools.PointerEvent) (workspace.State, error) {
	return e.update(ctx, sessionID, func(state workspace.State) (workspace.State, []action.Action, error) {
		emitted := []action.Action{action.SetCursor{X: ev.X, Y: ev.Y}}

		if t, ok := e.tools.Get(state.CurrentToolID); ok {
			if h, ok := t.(tools.PointerHandler); ok {
				local, acts := h.HandlePointer(state, ev)
				state = state.WithToolState(t.ID(), local)
				emitted = append(emitted, acts...)
			}
		}
		next, err := e.Check(state, emitted...)
		return next, emitted, err
	})
}

// update runs fn as one locked session transition and reports it to the
// dispatch hook. fn returns the actions it applied.
func (e *Editor) update(ctx context.Context, sessionID string, fn func(workspace.State) (workspace.State, []action.Action, error)) (workspace.State, error) {
	start := time.Now()

	var (
		prev    workspace.State
		applied []action.Action
	)
	next, err := e.sessions.Update(ctx, sessionID, func(state workspace.State) (workspace.State, error) {
		prev = state
		result, acts, err := fn(state)
		applied = acts
		return result, err
	})

	if e.hooks.OnDispatch != nil {
		ev := &domain.DispatchEvent{
			EventBase: e.event(domain.EventDispatch, sessionID),
			Actions:   kinds(applied),
			Duration:  time.Since(start),
			Err:       err,
		}
		if err == nil {
			ev.Change = history.Compare(prev.History, next.History).Kind.String()
			ev.Cursor = next.History.Cursor
			ev.Length = next.History.Len()
		}
		e.hooks.OnDispatch(ctx, ev)
	}

	if err != nil {
		return workspace.State{}, err
	}
	return next, nil
}

func kinds(actions []action.Action) []domain.ActionKind {
	out := make([]domain.ActionKind, len(actions))
	for i, a := range actions {
		out[i] = a.Kind()
	}
	return out
}

func (e *Editor) event(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.clock(),
		Type:      t,
		SessionID: sessionID,
	}
}

// State returns the current state of a session.
func (e *Editor) State(ctx context.Context, sessionID string) (workspace.State, error) {
	return e.sessions.Load(ctx, sessionID)
}

// Save stores state under sessionID, replacing whatever was there.
func (e *Editor) Save(ctx context.Context, sessionID string, state workspace.State) error {
	return e.sessions.Save(ctx, sessionID, state)
}

// Delete removes a session. Deleting a missing session is not an error.
func (e *Editor) Delete(ctx context.Context, sessionID string) error {
	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if e.hooks.OnSessionDelete != nil {
		e.hooks.OnSessionDelete(ctx, &domain.SessionEvent{
			EventBase: e.event(domain.EventSessionDelete, sessionID),
		})
	}
	return nil
}

// List returns the stored session ids.
func (e *Editor) List(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Tools returns the tool registry.
func (e *Editor) Tools() *tools.Registry {
	return e.tools
}

// Logger returns the editor logger.
func (e *Editor) Logger() *slog.Logger {
	return e.logger
}

// BindShortcuts registers tool selection, undo, redo and clear-selection
// shortcuts that forward to dispatch. The returned function removes them.
func (e *Editor) BindShortcuts(reg *shortcuts.Registry, dispatch func(...action.Action)) (unbind func()) {
	var bound []*shortcuts.Shortcut
	on := func(keys []string, a action.Action) {
		bound = append(bound, reg.On(keys, func(string) { dispatch(a) }))
	}

	for _, t := range e.tools.List() {
		if keys := t.Shortcut(); len(keys) > 0 {
			on(keys, action.SelectTool{ToolID: t.ID()})
		}
	}
	on([]string{"Meta", "z"}, action.Undo{})
	on([]string{"Meta", "y"}, action.Redo{})
	on([]string{"Escape"}, action.ClearSelection{})

	return func() {
		for _, s := range bound {
			reg.Off(s)
		}
	}
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound)
}
