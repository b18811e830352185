// Package runtime applies actions to workspace state.
//
// A single action runs through four stages in a fixed order: selection,
// document, active tool, history. Later stages read what earlier ones wrote.
// A batch is folded left to right through the same single-action path.
package runtime

import (
	"time"

	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/aretw0/glyphgrid/pkg/tools"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Reducer computes the next state for one action. It must be pure.
type Reducer func(state workspace.State, a action.Action) workspace.State

// Middleware wraps a Reducer. It may observe but must not alter state.
type Middleware func(next Reducer) Reducer

// Pipeline is the composed reducer of an editor.
type Pipeline struct {
	tools      *tools.Registry
	policy     history.Policy
	clock      func() time.Time
	middleware []Middleware
	reduce     Reducer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTools sets the registry consulted for tool-local reducers.
func WithTools(r *tools.Registry) Option {
	return func(p *Pipeline) {
		p.tools = r
	}
}

// WithPolicy sets the history coalescing policy.
func WithPolicy(policy history.Policy) Option {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithClock sets the time source used to stamp revisions.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) {
		p.clock = clock
	}
}

// WithMiddleware appends reducer middleware. The first one is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(p *Pipeline) {
		p.middleware = append(p.middleware, mw...)
	}
}

// New creates a pipeline. Without options it uses the built-in tools,
// history.DefaultPolicy and time.Now.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		policy: history.DefaultPolicy,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tools == nil {
		p.tools = tools.NewDefaultRegistry()
	}

	reduce := p.reduceOne
	for i := len(p.middleware) - 1; i >= 0; i-- {
		reduce = p.middleware[i](reduce)
	}
	p.reduce = reduce

	return p
}

// Tools returns the registry used by the tool stage.
func (p *Pipeline) Tools() *tools.Registry {
	return p.tools
}

// Now returns the pipeline clock reading.
func (p *Pipeline) Now() time.Time {
	return p.clock()
}

// Reduce applies a single action.
func (p *Pipeline) Reduce(state workspace.State, a action.Action) workspace.State {
	return p.reduce(state, a)
}

// Dispatch applies actions in order, exactly as if each had been reduced
// on its own.
func (p *Pipeline) Dispatch(state workspace.State, actions ...action.Action) workspace.State {
	for _, a := range actions {
		state = p.reduce(state, a)
	}
	return state
}

func (p *Pipeline) reduceOne(state workspace.State, a action.Action) workspace.State {
	state = reduceSelection(state, a)
	state = reduceDocument(state, a)
	state = p.reduceTool(state, a)
	state = p.reduceHistory(state, a)
	return state
}

func (p *Pipeline) reduceTool(state workspace.State, a action.Action) workspace.State {
	tool, ok := p.tools.Get(state.CurrentToolID)
	if !ok {
		return state
	}
	lr, ok := tool.(tools.LocalReducer)
	if !ok {
		return state
	}

	local := state.ToolState(tool.ID())
	next := lr.ReduceLocal(local, state, a)
	if local == nil && next == nil {
		return state
	}
	return state.WithToolState(tool.ID(), next)
}

func (p *Pipeline) reduceHistory(state workspace.State, a action.Action) workspace.State {
	switch action.ClassOf(a.Kind()) {
	case action.Transient:
		return state

	case action.Navigation:
		h := state.History
		switch a := a.(type) {
		case action.Undo:
			h = h.Undo()
		case action.Redo:
			h = h.Redo()
		case action.SelectRevision:
			h = h.Select(a.ID)
		}
		state.History = h
		state.Document = h.CurrentDocument()
		return revalidateSelection(state)

	default:
		state.History = state.History.AddRevision(state.Document, a, p.clock(), p.policy)
		return state
	}
}
