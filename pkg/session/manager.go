package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/glyphgrid/internal/logging"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/ports"
	"github.com/aretw0/glyphgrid/pkg/snapshot"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// DefaultLockTTL bounds how long a distributed lock may be held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// ephemeral is the part of a workspace that never reaches the store.
type ephemeral struct {
	cursor    *domain.Vector
	selection *domain.Rect
	tools     map[string]any
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It serializes workspaces through package snapshot and keeps their
// ephemeral fields in memory so in-progress gestures survive between calls.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	liveMu sync.Mutex
	live   map[string]ephemeral

	locker  ports.DistributedLocker
	lockTTL time.Duration
	clock   func() time.Time
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithClock sets the clock that stamps the bootstrap revision of new sessions.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager over the given store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		live:    make(map[string]ephemeral),
		lockTTL: DefaultLockTTL,
		clock:   time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// load restores the persisted workspace and overlays the live ephemeral fields.
// Callers hold the session lock.
func (m *Manager) load(ctx context.Context, sessionID string) (workspace.State, error) {
	data, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return workspace.State{}, err
	}

	state, err := snapshot.Deserialize(data)
	if err != nil {
		return workspace.State{}, fmt.Errorf("failed to restore session %q: %w", sessionID, err)
	}

	m.liveMu.Lock()
	live, ok := m.live[sessionID]
	m.liveMu.Unlock()
	if ok {
		state.Cursor, state.Selection, state.Tools = live.cursor, live.selection, live.tools
	}
	return state, nil
}

// save persists the workspace and remembers its ephemeral fields.
// Callers hold the session lock.
func (m *Manager) save(ctx context.Context, sessionID string, state workspace.State) error {
	data, err := snapshot.Serialize(state)
	if err != nil {
		return fmt.Errorf("failed to serialize session %q: %w", sessionID, err)
	}
	if err := m.store.Save(ctx, sessionID, data); err != nil {
		return err
	}

	m.liveMu.Lock()
	m.live[sessionID] = ephemeral{
		cursor:    state.Cursor,
		selection: state.Selection,
		tools:     state.Tools,
	}
	m.liveMu.Unlock()
	return nil
}

func (m *Manager) forget(sessionID string) {
	m.liveMu.Lock()
	delete(m.live, sessionID)
	m.liveMu.Unlock()
}

// Load retrieves an existing session.
func (m *Manager) Load(ctx context.Context, sessionID string) (workspace.State, error) {
	var state workspace.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.load(ctx, sessionID)
		return err
	})
	return state, err
}

// LoadOrStart loads a session, or creates and persists a new workspace if
// none exists yet. created reports which happened.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (state workspace.State, created bool, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		state = workspace.New(m.clock())
		created = true

		// Persist immediately to reserve the ID.
		if err := m.save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		m.logger.Debug("session started", "session_id", sessionID)
		return nil
	})
	return state, created, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state workspace.State) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.save(ctx, sessionID, state)
	})
}

// Update loads the session, applies fn and saves the result, all under the
// session lock. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(workspace.State) (workspace.State, error)) (workspace.State, error) {
	var next workspace.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err := m.load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = fn(prev)
		if err != nil {
			return err
		}
		return m.save(ctx, sessionID, next)
	})
	return next, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.forget(sessionID)
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
