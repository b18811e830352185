// Package cli wires configuration, storage and presentation for the
// glyphgrid command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/glyphgrid"
	"github.com/aretw0/glyphgrid/internal/adapters/file"
	"github.com/aretw0/glyphgrid/internal/config"
	"github.com/aretw0/glyphgrid/internal/logging"
	"github.com/aretw0/glyphgrid/pkg/adapters/memory"
	"github.com/aretw0/glyphgrid/pkg/adapters/redis"
	"github.com/aretw0/glyphgrid/pkg/observability"
	"github.com/aretw0/glyphgrid/pkg/persistence/middleware"
	"github.com/aretw0/glyphgrid/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the global command flags.
type Options struct {
	Dir        string
	ConfigPath string
	Verbose    bool
	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer
	// Registerer enables metrics when set.
	Registerer prometheus.Registerer
}

// App is an opened Editor with the resources it owns.
type App struct {
	Editor  *glyphgrid.Editor
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	closers []io.Closer
}

// Open loads configuration and builds the Editor it describes.
func Open(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dirOrDot(opts.Dir), "glyphgrid.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(cfg.Log, opts)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}

	store, locker, err := app.openStore(dirOrDot(opts.Dir))
	if err != nil {
		return nil, err
	}

	editorOpts := []glyphgrid.Option{
		glyphgrid.WithStore(store),
		glyphgrid.WithLogger(logger),
		glyphgrid.WithHistoryPolicy(cfg.Policy()),
	}
	if locker != nil {
		editorOpts = append(editorOpts, glyphgrid.WithLocker(locker))
	}

	hooks := observability.LoggingHooks(logger)
	if opts.Registerer != nil {
		metrics, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		app.Metrics = metrics
		hooks = observability.MergeHooks(hooks, metrics.Hooks())
		editorOpts = append(editorOpts, glyphgrid.WithMiddleware(metrics.Middleware()))
	}
	editorOpts = append(editorOpts, glyphgrid.WithLifecycleHooks(hooks))

	app.Editor = glyphgrid.New(editorOpts...)
	return app, nil
}

func (a *App) openStore(dir string) (ports.SnapshotStore, ports.DistributedLocker, error) {
	var (
		store  ports.SnapshotStore
		locker ports.DistributedLocker
	)

	switch a.Config.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendRedis:
		rc := a.Config.Store.Redis
		rs := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(rc.TTL),
		)
		a.closers = append(a.closers, rs)
		store = rs
		locker = redis.NewLocker(rs.Client(), rs.Prefix())
	default:
		path := a.Config.Store.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		store = file.New(path)
	}

	key, err := a.Config.Store.Key()
	if err != nil {
		return nil, nil, err
	}
	if key != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, nil, err
		}
		store = middleware.Chain(store, enc)
	}

	a.Logger.Debug("Store opened", "backend", a.Config.Store.Backend, "encrypted", key != nil)
	return store, locker, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// createLogger honours --verbose over the configured level.
func createLogger(cfg config.LogConfig, opts Options) (*slog.Logger, error) {
	w := opts.Stderr
	if w == nil {
		w = defaultStderr()
	}
	if opts.Verbose {
		return logging.NewWithWriter(w, slog.LevelDebug, cfg.JSON), nil
	}
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, cfg.JSON), nil
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
