package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/glyphgrid/pkg/adapters/http"
	"github.com/aretw0/glyphgrid/pkg/adapters/mcp"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Handler mounts the HTTP API, plus /metrics when gatherer is not nil.
func (a *App) Handler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Mount("/", httpadapter.NewHandler(a.Editor, httpadapter.WithLogger(a.Logger)))
	return r
}

// Serve runs the HTTP API on port until ctx is done.
func (a *App) Serve(ctx context.Context, port int, gatherer prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           a.Handler(gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
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

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		a.Logger.Info("HTTP server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE.
func (a *App) ServeMCP(ctx context.Context, transport string, port int) error {
	srv := mcp.NewServer(a.Editor, mcp.WithLogger(a.Logger))
	switch transport {
	case "stdio":
		a.Logger.Info("Starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (stdio, sse)", transport)
	}
}

// ServeAll runs the HTTP API and the MCP SSE server side by side. The first
// failure stops both.
func (a *App) ServeAll(ctx context.Context, port, mcpPort int, gatherer prometheus.Gatherer) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Serve(ctx, port, gatherer)
	})
	g.Go(func() error {
		return a.ServeMCP(ctx, "sse", mcpPort)
	})
	return g.Wait()
}
