package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/unixtime/pkg/adapters/http"
	"github.com/aretw0/unixtime/pkg/adapters/mcp"
)

// RunServe runs the HTTP API until interrupted. A zero port uses the configured one.
func RunServe(opts Options, port int) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	env, err := Setup(sigCtx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	if port == 0 {
		port = env.Config.HTTP.Port
	}

	handler, err := httpAdapter.NewHandler(env.Utility,
		httpAdapter.WithLog(env.Log),
		httpAdapter.WithGatherer(env.Registry),
		httpAdapter.WithLogger(env.Logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(opts.stdout(), "Serving unixtime API on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-sigCtx.Done():
		printSystemMessage(opts.stdout(), "Shutting down (signal: %v)", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			env.Logger.Warn("Graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		printSystemMessage(opts.stdout(), "Server stopped gracefully")
		return nil
	}
}

// RunMCP runs the MCP server on the given transport until interrupted.
// Empty transport and zero port use the configured values.
func RunMCP(opts Options, transport string, port int) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	env, err := Setup(sigCtx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	if transport == "" {
		transport = env.Config.MCP.Transport
	}
	if port == 0 {
		port = env.Config.MCP.Port
	}

	srv := mcp.NewServer(env.Utility, mcp.WithLog(env.Log), mcp.WithLogger(env.Logger))

	switch transport {
	case "stdio":
		// Stdout carries JSON-RPC, so nothing else may be printed there.
		env.Logger.Info("Starting MCP Server (Stdio)")
		return srv.ServeStdio(sigCtx, opts.stdin(), opts.stdout())
	case "sse":
		env.Logger.Info("Starting MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
