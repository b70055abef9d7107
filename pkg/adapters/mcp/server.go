package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/aretw0/unixtime/pkg/router"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ToolInsert      = "insert_unix_timestamp"
	ToolUnixToHuman = "convert_unix_to_human"
	ToolHumanToUnix = "convert_to_unix_timestamp"

	LogURI = "unixtime://log"
)

// Server exposes the commands of a Utility as MCP tools.
type Server struct {
	utility   *unixtime.Utility
	log       ports.OutputLog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLog sets the log conversions append to. Defaults to an in-memory log.
func WithLog(log ports.OutputLog) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(u *unixtime.Utility, opts ...Option) *Server {
	s := &Server{
		utility: u,
		logger:  slog.Default(),
		mcpServer: server.NewMCPServer("unixtime-mcp", strings.TrimSpace(unixtime.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = memory.NewLog(domain.LogName)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves JSON-RPC on in/out until ctx is done or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(ToolInsert,
		mcp.WithDescription("Insert the current Unix timestamp (whole seconds) into a document at the cursor."),
		mcp.WithString("document", mcp.Description("Text of the active document. Without it there is no editor to insert into.")),
		mcp.WithNumber("cursor", mcp.Description("Byte offset to insert at (defaults to the end of the document)")),
	), s.handleInsert)

	s.mcpServer.AddTool(mcp.NewTool(ToolUnixToHuman,
		mcp.WithDescription("Convert a Unix timestamp in seconds to a human-readable date."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Timestamp in whole seconds since the epoch")),
	), s.convertHandler(domain.CommandUnixToHuman))

	s.mcpServer.AddTool(mcp.NewTool(ToolHumanToUnix,
		mcp.WithDescription("Convert a human-readable date to a Unix timestamp in seconds."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Date text, e.g. 2021-01-01T00:00:00Z")),
	), s.convertHandler(domain.CommandHumanToUnix))
}

func (s *Server) handleInsert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	text, ok := args["document"].(string)
	if !ok {
		return mcp.NewToolResultError(domain.UserMessage(domain.ErrNoActiveDocument)), nil
	}

	doc := memory.NewDocument(text)
	if cursor := request.GetInt("cursor", -1); cursor >= 0 {
		if err := doc.MoveCursor(cursor); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	host := memory.NewHost(memory.WithDocument(doc), memory.WithLog(s.log))
	out := s.utility.InsertTimestamp(ctx, host)
	if out.Failed() {
		s.logger.Warn("MCP Insert failed", "error", out.Err)
		return mcp.NewToolResultError(domain.UserMessage(out.Err)), nil
	}
	return mcp.NewToolResultText(doc.Text()), nil
}

func (s *Server) convertHandler(cmd domain.CommandID) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := request.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		clean, err := router.SanitizeInput(input, s.utility.MaxInputSize())
		if err != nil {
			s.logger.Warn("MCP Convert: Input rejected", "error", err, "size", len(input))
			return mcp.NewToolResultError(domain.UserMessage(err)), nil
		}

		host := memory.NewHost(memory.WithAnswers(clean), memory.WithLog(s.log))
		out, err := s.utility.Execute(ctx, host, string(cmd))
		if err != nil {
			return nil, err
		}
		if out.Failed() {
			return mcp.NewToolResultError(domain.UserMessage(out.Err)), nil
		}
		return mcp.NewToolResultText(out.Result), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(LogURI, s.log.Name(),
		mcp.WithResourceDescription("Conversion results, one per line, in append order"),
		mcp.WithMIMEType("text/plain"),
	), s.readLog)
}

func (s *Server) readLog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	lines, err := s.log.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LogURI,
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		},
	}, nil
}
