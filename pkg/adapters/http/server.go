package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/aretw0/unixtime/pkg/router"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// CommandRequest is the body of POST /commands/{id}.
type CommandRequest struct {
	Document  bool    `json:"document"`
	Selection *string `json:"selection,omitempty"`
	Input     *string `json:"input,omitempty"`
	Cursor    *int    `json:"cursor,omitempty"`
}

// CommandResponse is the body returned by POST /commands/{id}.
type CommandResponse struct {
	Status   domain.Status `json:"status"`
	Result   string        `json:"result,omitempty"`
	Document *string       `json:"document,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// LogResponse is the body of GET /log.
type LogResponse struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Server serves the commands of a Utility over HTTP.
type Server struct {
	Utility *unixtime.Utility
	Log     ports.OutputLog
	Streams *StreamManager

	gatherer prometheus.Gatherer
	spec     *openapi3.T
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLog sets the log shared by every request. Defaults to an in-memory log.
func WithLog(log ports.OutputLog) Option {
	return func(s *Server) {
		s.Log = log
	}
}

// WithGatherer sets the registry served on /metrics. Defaults to prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for u.
func NewHandler(u *unixtime.Utility, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	s := &Server{
		Utility:  u,
		Streams:  NewStreamManager(),
		gatherer: prometheus.DefaultGatherer,
		spec:     spec,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Log == nil {
		s.Log = memory.NewLog(domain.LogName)
	}
	s.Log = &streamingLog{OutputLog: s.Log, streams: s.Streams}

	r := chi.NewRouter()
	r.Post("/commands/{id}", s.RunCommand)
	r.Get("/log", s.GetLog)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunCommand handles POST /commands/{id}.
func (s *Server) RunCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := domain.ParseCommand(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, domain.UserMessage(err), http.StatusNotFound)
		return
	}

	var body CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("RunCommand: Invalid request body", "error", err)
		return
	}

	host, doc, err := s.requestHost(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("RunCommand: Input rejected", "error", err, "command", cmd)
		return
	}

	out, err := s.Utility.Execute(r.Context(), host, string(cmd))
	if err != nil {
		http.Error(w, domain.UserMessage(err), http.StatusNotFound)
		return
	}

	resp := CommandResponse{Status: out.Status, Result: out.Result}
	if doc != nil {
		text := doc.Text()
		resp.Document = &text
	}
	if msgs := host.Errors(); len(msgs) > 0 {
		resp.Message = msgs[0]
	} else if infos := host.Infos(); len(infos) > 0 {
		resp.Message = infos[0]
	}

	code := statusCode(out)
	if code >= http.StatusInternalServerError {
		s.logger.Error("RunCommand failed", "error", out.Err, "command", cmd)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("RunCommand response encode failed", "error", err)
	}
}

// requestHost builds the host a single request runs against.
// The posted selection becomes a document whose whole text is selected.
func (s *Server) requestHost(body CommandRequest) (*memory.Host, *memory.Document, error) {
	limit := s.Utility.MaxInputSize()
	opts := []memory.HostOption{memory.WithLog(s.Log)}

	if body.Input != nil && *body.Input != "" {
		clean, err := router.SanitizeInput(*body.Input, limit)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, memory.WithAnswers(clean))
	}

	if !body.Document {
		return memory.NewHost(opts...), nil, nil
	}

	text := ""
	if body.Selection != nil {
		clean, err := router.SanitizeInput(*body.Selection, limit)
		if err != nil {
			return nil, nil, err
		}
		text = clean
	}
	doc := memory.NewDocument(text)
	if body.Cursor != nil {
		if err := doc.MoveCursor(*body.Cursor); err != nil {
			return nil, nil, err
		}
	} else if err := doc.Select(domain.Range{Start: 0, End: len(text)}); err != nil {
		return nil, nil, err
	}
	return memory.NewHost(append(opts, memory.WithDocument(doc))...), doc, nil
}

func statusCode(out domain.Outcome) int {
	if !out.Failed() {
		return http.StatusOK
	}
	switch {
	case errors.Is(out.Err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(out.Err, domain.ErrNoActiveDocument), errors.Is(out.Err, domain.ErrStaleSelection):
		return http.StatusConflict
	case errors.Is(out.Err, domain.ErrInputTooLarge), errors.Is(out.Err, domain.ErrInvalidUTF8):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetLog handles the GET /log request.
func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	lines, err := s.Log.Lines(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Log error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetLog failed", "error", err)
		return
	}
	if lines == nil {
		lines = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LogResponse{Name: s.Log.Name(), Lines: lines}); err != nil {
		s.logger.Error("GetLog response encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}

	resp := map[string]string{
		"app":         "unixtime-http",
		"version":     strings.TrimSpace(unixtime.Version),
		"api_version": apiVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
