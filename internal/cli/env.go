package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/internal/config"
	"github.com/aretw0/unixtime/pkg/observability"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options contains the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
	Location   string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// Env is everything a command needs once configuration is resolved.
type Env struct {
	Config   config.Config
	Logger   *slog.Logger
	Utility  *unixtime.Utility
	Log      ports.OutputLog
	Registry *prometheus.Registry

	closers []func() error
}

// Setup loads the configuration and builds the Utility and the output log.
// Flags override the environment, which overrides the file.
func Setup(ctx context.Context, opts Options) (*Env, error) {
	path, required := opts.ConfigPath, opts.ConfigPath != ""
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if opts.Location != "" {
		cfg.Location = opts.Location
	}
	if opts.Debug {
		cfg.Debug = true
	}

	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	logger := createLogger(cfg.Debug, opts.stderr())

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	utilOpts := []unixtime.Option{
		unixtime.WithLogger(logger),
		unixtime.WithLocation(loc),
		unixtime.WithMaxInputSize(cfg.MaxInputSize),
		unixtime.WithLifecycleHooks(metrics.Hooks()),
	}
	if cfg.Debug {
		utilOpts = append(utilOpts, unixtime.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	env := &Env{
		Config:   cfg,
		Logger:   logger,
		Utility:  unixtime.New(utilOpts...),
		Registry: reg,
	}

	log, closer, err := newOutputLog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	env.Log = log
	if closer != nil {
		env.closers = append(env.closers, closer)
	}

	logger.Debug("Environment Ready", "backend", cfg.LogBackend, "location", loc.String())
	return env, nil
}

// Close releases backend connections.
func (e *Env) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
