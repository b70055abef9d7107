package unixtime

import (
	"context"
	_ "embed"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/aretw0/unixtime/pkg/registry"
	"github.com/aretw0/unixtime/pkg/router"
	"github.com/aretw0/unixtime/pkg/transform"
)

// Version is the release of the toolkit.
//
//go:embed VERSION
var Version string

// Utility is the high-level entry point for the unixtime library.
// It binds the three commands to a router and a converter; hosts are passed per call.
type Utility struct {
	router       *router.Router
	commands     *registry.Registry
	converter    *transform.Converter
	clock        transform.Clock
	location     *time.Location
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	maxInputSize int
}

// Option defines a functional option for configuring the Utility.
type Option func(*Utility)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Utility) {
		u.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(u *Utility) {
		u.hooks = u.hooks.Merge(hooks)
	}
}

// WithLocation sets the zone dates are rendered in and zone-less input is parsed in.
func WithLocation(loc *time.Location) Option {
	return func(u *Utility) {
		u.location = loc
	}
}

// WithClock replaces the wall clock used by InsertTimestamp.
func WithClock(clock transform.Clock) Option {
	return func(u *Utility) {
		u.clock = clock
	}
}

// WithMaxInputSize limits the size of input accepted from remote callers (HTTP and MCP).
func WithMaxInputSize(n int) Option {
	return func(u *Utility) {
		u.maxInputSize = n
	}
}

// New creates a Utility.
func New(opts ...Option) *Utility {
	u := &Utility{
		clock:  transform.SystemClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(u)
	}

	u.converter = transform.NewConverter(u.location)
	u.router = router.New(
		router.WithLogger(u.logger),
		router.WithLifecycleHooks(u.hooks),
	)

	u.commands = registry.NewRegistry()
	u.commands.Register(domain.CommandInsertTimestamp, u.InsertTimestamp)
	u.commands.Register(domain.CommandUnixToHuman, u.ConvertUnixToHuman)
	u.commands.Register(domain.CommandHumanToUnix, u.ConvertToUnixTimestamp)
	return u
}

// Converter exposes the transforms for callers that don't need a host.
func (u *Utility) Converter() *transform.Converter {
	return u.converter
}

// MaxInputSize is the configured input limit. Zero means router.MaxInputSize.
func (u *Utility) MaxInputSize() int {
	return u.maxInputSize
}

// Now returns the current whole seconds since the epoch.
func (u *Utility) Now() string {
	return transform.Now(u.clock)
}

// InsertTimestamp inserts the current timestamp at the cursor of the active document.
func (u *Utility) InsertTimestamp(ctx context.Context, host ports.Host) domain.Outcome {
	return u.router.Insert(ctx, host, domain.CommandInsertTimestamp, u.Now)
}

// ConvertUnixToHuman converts the selection (or prompted text) from a timestamp to a date.
func (u *Utility) ConvertUnixToHuman(ctx context.Context, host ports.Host) domain.Outcome {
	return u.router.Transform(ctx, host, domain.CommandUnixToHuman, domain.PromptTimestamp, u.converter.TimestampToHuman)
}

// ConvertToUnixTimestamp converts the selection (or prompted text) from a date to a timestamp.
func (u *Utility) ConvertToUnixTimestamp(ctx context.Context, host ports.Host) domain.Outcome {
	return u.router.Transform(ctx, host, domain.CommandHumanToUnix, domain.PromptTimestamp, u.converter.HumanToTimestamp)
}

// Execute runs the command registered under id (full or short form).
func (u *Utility) Execute(ctx context.Context, host ports.Host, id string) (domain.Outcome, error) {
	return u.commands.Execute(ctx, host, id)
}

// Commands lists the registered command IDs.
func (u *Utility) Commands() []domain.CommandID {
	return u.commands.IDs()
}
