package router

import (
	"log/slog"

	"github.com/aretw0/unixtime/pkg/domain"
)

// Option defines a functional option for configuring the Router.
type Option func(*Router)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Router) {
		r.hooks = r.hooks.Merge(hooks)
	}
}
