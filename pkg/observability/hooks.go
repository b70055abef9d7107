package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/unixtime/pkg/domain"
)

// LogHooks returns hooks that trace every command through logger at Debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Command Enter", "command", e.Command)
		},
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			if e.Err != nil {
				logger.Debug("Command Leave (Error)", "command", e.Command, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Debug("Command Leave", "command", e.Command, "status", e.Status, "duration", e.Duration)
		},
	}
}
