package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/aretw0/unixtime/pkg/transform"
)

// Router routes one input through a transform to the right sink.
// It holds no per-invocation state and is safe for concurrent use.
type Router struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates a Router.
func New(opts ...Option) *Router {
	r := &Router{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transform acquires input from host, applies fn and delivers the result.
// label is shown when the host has to prompt.
func (r *Router) Transform(ctx context.Context, host ports.Host, cmd domain.CommandID, label string, fn transform.Transformer) domain.Outcome {
	return r.observe(ctx, cmd, func() domain.Outcome {
		return r.transform(ctx, host, cmd, label, fn)
	})
}

// Insert writes the produced text at the cursor of the active document.
// Unlike Transform it has no log fallback.
func (r *Router) Insert(ctx context.Context, host ports.Host, cmd domain.CommandID, produce func() string) domain.Outcome {
	return r.observe(ctx, cmd, func() domain.Outcome {
		out := domain.Outcome{Command: cmd}
		text := produce()
		if err := host.InsertAtCursor(ctx, text); err != nil {
			return r.fail(ctx, host, out, err)
		}
		r.logger.Debug("Delivered", "command", cmd, "sink", domain.SinkCursor)
		out.Status = domain.StatusInserted
		out.Sink = domain.SinkCursor
		out.Result = text
		return out
	})
}

func (r *Router) transform(ctx context.Context, host ports.Host, cmd domain.CommandID, label string, fn transform.Transformer) domain.Outcome {
	out := domain.Outcome{Command: cmd}

	sel, hasDocument, err := host.ActiveSelection(ctx)
	if err != nil {
		return r.fail(ctx, host, out, err)
	}

	var input string
	if hasDocument && !sel.IsEmpty() {
		input = sel.Text
		r.logger.Debug("Input Acquired", "command", cmd, "source", "selection", "range", sel.Range)
	} else {
		text, ok, err := host.Prompt(ctx, label)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return r.cancelled(out)
			}
			return r.fail(ctx, host, out, err)
		}
		if !ok || text == "" {
			return r.cancelled(out)
		}
		// Typed text reaches the transform as-is; it does all validation.
		input = text
		r.logger.Debug("Input Acquired", "command", cmd, "source", "prompt", "size", len(input))
	}

	result, err := fn(input)
	if err != nil {
		r.logger.Debug("Transform Failed", "command", cmd, "err", err)
		return r.fail(ctx, host, out, err)
	}

	if hasDocument {
		// The range captured above is the target, even if the prompt let the document move on.
		if err := host.ReplaceSelection(ctx, sel, result); err != nil {
			return r.fail(ctx, host, out, err)
		}
		host.ShowInfo(ctx, domain.MessageSelectionReplaced)
		out.Status = domain.StatusReplaced
		out.Sink = domain.SinkSelection
	} else {
		if err := host.AppendLog(ctx, result); err != nil {
			return r.fail(ctx, host, out, err)
		}
		out.Status = domain.StatusLogged
		out.Sink = domain.SinkLog
	}
	out.Result = result
	r.logger.Debug("Delivered", "command", cmd, "sink", out.Sink)
	return out
}

func (r *Router) cancelled(out domain.Outcome) domain.Outcome {
	r.logger.Debug("No Input", "command", out.Command)
	out.Status = domain.StatusCancelled
	return out
}

func (r *Router) fail(ctx context.Context, host ports.Host, out domain.Outcome, err error) domain.Outcome {
	host.ShowError(ctx, domain.UserMessage(err))
	out.Status = domain.StatusError
	out.Err = err
	return out
}

func (r *Router) observe(ctx context.Context, cmd domain.CommandID, run func() domain.Outcome) domain.Outcome {
	start := time.Now()
	r.logger.Debug("Command Start", "command", cmd)
	if r.hooks.OnCommandStart != nil {
		r.hooks.OnCommandStart(ctx, &domain.CommandEvent{
			Timestamp: start,
			Type:      domain.EventCommandStart,
			Command:   cmd,
		})
	}

	out := run()

	if r.hooks.OnCommandEnd != nil {
		r.hooks.OnCommandEnd(ctx, &domain.CommandEvent{
			Timestamp: time.Now(),
			Type:      domain.EventCommandEnd,
			Command:   cmd,
			Status:    out.Status,
			Duration:  time.Since(start),
			Err:       out.Err,
		})
	}
	return out
}
