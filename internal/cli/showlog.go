package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/unixtime/internal/presentation/tui"
)

// ShowLog prints the log. With follow it then streams new lines until
// interrupted, which only a shared (Redis) log supports.
func ShowLog(opts Options, follow bool) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	env, err := Setup(sigCtx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	lines, err := env.Log.Lines(sigCtx)
	if err != nil {
		return err
	}
	fmt.Fprint(opts.stdout(), tui.RenderLog(tui.NewRenderer(), env.Log.Name(), lines))

	if !follow {
		return nil
	}
	f, ok := env.Log.(follower)
	if !ok {
		return fmt.Errorf("--follow needs log_backend: redis")
	}
	stream, err := f.Follow(sigCtx)
	if err != nil {
		return err
	}
	for line := range stream {
		fmt.Fprintln(opts.stdout(), line)
	}
	return nil
}
