package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/unixtime/pkg/adapters/file"
	"github.com/aretw0/unixtime/pkg/adapters/terminal"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

// CommandOptions selects where a one-shot command reads and writes.
type CommandOptions struct {
	// Value answers the prompt. Nil means prompt on stdin.
	Value *string
	// File makes a document on disk the active editor.
	File string
	// Selection is "start:end" or a single cursor offset inside File.
	Selection string
}

// RunCommand executes one command against the terminal, or against File when set.
func RunCommand(opts Options, id domain.CommandID, cmdOpts CommandOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	env, err := Setup(sigCtx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	termOpts := []terminal.Option{
		terminal.WithLog(env.Log),
		terminal.WithNoticeWriter(opts.stderr()),
	}
	if cmdOpts.Value != nil {
		termOpts = append(termOpts, terminal.WithAnswer(*cmdOpts.Value))
	}
	var host ports.Host = terminal.NewHost(opts.stdin(), opts.stdout(), termOpts...)

	if cmdOpts.File != "" {
		sel := domain.Range{}
		if cmdOpts.Selection != "" {
			sel, err = file.ParseRange(cmdOpts.Selection)
			if err != nil {
				return err
			}
		}
		fileHost, err := file.NewHost(cmdOpts.File, sel, host)
		if err != nil {
			return err
		}
		host = fileHost
	}

	out, err := env.Utility.Execute(sigCtx, host, string(id))
	if err != nil {
		return err
	}
	env.Logger.Debug("Command Finished", "command", id, "status", out.Status)

	if sigCtx.Signal() != nil {
		fmt.Fprintln(opts.stdout())
		printSystemMessage(opts.stdout(), "Interrupted.")
	}
	return outcomeError(out)
}

// PrintNow writes the current timestamp to stdout without a host.
func PrintNow(opts Options) error {
	env, err := Setup(context.Background(), opts)
	if err != nil {
		return err
	}
	defer env.Close()

	fmt.Fprintln(opts.stdout(), env.Utility.Now())
	return nil
}
