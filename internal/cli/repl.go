package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/internal/presentation/tui"
	"github.com/aretw0/unixtime/pkg/adapters/terminal"
	"github.com/aretw0/unixtime/pkg/domain"
)

// replCommands maps REPL shorthands to commands. Full and short command IDs also work.
var replCommands = map[string]domain.CommandID{
	"human": domain.CommandUnixToHuman,
	"ts":    domain.CommandHumanToUnix,
}

// RunREPL reads commands from stdin until quit, EOF or a signal.
// The log lives as long as the session.
func RunREPL(opts Options) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	env, err := Setup(sigCtx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	host := terminal.NewHost(opts.stdin(), opts.stdout(),
		terminal.WithLog(env.Log),
		terminal.WithNoticeWriter(opts.stderr()),
	)
	s := &session{env: env, host: host, out: opts.stdout()}
	return s.run(sigCtx)
}

type session struct {
	env  *Env
	host *terminal.Host
	out  io.Writer
}

func (s *session) run(ctx *SignalContext) error {
	tui.PrintBanner(s.out, unixtime.Version)

	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.host.ReadLine(ctx)
		if err != nil {
			if isInterrupted(err) {
				fmt.Fprintln(s.out)
				printSystemMessage(s.out, "Bye!")
				return nil
			}
			return err
		}
		if quit := s.dispatch(ctx, line); quit {
			printSystemMessage(s.out, "Bye!")
			return nil
		}
	}
}

// dispatch runs one REPL line and reports whether the session should end.
func (s *session) dispatch(ctx context.Context, line string) bool {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch word {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case ":log":
		s.showLog(ctx)
		return false
	case "now":
		// The terminal has no document to insert into, so the value is just printed.
		fmt.Fprintln(s.out, s.env.Utility.Now())
		return false
	case "help", "?":
		fmt.Fprintln(s.out, "now | human [timestamp] | ts [date] | :log | quit")
		return false
	}

	cmd, ok := replCommands[word]
	if !ok {
		var err error
		if cmd, err = domain.ParseCommand(word); err != nil {
			s.host.ShowError(ctx, domain.UserMessage(err))
			return false
		}
	}

	if arg = strings.TrimSpace(arg); arg != "" {
		s.host.SetAnswer(arg)
	}

	out, err := s.env.Utility.Execute(ctx, s.host, string(cmd))
	if err != nil {
		s.host.ShowError(ctx, domain.UserMessage(err))
		return false
	}
	s.env.Logger.Debug("REPL Command", "command", cmd, "status", out.Status)
	return false
}

func (s *session) showLog(ctx context.Context) {
	lines, err := s.env.Log.Lines(ctx)
	if err != nil {
		s.host.ShowError(ctx, domain.UserMessage(err))
		return
	}
	fmt.Fprint(s.out, tui.RenderLog(tui.NewRenderer(), s.env.Log.Name(), lines))
}
