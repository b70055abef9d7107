package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/unixtime/internal/presentation/tui"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"golang.org/x/term"
)

// Host implements ports.Host for a plain terminal session.
// A terminal has no editable document, so conversions always land in the log.
type Host struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Notices io.Writer
	Styles  tui.Styles

	log         ports.OutputLog
	interactive bool
	answer      *string

	inputChan chan inputResult
	startOnce sync.Once

	// printed tracks how many log lines have already been echoed by Show.
	printed   int
	baselined bool
	headed    bool
	mu        sync.Mutex
}

// Option configures a Host.
type Option func(*Host)

// WithLog sets the output log. Defaults to an in-memory log.
func WithLog(log ports.OutputLog) Option {
	return func(h *Host) {
		h.log = log
	}
}

// WithStyles overrides the detected colour styles.
func WithStyles(s tui.Styles) Option {
	return func(h *Host) {
		h.Styles = s
	}
}

// WithNoticeWriter sends error and info messages somewhere other than the main writer.
func WithNoticeWriter(w io.Writer) Option {
	return func(h *Host) {
		h.Notices = w
	}
}

// WithAnswer pre-fills the next prompt, e.g. from a command-line argument.
// The prompt is then not shown at all.
func WithAnswer(text string) Option {
	return func(h *Host) {
		h.answer = &text
	}
}

// NewHost creates a terminal host reading r and writing w.
// nil r and w default to Stdin and Stdout.
func NewHost(r io.Reader, w io.Writer, opts ...Option) *Host {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &Host{
		Reader:      bufio.NewReader(r),
		Writer:      w,
		Notices:     w,
		Styles:      tui.NewStyles(),
		interactive: isTerminal(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = newDefaultLog()
	}
	return h
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetAnswer pre-fills the next prompt, like WithAnswer.
func (h *Host) SetAnswer(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.answer = &text
}

// Log returns the output log.
func (h *Host) Log() ports.OutputLog { return h.log }

func (h *Host) ActiveSelection(ctx context.Context) (domain.Selection, bool, error) {
	return domain.Selection{}, false, nil
}

func (h *Host) ReplaceSelection(ctx context.Context, sel domain.Selection, text string) error {
	return domain.ErrNoActiveDocument
}

func (h *Host) InsertAtCursor(ctx context.Context, text string) error {
	return domain.ErrNoActiveDocument
}

// Prompt reads one line. EOF and empty lines count as a cancelled prompt.
// Any other text, whitespace included, is returned without its line ending.
func (h *Host) Prompt(ctx context.Context, label string) (string, bool, error) {
	h.mu.Lock()
	answer := h.answer
	h.answer = nil
	h.mu.Unlock()
	if answer != nil {
		return *answer, *answer != "", nil
	}

	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if h.interactive {
		fmt.Fprint(h.Writer, h.Styles.Prompt(label))
	}

	text, err := h.readLine(ctx)
	if err != nil {
		if err == io.EOF {
			return "", false, nil
		}
		return "", false, err
	}
	return text, text != "", nil
}

type inputResult struct {
	text string
	err  error
}

func (h *Host) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump owns the reader so a cancelled read never swallows the next line.
func (h *Host) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

// ReadLine returns the next trimmed line of input, or io.EOF once input is exhausted.
func (h *Host) ReadLine(ctx context.Context) (string, error) {
	text, err := h.readLine(ctx)
	return strings.TrimSpace(text), err
}

func (h *Host) readLine(ctx context.Context) (string, error) {
	h.initPump()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}

// AppendLog appends line and echoes it. Lines already in a shared log
// before this host's first append are not echoed.
func (h *Host) AppendLog(ctx context.Context, line string) error {
	h.mu.Lock()
	baselined := h.baselined
	h.baselined = true
	h.mu.Unlock()
	if !baselined {
		existing, err := h.log.Lines(ctx)
		if err != nil {
			return err
		}
		h.mu.Lock()
		h.printed = len(existing)
		h.mu.Unlock()
	}

	if err := h.log.AppendLine(ctx, line); err != nil {
		return err
	}
	return h.Show(ctx)
}

// Show brings the log to the foreground by echoing lines not printed yet.
// The header is printed once, before the first line.
func (h *Host) Show(ctx context.Context) error {
	if err := h.log.Show(ctx); err != nil {
		return err
	}
	lines, err := h.log.Lines(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.printed > len(lines) {
		h.printed = 0
	}
	if !h.headed && len(lines) > h.printed && h.interactive {
		h.headed = true
		fmt.Fprintln(h.Writer, h.Styles.Header(h.log.Name()))
	}
	for _, l := range lines[h.printed:] {
		fmt.Fprintln(h.Writer, l)
	}
	h.printed = len(lines)
	return nil
}

func (h *Host) ShowError(ctx context.Context, msg string) {
	fmt.Fprintln(h.Notices, h.Styles.Error(msg))
}

func (h *Host) ShowInfo(ctx context.Context, msg string) {
	fmt.Fprintln(h.Notices, h.Styles.Info(msg))
}
