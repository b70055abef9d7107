package memory

import (
	"context"
	"sync"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

// Answer is a scripted prompt response. Cancel simulates dismissing the prompt.
type Answer struct {
	Text   string
	Cancel bool
}

// Host implements ports.Host entirely in memory.
// It records every prompt and message so tests can assert on them.
type Host struct {
	doc *Document
	log ports.OutputLog

	answers  []Answer
	onPrompt func(label string)

	mu      sync.Mutex
	prompts []string
	errors  []string
	infos   []string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithDocument makes doc the active editable document.
func WithDocument(doc *Document) HostOption {
	return func(h *Host) {
		h.doc = doc
	}
}

// WithLog sets the output log. Defaults to a fresh Log.
func WithLog(log ports.OutputLog) HostOption {
	return func(h *Host) {
		h.log = log
	}
}

// WithAnswers queues prompt answers in order.
// Once exhausted, prompts behave as if cancelled.
func WithAnswers(answers ...string) HostOption {
	return func(h *Host) {
		for _, a := range answers {
			h.answers = append(h.answers, Answer{Text: a})
		}
	}
}

// WithScriptedAnswers queues answers that may include cancellations.
func WithScriptedAnswers(answers ...Answer) HostOption {
	return func(h *Host) {
		h.answers = append(h.answers, answers...)
	}
}

// WithPromptHook runs fn while a prompt is open, before it is answered.
func WithPromptHook(fn func(label string)) HostOption {
	return func(h *Host) {
		h.onPrompt = fn
	}
}

// NewHost creates an in-memory host. Without WithDocument no editor is active.
func NewHost(opts ...HostOption) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = NewLog(domain.LogName)
	}
	return h
}

func (h *Host) ActiveSelection(ctx context.Context) (domain.Selection, bool, error) {
	if h.doc == nil {
		return domain.Selection{}, false, nil
	}
	return h.doc.Selection(), true, nil
}

func (h *Host) ReplaceSelection(ctx context.Context, sel domain.Selection, text string) error {
	if h.doc == nil {
		return domain.ErrNoActiveDocument
	}
	return h.doc.Replace(sel, text)
}

func (h *Host) InsertAtCursor(ctx context.Context, text string) error {
	if h.doc == nil {
		return domain.ErrNoActiveDocument
	}
	return h.doc.Insert(text)
}

func (h *Host) Prompt(ctx context.Context, label string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	h.mu.Lock()
	h.prompts = append(h.prompts, label)
	var next Answer
	exhausted := len(h.answers) == 0
	if !exhausted {
		next = h.answers[0]
		h.answers = h.answers[1:]
	}
	h.mu.Unlock()

	if h.onPrompt != nil {
		h.onPrompt(label)
	}
	if exhausted || next.Cancel || next.Text == "" {
		return "", false, nil
	}
	return next.Text, true, nil
}

func (h *Host) AppendLog(ctx context.Context, line string) error {
	if err := h.log.AppendLine(ctx, line); err != nil {
		return err
	}
	return h.log.Show(ctx)
}

func (h *Host) ShowError(ctx context.Context, msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *Host) ShowInfo(ctx context.Context, msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.infos = append(h.infos, msg)
}

// Log returns the output log the host appends to.
func (h *Host) Log() ports.OutputLog { return h.log }

// Prompts returns the labels of every prompt shown.
func (h *Host) Prompts() []string { return h.snapshot(&h.prompts) }

// Errors returns every error message shown.
func (h *Host) Errors() []string { return h.snapshot(&h.errors) }

// Infos returns every info message shown.
func (h *Host) Infos() []string { return h.snapshot(&h.infos) }

func (h *Host) snapshot(src *[]string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(*src))
	copy(out, *src)
	return out
}
