package file

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

// Host implements ports.Host for a document stored on disk.
// Document capabilities act on the file; prompts, the log and messages are
// delegated to ui (usually a terminal host).
type Host struct {
	path string
	sel  domain.Range
	ui   ports.Host
	mu   sync.Mutex
}

// NewHost opens path as the active document with sel selected.
// An empty sel is a cursor at sel.Start. The file must exist and sel must fit.
func NewHost(path string, sel domain.Range, ui ports.Host) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	if !sel.Valid(len(data)) {
		return nil, fmt.Errorf("selection %d:%d outside %s (%d bytes)", sel.Start, sel.End, path, len(data))
	}
	return &Host{path: path, sel: sel, ui: ui}, nil
}

// Path returns the document path.
func (h *Host) Path() string { return h.path }

func (h *Host) ActiveSelection(ctx context.Context) (domain.Selection, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, err := os.ReadFile(h.path)
	if err != nil {
		return domain.Selection{}, false, fmt.Errorf("failed to read document: %w", err)
	}
	if !h.sel.Valid(len(data)) {
		return domain.Selection{}, false, domain.ErrStaleSelection
	}
	return domain.Selection{Range: h.sel, Text: string(data[h.sel.Start:h.sel.End])}, true, nil
}

// ReplaceSelection re-reads the file and only writes if the captured range
// still holds the captured text.
func (h *Host) ReplaceSelection(ctx context.Context, sel domain.Selection, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, err := os.ReadFile(h.path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	r := sel.Range
	if !r.Valid(len(data)) || string(data[r.Start:r.End]) != sel.Text {
		return domain.ErrStaleSelection
	}

	out := make([]byte, 0, len(data)-r.Len()+len(text))
	out = append(out, data[:r.Start]...)
	out = append(out, text...)
	out = append(out, data[r.End:]...)
	if err := writeAtomic(h.path, out); err != nil {
		return err
	}
	h.sel = domain.Range{Start: r.Start, End: r.Start + len(text)}
	return nil
}

// InsertAtCursor inserts at the end of the current selection.
func (h *Host) InsertAtCursor(ctx context.Context, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, err := os.ReadFile(h.path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	at := h.sel.End
	if at > len(data) {
		return fmt.Errorf("cursor %d outside %s (%d bytes)", at, h.path, len(data))
	}

	out := make([]byte, 0, len(data)+len(text))
	out = append(out, data[:at]...)
	out = append(out, text...)
	out = append(out, data[at:]...)
	if err := writeAtomic(h.path, out); err != nil {
		return err
	}
	h.sel = domain.Range{Start: at + len(text), End: at + len(text)}
	return nil
}

func (h *Host) Prompt(ctx context.Context, label string) (string, bool, error) {
	return h.ui.Prompt(ctx, label)
}

func (h *Host) AppendLog(ctx context.Context, line string) error {
	return h.ui.AppendLog(ctx, line)
}

func (h *Host) ShowError(ctx context.Context, msg string) {
	h.ui.ShowError(ctx, msg)
}

func (h *Host) ShowInfo(ctx context.Context, msg string) {
	h.ui.ShowInfo(ctx, msg)
}
