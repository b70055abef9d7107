package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/unixtime/pkg/domain"
)

// Document is an editable text buffer with a selection and a cursor.
// Safe for concurrent use.
type Document struct {
	text   string
	sel    domain.Range
	cursor int
	mu     sync.Mutex
}

// NewDocument creates a document with the cursor at the end of text.
func NewDocument(text string) *Document {
	return &Document{
		text:   text,
		sel:    domain.Range{Start: len(text), End: len(text)},
		cursor: len(text),
	}
}

// Text returns the current contents.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Select sets the selection. The cursor moves to its end.
func (d *Document) Select(r domain.Range) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !r.Valid(len(d.text)) {
		return fmt.Errorf("range %d:%d outside document of %d bytes", r.Start, r.End, len(d.text))
	}
	d.sel = r
	d.cursor = r.End
	return nil
}

// MoveCursor collapses the selection at offset.
func (d *Document) MoveCursor(offset int) error {
	return d.Select(domain.Range{Start: offset, End: offset})
}

// Selection returns the current selection and the text it covers.
func (d *Document) Selection() domain.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return domain.Selection{Range: d.sel, Text: d.text[d.sel.Start:d.sel.End]}
}

// Cursor returns the cursor offset.
func (d *Document) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Replace swaps the captured selection for text. The capture must still
// describe the document; otherwise domain.ErrStaleSelection is returned.
// The new text becomes the selection.
func (d *Document) Replace(sel domain.Selection, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := sel.Range
	if !r.Valid(len(d.text)) || d.text[r.Start:r.End] != sel.Text {
		return domain.ErrStaleSelection
	}
	d.text = d.text[:r.Start] + text + d.text[r.End:]
	d.sel = domain.Range{Start: r.Start, End: r.Start + len(text)}
	d.cursor = d.sel.End
	return nil
}

// Insert writes text at the cursor and leaves the cursor after it.
func (d *Document) Insert(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	at := d.cursor
	if at < 0 || at > len(d.text) {
		return fmt.Errorf("cursor %d outside document of %d bytes", at, len(d.text))
	}
	d.text = d.text[:at] + text + d.text[at:]
	d.cursor = at + len(text)
	d.sel = domain.Range{Start: d.cursor, End: d.cursor}
	return nil
}
