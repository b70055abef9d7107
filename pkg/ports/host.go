package ports

import (
	"context"

	"github.com/aretw0/unixtime/pkg/domain"
)

// Host is the capability surface of the editor running a command.
// Implementations are not required to be safe for concurrent use unless stated.
type Host interface {
	// ActiveSelection returns the selection of the active editable document.
	// ok is false when no editable document is active. An active document
	// with nothing selected returns ok with an empty selection at the cursor.
	ActiveSelection(ctx context.Context) (sel domain.Selection, ok bool, err error)

	// ReplaceSelection replaces the previously captured selection with text.
	// Returns domain.ErrStaleSelection if the host can tell the capture is no longer valid.
	ReplaceSelection(ctx context.Context, sel domain.Selection, text string) error

	// InsertAtCursor inserts text at the cursor of the active document.
	// Returns domain.ErrNoActiveDocument when there is none.
	InsertAtCursor(ctx context.Context, text string) error

	// Prompt asks the user for one line of free text.
	// ok is false when the user cancelled or submitted nothing.
	Prompt(ctx context.Context, label string) (text string, ok bool, err error)

	// AppendLog appends a line to the shared output log and brings it to the foreground.
	AppendLog(ctx context.Context, line string) error

	ShowError(ctx context.Context, msg string)
	ShowInfo(ctx context.Context, msg string)
}
