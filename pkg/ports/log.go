package ports

import "context"

// OutputLog is a named, append-only display surface shared by every
// invocation in a process. Appends must be safe for concurrent use.
type OutputLog interface {
	Name() string

	// AppendLine adds one line to the end of the log.
	AppendLine(ctx context.Context, line string) error

	// Show brings the log to the foreground.
	Show(ctx context.Context) error

	// Lines returns every line appended so far, oldest first.
	Lines(ctx context.Context) ([]string, error)
}
