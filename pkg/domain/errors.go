package domain

import "errors"

// ErrNoActiveDocument is returned when a command needs an editable document and none is active.
var ErrNoActiveDocument = errors.New("no active text editor")

// ErrInvalidInput is returned by a transform when the text cannot be interpreted.
var ErrInvalidInput = errors.New("invalid input")

// ErrStaleSelection is returned when the captured selection no longer matches the document.
var ErrStaleSelection = errors.New("selection changed before it could be replaced")

// ErrUnknownCommand is returned when a command ID is not registered.
var ErrUnknownCommand = errors.New("unknown command")

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// userMessages holds the text shown to users for known sentinels.
var userMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidInput, "Invalid input"},
	{ErrNoActiveDocument, "There is no active text editor"},
	{ErrStaleSelection, "The selection changed before it could be replaced"},
	{ErrInputTooLarge, "Input exceeds maximum allowed size"},
	{ErrInvalidUTF8, "Input contains invalid UTF-8 sequences"},
	{ErrUnknownCommand, "Unknown command"},
}

// UserMessage returns the text shown to the user for err.
// Known sentinels map to a fixed message so wrapping context never leaks into the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
