package domain

// Sink is where a transform result is delivered.
type Sink string

const (
	SinkNone      Sink = ""
	SinkSelection Sink = "selection"
	SinkLog       Sink = "log"
	SinkCursor    Sink = "cursor"
)

// Status summarises how an invocation ended.
type Status string

const (
	StatusReplaced  Status = "replaced"
	StatusLogged    Status = "logged"
	StatusInserted  Status = "inserted"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// Outcome is the result of a single command invocation.
// Err is set only when Status is StatusError; it has already been shown to the user.
type Outcome struct {
	Command CommandID `json:"command"`
	Status  Status    `json:"status"`
	Sink    Sink      `json:"sink,omitempty"`
	Result  string    `json:"result,omitempty"`
	Err     error     `json:"-"`
}

// Failed reports whether the invocation reported an error.
func (o Outcome) Failed() bool {
	return o.Status == StatusError
}
