package domain

// EventKind distinguishes the inputs the dialogue reacts to.
type EventKind string

const (
	// EventBegin starts a fresh trip interview, replacing any prior session.
	EventBegin EventKind = "begin"
	// EventCancel aborts the interview from any state.
	EventCancel EventKind = "cancel"
	// EventText carries a plain user answer for the current state.
	EventText EventKind = "text"
)

// Event is one inbound user input paired with its kind.
type Event struct {
	Kind EventKind
	Text string
}

// Begin returns the interview start event.
func Begin() Event { return Event{Kind: EventBegin} }

// Cancel returns the interview abort event.
func Cancel() Event { return Event{Kind: EventCancel} }

// Text wraps a raw message as an answer event.
func Text(s string) Event { return Event{Kind: EventText, Text: s} }

// Reply is the single outbound instruction produced for one event.
// An empty Text means the input was ignored (no message is sent).
type Reply struct {
	Text     string
	Markdown bool
}
