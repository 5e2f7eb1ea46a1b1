package domain

// EventKind discriminates inbound chat events.
type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventPhoto
)

// Command is a recognized bot command, either a slash command or a
// reply-keyboard button press.
type Command string

const (
	CmdStart      Command = "start"
	CmdCreateTask Command = "create_task"
	CmdCancel     Command = "cancel"
	CmdBack       Command = "back"
	CmdSkip       Command = "skip"
	CmdLogout     Command = "logout"
)

// PhotoRef is an opaque reference to a photo held by the chat transport.
// FileID addresses the largest available resolution of the photo.
type PhotoRef struct {
	FileID string
}

// Event is a tagged inbound chat event. Exactly one of Command, Text or
// Photo is meaningful, selected by Kind.
type Event struct {
	ChatID  int64
	Kind    EventKind
	Command Command
	Text    string
	Photo   PhotoRef
}

// NewTextEvent builds a plain-text event.
func NewTextEvent(chatID int64, text string) Event {
	return Event{ChatID: chatID, Kind: EventText, Text: text}
}

// NewCommandEvent builds a command event.
func NewCommandEvent(chatID int64, cmd Command) Event {
	return Event{ChatID: chatID, Kind: EventCommand, Command: cmd}
}

// NewPhotoEvent builds a photo event.
func NewPhotoEvent(chatID int64, ref PhotoRef) Event {
	return Event{ChatID: chatID, Kind: EventPhoto, Photo: ref}
}
