package domain

import "time"

// State is the current step of an intake conversation. The set is closed:
// every engine dispatch switches over it exhaustively. Absence of a Session
// is the implicit Idle state.
type State string

const (
	StateAwaitingEmail        State = "awaiting_email"
	StateAwaitingCode         State = "awaiting_code"
	StateAwaitingSummary      State = "awaiting_summary"
	StateAwaitingDescription  State = "awaiting_description"
	StateAwaitingBusinessUnit State = "awaiting_business_unit"
	StateAwaitingPhone        State = "awaiting_phone"
	StateAwaitingImage        State = "awaiting_image"
)

// Intent records why the user entered the email-verification branch, so the
// engine knows where to land after a successful code check.
type Intent string

const (
	// IntentLogin: verification was triggered by /start; the user returns
	// to the menu once verified.
	IntentLogin Intent = "login"
	// IntentTicket: verification was triggered by the create-task command;
	// the flow continues into the summary step.
	IntentTicket Intent = "ticket"
)

// Session is the per-chat conversation state. One Session exists per chat
// at most; it is owned exclusively by the intake engine and mutated in
// place between events. Fields beyond State are populated as the flow
// advances and read only by states that come after the one that set them.
type Session struct {
	ChatID       int64
	State        State
	Intent       Intent
	Email        string // set while a verification challenge is pending
	Summary      string
	Description  string
	BusinessUnit string
	Phone        string
	UpdatedAt    time.Time
}

// NewSession creates a session entering the given state.
func NewSession(chatID int64, state State, intent Intent) *Session {
	return &Session{
		ChatID:    chatID,
		State:     state,
		Intent:    intent,
		UpdatedAt: time.Now().UTC(),
	}
}

// Touch refreshes the idle-expiry clock.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
