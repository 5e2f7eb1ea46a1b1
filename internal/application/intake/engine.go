// Package intake drives the per-chat ticket-intake conversation: a fixed
// sequence of prompts (email verification, summary, description, business
// unit, phone, optional photo) ending in exactly one ticket submission.
package intake

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// Notifier delivers prompts to the chat. Fire-and-forget from the engine's
// perspective: failures are logged, never retried.
type Notifier interface {
	SendPrompt(ctx context.Context, chatID int64, text string, kb domain.Keyboard) error
}

// TicketSubmitter creates the issue in the external tracker.
type TicketSubmitter interface {
	Submit(ctx context.Context, t *domain.Ticket) (*domain.CreatedTicket, error)
}

// Mailer sends the verification-code email.
type Mailer interface {
	SendVerificationEmail(to string, code int) error
}

// UserDirectory persists which chats have proven a corporate email.
type UserDirectory interface {
	Get(ctx context.Context, chatID int64) (*domain.VerifiedUser, error)
	Put(ctx context.Context, u *domain.VerifiedUser) error
	Delete(ctx context.Context, chatID int64) error
}

// MessageLog is the append-only audit trail of inbound messages.
type MessageLog interface {
	Append(ctx context.Context, chatID int64, text string) error
}

// PhotoFetcher downloads the largest variant of a chat photo.
type PhotoFetcher interface {
	FetchLargest(ctx context.Context, ref domain.PhotoRef) (data []byte, filename string, err error)
}

// ImageStore keeps an audit copy of every photo attached to a ticket.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Alerter notifies the helpdesk team about failed submissions. Optional.
type Alerter interface {
	Alert(ctx context.Context, subject, message string) error
}

// SessionStore holds in-flight conversations.
type SessionStore interface {
	Get(chatID int64) (*domain.Session, bool)
	Put(sess *domain.Session)
	Delete(chatID int64)
}

// Codes issues and checks email-verification challenges.
type Codes interface {
	Issue(chatID int64, email string) (int, error)
	Check(chatID int64, candidate string) (*domain.Challenge, bool)
	Drop(chatID int64)
}

// Deps holds every collaborator the engine needs. All of them are faked in
// tests; the engine itself performs no I/O of its own.
type Deps struct {
	Sessions  SessionStore
	Codes     Codes
	Users     UserDirectory
	Log       MessageLog
	Notifier  Notifier
	Mailer    Mailer
	Submitter TicketSubmitter
	Photos    PhotoFetcher
	Images    ImageStore
	Alerter   Alerter // may be nil
}

// Options carries the flow's fixed configuration.
type Options struct {
	AllowedEmailDomains []string
	BusinessUnits       []string
	Queue               string
	TrackerBrowseURL    string // base URL for user-facing ticket links
}

// Engine is the conversation state machine. One instance serves all chats;
// per-chat state lives in the SessionStore. Handling never panics and never
// returns an error upward — every failure degrades to a message in the chat.
type Engine struct {
	deps Deps
	opts Options
}

func NewEngine(deps Deps, opts Options) *Engine {
	if opts.TrackerBrowseURL == "" {
		opts.TrackerBrowseURL = "https://tracker.yandex.ru/"
	}
	return &Engine{deps: deps, opts: opts}
}

// HandleEvent consumes one inbound chat event. The chat transport delivers
// events for a single chat serially, so no per-session locking is needed
// here.
func (e *Engine) HandleEvent(ctx context.Context, ev domain.Event) {
	if ev.Kind != domain.EventPhoto && ev.Text != "" {
		if err := e.deps.Log.Append(ctx, ev.ChatID, ev.Text); err != nil {
			slog.Warn("message log append failed", "chat_id", ev.ChatID, "err", err)
		}
	}

	// Global transitions, valid regardless of conversation state.
	if ev.Kind == domain.EventCommand {
		switch ev.Command {
		case domain.CmdStart:
			e.handleStart(ctx, ev.ChatID)
			return
		case domain.CmdCreateTask:
			e.handleCreateTask(ctx, ev.ChatID)
			return
		case domain.CmdCancel:
			e.handleCancel(ctx, ev.ChatID)
			return
		case domain.CmdLogout:
			e.handleLogout(ctx, ev.ChatID)
			return
		}
	}

	sess, ok := e.deps.Sessions.Get(ev.ChatID)
	if !ok {
		e.say(ctx, ev.ChatID, msgMenu, menuKeyboard())
		return
	}

	switch sess.State {
	case domain.StateAwaitingEmail:
		e.stepEmail(ctx, sess, ev)
	case domain.StateAwaitingCode:
		e.stepCode(ctx, sess, ev)
	case domain.StateAwaitingSummary:
		e.stepSummary(ctx, sess, ev)
	case domain.StateAwaitingDescription:
		e.stepDescription(ctx, sess, ev)
	case domain.StateAwaitingBusinessUnit:
		e.stepBusinessUnit(ctx, sess, ev)
	case domain.StateAwaitingPhone:
		e.stepPhone(ctx, sess, ev)
	case domain.StateAwaitingImage:
		e.stepImage(ctx, sess, ev)
	default:
		// Unknown state means a corrupted session. Reset rather than trap
		// the user.
		e.deps.Sessions.Delete(ev.ChatID)
		e.say(ctx, ev.ChatID, msgMenu, menuKeyboard())
	}
}

func (e *Engine) handleStart(ctx context.Context, chatID int64) {
	e.deps.Sessions.Delete(chatID)
	if e.isVerified(ctx, chatID) {
		e.say(ctx, chatID, msgMenu, menuKeyboard())
		return
	}
	e.deps.Sessions.Put(domain.NewSession(chatID, domain.StateAwaitingEmail, domain.IntentLogin))
	e.say(ctx, chatID, msgAskEmailFirst, domain.RemoveKeyboard())
}

func (e *Engine) handleCreateTask(ctx context.Context, chatID int64) {
	if !e.isVerified(ctx, chatID) {
		e.deps.Sessions.Put(domain.NewSession(chatID, domain.StateAwaitingEmail, domain.IntentTicket))
		e.say(ctx, chatID, msgAskEmailFirst, domain.RemoveKeyboard())
		return
	}
	e.deps.Sessions.Put(domain.NewSession(chatID, domain.StateAwaitingSummary, domain.IntentTicket))
	e.say(ctx, chatID, msgAskSummary, cancelKeyboard())
}

// handleCancel is idempotent: cancelling with no active session still
// answers with the cancelled notice.
func (e *Engine) handleCancel(ctx context.Context, chatID int64) {
	e.deps.Sessions.Delete(chatID)
	e.say(ctx, chatID, msgCancelled, menuKeyboard())
}

func (e *Engine) handleLogout(ctx context.Context, chatID int64) {
	if err := e.deps.Users.Delete(ctx, chatID); err != nil {
		slog.Warn("verified user delete failed", "chat_id", chatID, "err", err)
	}
	e.deps.Codes.Drop(chatID)
	e.deps.Sessions.Delete(chatID)
	e.say(ctx, chatID, msgLoggedOut, menuKeyboard())
}

func (e *Engine) isVerified(ctx context.Context, chatID int64) bool {
	_, err := e.deps.Users.Get(ctx, chatID)
	if err == nil {
		return true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("user directory lookup failed", "chat_id", chatID, "err", err)
	}
	return false
}

// say delivers a prompt; delivery failures are logged and swallowed.
func (e *Engine) say(ctx context.Context, chatID int64, text string, kb domain.Keyboard) {
	if err := e.deps.Notifier.SendPrompt(ctx, chatID, text, kb); err != nil {
		slog.Warn("send prompt failed", "chat_id", chatID, "err", err)
	}
}
