package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/tracker"
	"github.com/hobbs-it/helpdesk-bot/internal/pkg/id"
	"github.com/hobbs-it/helpdesk-bot/internal/pkg/validate"
)

func (e *Engine) stepEmail(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind != domain.EventText {
		e.say(ctx, sess.ChatID, msgAskEmailFirst, domain.RemoveKeyboard())
		return
	}
	email := strings.TrimSpace(ev.Text)
	if !validate.AllowedDomain(email, e.opts.AllowedEmailDomains) {
		e.say(ctx, sess.ChatID, e.msgBadDomain(), domain.RemoveKeyboard())
		return
	}

	code, err := e.deps.Codes.Issue(sess.ChatID, email)
	if err != nil {
		slog.Error("challenge issue failed", "chat_id", sess.ChatID, "err", err)
		e.say(ctx, sess.ChatID, msgMailFailed, domain.RemoveKeyboard())
		return
	}
	if err := e.deps.Mailer.SendVerificationEmail(email, code); err != nil {
		// No challenge without a delivered email: the user may resubmit the
		// address and get a fresh code.
		e.deps.Codes.Drop(sess.ChatID)
		slog.Error("verification email failed", "chat_id", sess.ChatID, "err",
			fmt.Errorf("%w: %s", domain.ErrMailDelivery, err))
		e.say(ctx, sess.ChatID, msgMailFailed, domain.RemoveKeyboard())
		return
	}

	sess.Email = email
	sess.State = domain.StateAwaitingCode
	e.deps.Sessions.Put(sess)
	e.say(ctx, sess.ChatID, msgCodeSent, domain.RemoveKeyboard())
}

func (e *Engine) stepCode(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack {
		sess.Email = ""
		sess.State = domain.StateAwaitingEmail
		e.deps.Sessions.Put(sess)
		e.say(ctx, sess.ChatID, msgAskEmailFirst, domain.RemoveKeyboard())
		return
	}
	if ev.Kind != domain.EventText {
		e.say(ctx, sess.ChatID, msgBadCode, domain.RemoveKeyboard())
		return
	}

	ch, ok := e.deps.Codes.Check(sess.ChatID, ev.Text)
	if !ok {
		// Challenge retained: the user may retry with the right code.
		e.say(ctx, sess.ChatID, msgBadCode, domain.RemoveKeyboard())
		return
	}

	user := &domain.VerifiedUser{ChatID: sess.ChatID, Email: ch.Email, CreatedAt: time.Now().UTC()}
	if err := e.deps.Users.Put(ctx, user); err != nil {
		slog.Error("verified user save failed", "chat_id", sess.ChatID, "err", err)
		e.say(ctx, sess.ChatID, msgTryLater, domain.RemoveKeyboard())
		return
	}
	e.deps.Codes.Drop(sess.ChatID)

	if sess.Intent == domain.IntentLogin {
		e.deps.Sessions.Delete(sess.ChatID)
		e.say(ctx, sess.ChatID, msgVerified, menuKeyboard())
		return
	}
	sess.State = domain.StateAwaitingSummary
	e.deps.Sessions.Put(sess)
	e.say(ctx, sess.ChatID, msgVerifiedAskSummary, cancelKeyboard())
}

func (e *Engine) stepSummary(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack {
		// First flow step: back is equivalent to cancelling.
		e.handleCancel(ctx, sess.ChatID)
		return
	}
	if ev.Kind != domain.EventText || !validate.NonEmpty(ev.Text) {
		e.say(ctx, sess.ChatID, msgAskSummary, cancelKeyboard())
		return
	}
	sess.Summary = strings.TrimSpace(ev.Text)
	sess.State = domain.StateAwaitingDescription
	e.deps.Sessions.Put(sess)
	e.say(ctx, sess.ChatID, msgAskDescription, backCancelKeyboard())
}

func (e *Engine) stepDescription(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack {
		sess.State = domain.StateAwaitingSummary
		e.deps.Sessions.Put(sess)
		e.say(ctx, sess.ChatID, msgAskSummary, cancelKeyboard())
		return
	}
	if ev.Kind != domain.EventText || !validate.NonEmpty(ev.Text) {
		e.say(ctx, sess.ChatID, msgAskDescription, backCancelKeyboard())
		return
	}
	sess.Description = strings.TrimSpace(ev.Text)
	sess.State = domain.StateAwaitingBusinessUnit
	e.deps.Sessions.Put(sess)
	e.say(ctx, sess.ChatID, msgAskUnit, e.unitsKeyboard())
}

func (e *Engine) stepBusinessUnit(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack {
		sess.State = domain.StateAwaitingDescription
		e.deps.Sessions.Put(sess)
		e.say(ctx, sess.ChatID, msgAskDescription, backCancelKeyboard())
		return
	}
	if ev.Kind == domain.EventText {
		unit := strings.TrimSpace(ev.Text)
		for _, u := range e.opts.BusinessUnits {
			if unit == u {
				sess.BusinessUnit = unit
				sess.State = domain.StateAwaitingPhone
				e.deps.Sessions.Put(sess)
				e.say(ctx, sess.ChatID, msgAskPhone, backCancelKeyboard())
				return
			}
		}
	}
	e.say(ctx, sess.ChatID, msgAskUnit, e.unitsKeyboard())
}

func (e *Engine) stepPhone(ctx context.Context, sess *domain.Session, ev domain.Event) {
	if ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack {
		sess.State = domain.StateAwaitingBusinessUnit
		e.deps.Sessions.Put(sess)
		e.say(ctx, sess.ChatID, msgAskUnit, e.unitsKeyboard())
		return
	}
	if ev.Kind != domain.EventText || !validate.Phone(ev.Text) {
		e.say(ctx, sess.ChatID, msgBadPhone, backCancelKeyboard())
		return
	}
	sess.Phone = strings.TrimSpace(ev.Text)
	sess.State = domain.StateAwaitingImage
	e.deps.Sessions.Put(sess)
	e.say(ctx, sess.ChatID, msgAskImage, imageKeyboard())
}

func (e *Engine) stepImage(ctx context.Context, sess *domain.Session, ev domain.Event) {
	switch {
	case ev.Kind == domain.EventCommand && ev.Command == domain.CmdBack:
		sess.State = domain.StateAwaitingPhone
		e.deps.Sessions.Put(sess)
		e.say(ctx, sess.ChatID, msgAskPhone, backCancelKeyboard())

	case ev.Kind == domain.EventCommand && ev.Command == domain.CmdSkip:
		e.submit(ctx, sess, nil)

	case ev.Kind == domain.EventPhoto:
		data, filename, err := e.deps.Photos.FetchLargest(ctx, ev.Photo)
		if err != nil {
			slog.Error("photo fetch failed", "chat_id", sess.ChatID, "err",
				fmt.Errorf("%w: %s", domain.ErrNotFound, err))
			e.say(ctx, sess.ChatID, msgImageFailed, imageKeyboard())
			return
		}
		key := fmt.Sprintf("%d/%s%s", sess.ChatID, id.New(), path.Ext(filename))
		if _, err := e.deps.Images.Upload(ctx, key, bytes.NewReader(data), "image/jpeg"); err != nil {
			// The tracker still gets the attachment; only the audit copy
			// is missing.
			slog.Warn("image store upload failed", "chat_id", sess.ChatID, "err", err)
		} else if err := e.deps.Log.Append(ctx, sess.ChatID, "[photo] "+key); err != nil {
			slog.Warn("message log append failed", "chat_id", sess.ChatID, "err", err)
		}
		e.submit(ctx, sess, &domain.Attachment{Filename: filename, Data: data})

	default:
		e.say(ctx, sess.ChatID, msgAskImage, imageKeyboard())
	}
}

// submit performs the single side-effecting action of the flow. Success or
// failure, the session is destroyed: there is no resume-from-failure.
func (e *Engine) submit(ctx context.Context, sess *domain.Session, att *domain.Attachment) {
	defer e.deps.Sessions.Delete(sess.ChatID)

	user, err := e.deps.Users.Get(ctx, sess.ChatID)
	if err != nil {
		slog.Error("verified user lookup failed at submission", "chat_id", sess.ChatID, "err", err)
		e.say(ctx, sess.ChatID, msgRestart, menuKeyboard())
		return
	}

	ticket := domain.BuildTicket(sess, user, e.opts.Queue, att)
	created, err := e.deps.Submitter.Submit(ctx, ticket)
	if err != nil {
		e.reportFailure(ctx, sess.ChatID, err)
		return
	}
	e.say(ctx, sess.ChatID, fmt.Sprintf(msgCreatedFmt, created.Key, e.opts.TrackerBrowseURL+created.Key), menuKeyboard())
}

func (e *Engine) reportFailure(ctx context.Context, chatID int64, err error) {
	slog.Error("ticket submission failed", "chat_id", chatID, "err", err)

	text := msgSubmitFailed
	var se *tracker.SubmissionError
	if errors.As(err, &se) {
		if se.UnknownFollower() {
			text = msgUnknownFollower
		} else if len(se.Messages) > 0 {
			text = fmt.Sprintf(msgSubmitFailedFmt, se.Messages[0])
		}
	}
	e.say(ctx, chatID, text, menuKeyboard())

	if e.deps.Alerter != nil {
		msg := fmt.Sprintf("chat %d: %v", chatID, err)
		if aerr := e.deps.Alerter.Alert(ctx, "Ticket submission failed", msg); aerr != nil {
			slog.Warn("ops alert failed", "err", aerr)
		}
	}
}
