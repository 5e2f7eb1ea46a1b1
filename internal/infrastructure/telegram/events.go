package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// slash commands recognized alongside the keyboard buttons.
var slashCommands = map[string]domain.Command{
	"start":  domain.CmdStart,
	"new":    domain.CmdCreateTask,
	"cancel": domain.CmdCancel,
	"back":   domain.CmdBack,
	"skip":   domain.CmdSkip,
	"logout": domain.CmdLogout,
}

var buttonCommands = map[string]domain.Command{
	domain.ButtonCreateTask: domain.CmdCreateTask,
	domain.ButtonCancel:     domain.CmdCancel,
	domain.ButtonBack:       domain.CmdBack,
	domain.ButtonLogout:     domain.CmdLogout,
}

// parseEvent converts a Telegram message into the engine's tagged event.
// Photos win over captions; button labels and slash commands map to
// commands; everything else is free text. Command events keep the raw text
// so the audit log stays complete.
func parseEvent(msg *tgbotapi.Message) domain.Event {
	chatID := msg.Chat.ID

	if len(msg.Photo) > 0 {
		// Telegram orders variants by size; the last one is the largest.
		largest := msg.Photo[len(msg.Photo)-1]
		return domain.NewPhotoEvent(chatID, domain.PhotoRef{FileID: largest.FileID})
	}

	if msg.IsCommand() {
		if cmd, ok := slashCommands[msg.Command()]; ok {
			ev := domain.NewCommandEvent(chatID, cmd)
			ev.Text = msg.Text
			return ev
		}
		return domain.NewTextEvent(chatID, msg.Text)
	}

	if cmd, ok := buttonCommands[msg.Text]; ok {
		ev := domain.NewCommandEvent(chatID, cmd)
		ev.Text = msg.Text
		return ev
	}
	// The skip button is matched case-insensitively: users often type it.
	if strings.EqualFold(strings.TrimSpace(msg.Text), domain.ButtonSkip) {
		ev := domain.NewCommandEvent(chatID, domain.CmdSkip)
		ev.Text = msg.Text
		return ev
	}

	return domain.NewTextEvent(chatID, msg.Text)
}
