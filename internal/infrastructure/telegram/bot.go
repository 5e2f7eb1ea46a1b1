// Package telegram adapts the Telegram Bot API to the engine's contracts:
// it turns updates into tagged events, renders keyboards, and downloads
// photo attachments.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// Bot wraps the Telegram API client. It implements the engine's Notifier
// and PhotoFetcher.
type Bot struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewBot(cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{
		api:        api,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Username returns the bot's own username, for startup logging.
func (b *Bot) Username() string { return b.api.Self.UserName }

// SendPrompt delivers a message with the given keyboard. Fire-and-forget:
// the engine logs failures and moves on.
func (b *Bot) SendPrompt(_ context.Context, chatID int64, text string, kb domain.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = replyMarkup(kb)
	_, err := b.api.Send(msg)
	return err
}

func replyMarkup(kb domain.Keyboard) interface{} {
	if kb.Remove {
		return tgbotapi.NewRemoveKeyboard(false)
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: kb.OneTime,
	}
}

// FetchLargest downloads the photo behind ref. The ref already addresses
// the largest resolution variant (see parseEvent).
func (b *Bot) FetchLargest(ctx context.Context, ref domain.PhotoRef) ([]byte, string, error) {
	url, err := b.api.GetFileDirectURL(ref.FileID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve file %s: %w", ref.FileID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %d: %w", resp.StatusCode, domain.ErrNotFound)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	filename := path.Base(url)
	if filename == "" || filename == "." || filename == "/" {
		filename = "photo.jpg"
	}
	return data, filename, nil
}
