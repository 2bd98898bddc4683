package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram posts HTML-formatted messages to a single admin chat. Messages are
// sent in the background; Wait blocks until every pending send finished.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	wg     sync.WaitGroup
}

// NewTelegram authenticates the bot against apiEndpoint (a format string as
// in tgbotapi.APIEndpoint; empty means the public API).
func NewTelegram(token string, chatID int64, apiEndpoint string) (*Telegram, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: 10 * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("could not authenticate telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) NotifyNewUser(_ context.Context, username string) {
	text := fmt.Sprintf("🎉 <b>New user registered</b>\n\n👤 Username: <code>%s</code>\n📅 Time: %s",
		html.EscapeString(username), time.Now().UTC().Format(time.RFC1123))
	t.send(text)
}

func (t *Telegram) NotifyPresetSubmitted(_ context.Context, presetName, username string) {
	text := fmt.Sprintf("📝 <b>New preset awaiting moderation</b>\n\n📌 Name: <code>%s</code>\n👤 Author: <code>%s</code>",
		html.EscapeString(presetName), html.EscapeString(username))
	t.send(text)
}

func (t *Telegram) send(text string) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		msg := tgbotapi.NewMessage(t.chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := t.bot.Send(msg); err != nil {
			slog.Warn("Failed to send Telegram notification", "error", err)
			return
		}
		slog.Debug("Telegram notification sent")
	}()
}

// Wait blocks until all notifications queued so far were delivered or failed.
func (t *Telegram) Wait() {
	t.wg.Wait()
}
