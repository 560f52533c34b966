// Package notification provides the channel clients used to deliver
// rendered alerts (Twilio, Slack, Discord, Gmail, Telegram, webhook) and the
// dispatcher that fans one cycle's output across them.
package notification

import (
	"context"
	"fmt"

	"github.com/raykavin/signalert/core"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Telegram sends alerts to a chat through the Telegram bot API
type Telegram struct {
	client *tb.Bot
	chatID tb.ChatID
}

// NewTelegram creates a Telegram client from validated settings
func NewTelegram(settings core.TelegramSettings) (*Telegram, error) {
	client, err := tb.NewBot(tb.Settings{
		Token:     settings.Token,
		ParseMode: tb.ModeMarkdown,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}

	return &Telegram{
		client: client,
		chatID: tb.ChatID(settings.ChatID),
	}, nil
}

// Name implements core.Notifier.
func (t *Telegram) Name() string {
	return NameTelegram
}

// Notify implements core.Notifier.
func (t *Telegram) Notify(_ context.Context, text string) error {
	if _, err := t.client.Send(t.chatID, text); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}
