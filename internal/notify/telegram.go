package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends reminders to a Telegram chat. Send-only: the bot
// never reads messages.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram creates a Telegram notifier for the given bot token and chat
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// SendReminder implements Notifier
func (t *Telegram) SendReminder(count int) error {
	text := fmt.Sprintf("You have %d cards due for review.", count)
	if count == 1 {
		text = "You have 1 card due for review."
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
