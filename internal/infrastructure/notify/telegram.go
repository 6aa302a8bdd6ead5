package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"thermocam/internal/domain/port"
)

// TelegramNotifier отправляет оповещения оператору в Telegram.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier создаёт нотификатор для заданного чата.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// Notify отправляет текстовое сообщение в чат.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	_ = ctx
	_, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text))
	return err
}

// Проверка реализации интерфейса
var _ port.Notifier = (*TelegramNotifier)(nil)
