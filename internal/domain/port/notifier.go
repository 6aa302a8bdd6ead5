package port

import "context"

// Notifier интерфейс отправки оповещений оператору
type Notifier interface {
	// Notify отправляет короткое текстовое сообщение
	Notify(ctx context.Context, text string) error
}
