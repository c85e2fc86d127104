package telegram

import "errors"

// ErrDeliveryFailed wraps any error returned while sending a chat message.
var ErrDeliveryFailed = errors.New("telegram message delivery failed")

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(chatID int64, text string) error
}
