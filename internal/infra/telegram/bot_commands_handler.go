// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"
	"time"

	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StatusSource exposes the poller state.
type StatusSource interface {
	Snapshot() app.Snapshot
}

// RegisterBotCommands installs /start, /help and /status. Only the configured
// chat gets answers; everything else is logged and ignored.
func RegisterBotCommands(b *telebot.Bot, chatID int64, source StatusSource, baseLogger *logrus.Entry) {
	logger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", onlyChat(chatID, logger, func(c telebot.Context) error {
		return c.Send("Привет! Я слежу за статусом проверки домашних работ и пишу сюда, когда он меняется. /status покажет последнее состояние.")
	}))
	b.Handle("/help", onlyChat(chatID, logger, func(c telebot.Context) error {
		return c.Send("/status - последний опрос API и последнее отправленное сообщение.\n/help - показать это сообщение.")
	}))
	b.Handle("/status", onlyChat(chatID, logger, statusHandler(source)))
}

func statusHandler(source StatusSource) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return c.Send(FormatStatus(source.Snapshot()))
	}
}

func onlyChat(chatID int64, logger *logrus.Entry, next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := logger.WithField("command", c.Text())
		if c.Chat() == nil || c.Chat().ID != chatID {
			var from int64
			if c.Chat() != nil {
				from = c.Chat().ID
			}
			logCtx.WithField("from_chat_id", from).Warn("Command from foreign chat ignored")
			return nil
		}
		logCtx.Info("Processing command")
		return next(c)
	}
}

// FormatStatus renders a snapshot as a chat reply.
func FormatStatus(s app.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Начало окна опроса: %s\n", formatTime(time.Unix(s.FromDate, 0)))
	if s.LastPollAt.IsZero() {
		b.WriteString("Опросов ещё не было.\n")
	} else {
		fmt.Fprintf(&b, "Последний опрос: %s (всего %d)\n", formatTime(s.LastPollAt), s.Cycles)
	}
	if s.LastCycleError != "" {
		fmt.Fprintf(&b, "Ошибка последнего опроса: %s\n", s.LastCycleError)
	}
	if s.LastMessage != "" {
		fmt.Fprintf(&b, "Последнее сообщение: %s\n", s.LastMessage)
	}
	if s.LastErrorMessage != "" {
		fmt.Fprintf(&b, "Последнее сообщение об ошибке: %s\n", s.LastErrorMessage)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
