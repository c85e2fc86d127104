package telegram

import (
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// BotSettings configures NewBot. URL is empty for the public Bot API.
type BotSettings struct {
	Token    string
	URL      string
	Commands bool
}

// NewBot builds the Telegram bot. A send-only bot is created offline and never
// calls getMe. When commands are requested the bot goes online; if Telegram
// cannot be reached it falls back to an offline send-only bot and reports
// online=false, in which case the caller must not start the long poller.
func NewBot(s BotSettings, logger *logrus.Entry) (bot *telebot.Bot, online bool) {
	pref := telebot.Settings{
		Token:   s.Token,
		URL:     s.URL,
		Offline: !s.Commands,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("telebot error")
		},
	}

	b, err := telebot.NewBot(pref)
	if err == nil {
		return b, s.Commands
	}

	logger.WithError(err).Warn("Telegram is unreachable, bot commands are disabled; messages will still be attempted")
	pref.Offline = true
	// Offline construction performs no I/O and cannot fail.
	b, _ = telebot.NewBot(pref)
	return b, false
}
