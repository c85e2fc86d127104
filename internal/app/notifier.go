// internal/app/notifier.go
package app

import (
	"context"
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Notifier delivers messages to the configured chat. Delivery errors are
// logged and swallowed; callers never see them.
type Notifier struct {
	client  domainTelegram.Client
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewNotifier returns a Notifier. A nil limiter disables rate limiting.
func NewNotifier(client domainTelegram.Client, chatID int64, limiter *rate.Limiter, logger *logrus.Entry) *Notifier {
	return &Notifier{
		client:  client,
		chatID:  chatID,
		limiter: limiter,
		logger:  logger,
	}
}

// Send reports whether the message was handed to Telegram.
func (n *Notifier) Send(ctx context.Context, text string) bool {
	logCtx := n.logger.WithField("chat_id", n.chatID)
	logCtx.Infof("Sending Telegram message: %s", text)

	if err := n.send(ctx, text); err != nil {
		logCtx.WithError(err).Error("Failed to send Telegram message")
		return false
	}
	logCtx.Info("Telegram message sent")
	return true
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", domainTelegram.ErrDeliveryFailed, err)
		}
	}
	if err := n.client.SendMessage(n.chatID, text); err != nil {
		return fmt.Errorf("%w: %v", domainTelegram.ErrDeliveryFailed, err)
	}
	return nil
}
